package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/coachably/coachpay/internal/config"
	feesdomain "github.com/coachably/coachpay/internal/fees/domain"
	"github.com/coachably/coachpay/internal/reference"
	referencedomain "github.com/coachably/coachpay/internal/reference/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	countryDK = snowflake.ID(1001)
	countryUS = snowflake.ID(1002)
	userDK    = snowflake.ID(2001)
)

func newTestResolver(t *testing.T) (feesdomain.Resolver, *config.FeeOverridesHolder) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&referencedomain.Country{},
		&referencedomain.StripeCountryFee{},
		&referencedomain.User{},
	))

	dkID := countryDK
	require.NoError(t, db.Create(&referencedomain.Country{ID: countryDK, Code: "DK", Name: "Denmark"}).Error)
	require.NoError(t, db.Create(&referencedomain.Country{ID: countryUS, Code: "US", Name: "United States"}).Error)
	require.NoError(t, db.Create(&referencedomain.StripeCountryFee{
		CountryCode: "DK",
		Fee:         d("1.4"),
		Fixed:       d("0.25"),
	}).Error)
	require.NoError(t, db.Create(&referencedomain.User{
		ID:                   userDK,
		Email:                "coach@example.dk",
		CountryID:            &dkID,
		ServiceAgreementType: referencedomain.ServiceAgreementFull,
	}).Error)

	holder, err := config.NewFeeOverridesHolder()
	require.NoError(t, err)

	resolver := NewResolver(ResolverParams{
		Log:       zap.NewNop(),
		RefRepo:   reference.NewRepository(db),
		Overrides: holder,
		Cfg: config.Config{
			StripePercentageFee:  d("0.029"),
			StripeFixedFee:       d("30"),
			SmallestCurrencyUnit: 100,
		},
	})
	return resolver, holder
}

func requireSchedule(t *testing.T, schedule feesdomain.FeeSchedule, percentage, fixed string) {
	t.Helper()
	require.True(t, schedule.Percentage.Equal(d(percentage)), "percentage %s", schedule.Percentage)
	require.True(t, schedule.Fixed.Equal(d(fixed)), "fixed %s", schedule.Fixed)
}

func TestResolveCountryOverride(t *testing.T) {
	resolver, _ := newTestResolver(t)

	// 1.4% + 0.25 major units, normalized to a fraction and minor units.
	schedule := resolver.Resolve(context.Background(), countryDK, referencedomain.ServiceAgreementFull)
	requireSchedule(t, schedule, "0.014", "25")
	require.Equal(t, "DK", schedule.CountryCode)
}

func TestResolveDefaultWithoutFullAgreement(t *testing.T) {
	resolver, _ := newTestResolver(t)

	schedule := resolver.Resolve(context.Background(), countryDK, "express")
	requireSchedule(t, schedule, "0.029", "30")
	require.Empty(t, schedule.CountryCode)
}

func TestResolveDefaultWithoutCountry(t *testing.T) {
	resolver, _ := newTestResolver(t)

	schedule := resolver.Resolve(context.Background(), 0, referencedomain.ServiceAgreementFull)
	requireSchedule(t, schedule, "0.029", "30")
}

func TestResolveDefaultWhenNoFeeRow(t *testing.T) {
	resolver, _ := newTestResolver(t)

	// US exists but carries no fee override row.
	schedule := resolver.Resolve(context.Background(), countryUS, referencedomain.ServiceAgreementFull)
	requireSchedule(t, schedule, "0.029", "30")
}

func TestResolveDefaultWhenCountryUnknown(t *testing.T) {
	resolver, _ := newTestResolver(t)

	schedule := resolver.Resolve(context.Background(), snowflake.ID(999999), referencedomain.ServiceAgreementFull)
	requireSchedule(t, schedule, "0.029", "30")
}

func TestResolveConfigOverrideTakesPrecedence(t *testing.T) {
	resolver, holder := newTestResolver(t)

	holder.Store([]config.CountryFeeOverride{
		{Country: "dk", Fee: 2.0, Fixed: 0.5},
	})

	// The file override wins over the stripe_country_fees row.
	schedule := resolver.Resolve(context.Background(), countryDK, referencedomain.ServiceAgreementFull)
	requireSchedule(t, schedule, "0.02", "50")
	require.Equal(t, "DK", schedule.CountryCode)
}

func TestResolveForUser(t *testing.T) {
	resolver, _ := newTestResolver(t)

	schedule := resolver.ResolveForUser(context.Background(), userDK)
	requireSchedule(t, schedule, "0.014", "25")

	// Unknown users fall back to the default schedule.
	schedule = resolver.ResolveForUser(context.Background(), snowflake.ID(555))
	requireSchedule(t, schedule, "0.029", "30")
}
