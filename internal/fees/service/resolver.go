package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/coachably/coachpay/internal/config"
	feesdomain "github.com/coachably/coachpay/internal/fees/domain"
	obsmetrics "github.com/coachably/coachpay/internal/observability/metrics"
	referencedomain "github.com/coachably/coachpay/internal/reference/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ResolverParams struct {
	fx.In

	Log       *zap.Logger
	RefRepo   referencedomain.Repository
	Overrides *config.FeeOverridesHolder
	Cfg       config.Config
	Metrics   *obsmetrics.Metrics `optional:"true"`
}

type Resolver struct {
	log       *zap.Logger
	refRepo   referencedomain.Repository
	overrides *config.FeeOverridesHolder
	metrics   *obsmetrics.Metrics

	defaultSchedule feesdomain.FeeSchedule
	smallestUnit    decimal.Decimal
	hundred         decimal.Decimal
}

func NewResolver(p ResolverParams) feesdomain.Resolver {
	return &Resolver{
		log:       p.Log.Named("fees.resolver"),
		refRepo:   p.RefRepo,
		overrides: p.Overrides,
		metrics:   p.Metrics,
		defaultSchedule: feesdomain.FeeSchedule{
			Percentage:         p.Cfg.StripePercentageFee,
			IntlCardPercentage: p.Cfg.StripeIntlCardPercentageFee,
			Fixed:              p.Cfg.StripeFixedFee,
		},
		smallestUnit: decimal.NewFromInt(p.Cfg.SmallestCurrencyUnit),
		hundred:      decimal.NewFromInt(100),
	}
}

func (r *Resolver) Default() feesdomain.FeeSchedule {
	return r.defaultSchedule
}

// Resolve returns the country override schedule when the payer's service
// agreement entitles them to it, the default schedule otherwise. Lookup
// failures fall back to the default and are logged, never propagated.
func (r *Resolver) Resolve(ctx context.Context, payerCountryID snowflake.ID, serviceAgreementType string) feesdomain.FeeSchedule {
	if serviceAgreementType != referencedomain.ServiceAgreementFull || payerCountryID == 0 {
		return r.defaultSchedule
	}

	country, err := r.refRepo.FindCountryByID(ctx, payerCountryID)
	if err != nil {
		return r.fallback("country lookup failed", payerCountryID.String(), err)
	}
	if country == nil {
		return r.fallback("country not found", payerCountryID.String(), nil)
	}

	if override, ok := r.overrides.Lookup(country.Code); ok {
		return r.scheduleFrom(country.Code, override.FeeDecimal(), override.FixedDecimal())
	}

	fee, err := r.refRepo.FindCountryFee(ctx, country.Code)
	if err != nil {
		return r.fallback("country fee lookup failed", country.Code, err)
	}
	if fee == nil {
		// Most countries have no override row.
		return r.defaultSchedule
	}

	return r.scheduleFrom(fee.CountryCode, fee.Fee, fee.Fixed)
}

func (r *Resolver) ResolveForUser(ctx context.Context, userID snowflake.ID) feesdomain.FeeSchedule {
	user, err := r.refRepo.FindUserByID(ctx, userID)
	if err != nil {
		return r.fallback("user lookup failed", userID.String(), err)
	}
	if user == nil {
		return r.fallback("user not found", userID.String(), nil)
	}

	var countryID snowflake.ID
	if user.CountryID != nil {
		countryID = *user.CountryID
	}
	return r.Resolve(ctx, countryID, user.ServiceAgreementType)
}

func (r *Resolver) scheduleFrom(countryCode string, fee, fixed decimal.Decimal) feesdomain.FeeSchedule {
	return feesdomain.FeeSchedule{
		Percentage:         fee.Div(r.hundred),
		IntlCardPercentage: r.defaultSchedule.IntlCardPercentage,
		Fixed:              fixed.Mul(r.smallestUnit),
		CountryCode:        countryCode,
	}
}

func (r *Resolver) fallback(reason, subject string, err error) feesdomain.FeeSchedule {
	r.log.Warn("falling back to default fee schedule",
		zap.String("reason", reason),
		zap.String("subject", subject),
		zap.Error(err),
	)
	r.metrics.RecordFeeFallback()
	return r.defaultSchedule
}
