package reference

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/coachably/coachpay/internal/reference/domain"
	"github.com/coachably/coachpay/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	countries repository.Repository[domain.Country]
	fees      repository.Repository[domain.StripeCountryFee]
	users     repository.Repository[domain.User]
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repo{
		countries: repository.ProvideStore[domain.Country](db),
		fees:      repository.ProvideStore[domain.StripeCountryFee](db),
		users:     repository.ProvideStore[domain.User](db),
	}
}

func (r *repo) FindCountryByID(ctx context.Context, id snowflake.ID) (*domain.Country, error) {
	if id == 0 {
		return nil, nil
	}
	return r.countries.GetOne(ctx, &domain.Country{ID: id})
}

func (r *repo) FindCountryFee(ctx context.Context, countryCode string) (*domain.StripeCountryFee, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return nil, nil
	}
	return r.fees.GetOne(ctx, &domain.StripeCountryFee{CountryCode: code})
}

func (r *repo) FindUserByID(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	if id == 0 {
		return nil, nil
	}
	return r.users.GetOne(ctx, &domain.User{ID: id})
}
