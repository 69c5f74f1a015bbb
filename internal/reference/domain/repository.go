package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is point-lookup access to reference data. Lookups return
// (nil, nil) when no row matches.
type Repository interface {
	FindCountryByID(ctx context.Context, id snowflake.ID) (*Country, error)
	FindCountryFee(ctx context.Context, countryCode string) (*StripeCountryFee, error)
	FindUserByID(ctx context.Context, id snowflake.ID) (*User, error)
}
