package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Country struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Code      string       `json:"code" gorm:"type:char(2);not null;uniqueIndex"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Country) TableName() string { return "countries" }

// StripeCountryFee is a per-country processor fee override. Fee is a
// percentage (1.4 = 1.4%), Fixed is in major currency units; both are
// normalized by the resolver before use.
type StripeCountryFee struct {
	CountryCode string          `json:"country_code" gorm:"type:char(2);primaryKey;column:country_code"`
	Fee         decimal.Decimal `json:"fee" gorm:"type:numeric;not null"`
	Fixed       decimal.Decimal `json:"fixed" gorm:"type:numeric;not null"`
	CreatedAt   time.Time       `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (StripeCountryFee) TableName() string { return "stripe_country_fees" }

const ServiceAgreementFull = "full"

// User is the payer profile the fee resolver consults.
type User struct {
	ID                   snowflake.ID  `json:"id" gorm:"primaryKey"`
	Email                string        `json:"email" gorm:"type:text;not null"`
	CountryID            *snowflake.ID `json:"country_id,omitempty" gorm:"index"`
	ServiceAgreementType string        `json:"service_agreement_type" gorm:"type:text;not null;default:''"`
	CreatedAt            time.Time     `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }
