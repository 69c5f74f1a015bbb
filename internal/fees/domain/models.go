package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeOneTime     PaymentType = "one_time"
	PaymentTypeInstallment PaymentType = "installment"
	PaymentTypeAdvance     PaymentType = "advance"
)

// FeeSchedule is an effective processor fee schedule. Percentage is a
// fraction (0.029 = 2.9%), Fixed is in minor currency units.
// IntlCardPercentage replaces Percentage for international card charges.
type FeeSchedule struct {
	Percentage         decimal.Decimal
	IntlCardPercentage decimal.Decimal
	Fixed              decimal.Decimal
	CountryCode        string
}

// ForIntlCard returns the schedule with the international card rate in
// effect, when one is configured.
func (s FeeSchedule) ForIntlCard() FeeSchedule {
	if s.IntlCardPercentage.IsPositive() {
		s.Percentage = s.IntlCardPercentage
	}
	return s
}

// IncomeBreakdown is the exact three-way split of a gross charge.
// Total carries the truncation remainder, so
// Total + PlatformFee + ProcessorFee + ExtraFees stays within one minor
// unit of the gross amount.
type IncomeBreakdown struct {
	Total        decimal.Decimal `json:"total"`
	PlatformFee  decimal.Decimal `json:"platform_fee"`
	ProcessorFee decimal.Decimal `json:"processor_fee"`
	ExtraFees    decimal.Decimal `json:"extra_fees"`
}

var (
	ErrAmountOverflow = errors.New("amount_overflow")
	ErrInvalidAmount  = errors.New("invalid_amount")
)

var one = decimal.NewFromInt(1)

// TruncatePrice collapses a price to a whole currency unit: the
// fractional remainder is rounded half away from zero, and the result is
// floor(price) plus that rounded remainder. TruncatePrice(10.40) == 10,
// TruncatePrice(10.50) == 11, TruncatePrice(10.00) == 10.
func TruncatePrice(price decimal.Decimal) decimal.Decimal {
	floor := price.Floor()
	frac := price.Sub(floor)
	if frac.Round(0).IsPositive() {
		return floor.Add(one)
	}
	return floor
}
