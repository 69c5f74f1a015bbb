package service

import (
	feesdomain "github.com/coachably/coachpay/internal/fees/domain"
	"github.com/shopspring/decimal"
)

type Calculator struct{}

func NewCalculator() feesdomain.Calculator {
	return &Calculator{}
}

var one = decimal.NewFromInt(1)

func (c *Calculator) Breakdown(in feesdomain.BreakdownInput) feesdomain.IncomeBreakdown {
	processorFee := decimal.Zero
	if in.CoachPaysFee {
		processorFee = in.Gross.Mul(in.Schedule.Percentage).Add(in.Schedule.Fixed)
		if in.PaymentType == feesdomain.PaymentTypeAdvance && in.ExplicitTotalFees != nil {
			// Advance charges settle against the processor-reported fee.
			processorFee = *in.ExplicitTotalFees
		}
	}

	platformBase := in.Gross
	if !in.CoachPaysFee && in.ExplicitTotalFees != nil {
		platformBase = platformBase.Sub(*in.ExplicitTotalFees)
	}
	platformFee := platformBase.Mul(in.PlatformPercentage)

	extraFees := decimal.Zero
	if in.ExplicitTotalFees != nil {
		extraFees = decimal.Max(decimal.Zero, in.ExplicitTotalFees.Sub(processorFee))
	}

	total := feesdomain.TruncatePrice(
		in.Gross.Sub(platformFee).Sub(processorFee).Sub(extraFees),
	)

	return feesdomain.IncomeBreakdown{
		Total:        total,
		PlatformFee:  platformFee,
		ProcessorFee: processorFee,
		ExtraFees:    extraFees,
	}
}

func (c *Calculator) BreakdownAsInteger(in feesdomain.BreakdownInput) (int64, error) {
	breakdown := c.Breakdown(in)
	// Total is integral after TruncatePrice, so BigInt is exact.
	value := breakdown.Total.BigInt()
	if !value.IsInt64() {
		return 0, feesdomain.ErrAmountOverflow
	}
	return value.Int64(), nil
}

func (c *Calculator) FromNetPurchaseAmount(net, platformPercentage decimal.Decimal, coachPaysFee bool, gross decimal.Decimal) decimal.Decimal {
	if coachPaysFee {
		return feesdomain.TruncatePrice(net.Sub(gross.Mul(platformPercentage)))
	}
	return feesdomain.TruncatePrice(net.Mul(one.Sub(platformPercentage)))
}
