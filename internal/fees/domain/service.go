package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Resolver produces the effective processor fee schedule for a payer.
// Resolution never fails: any lookup problem falls back to the default
// schedule with a log trail.
type Resolver interface {
	Resolve(ctx context.Context, payerCountryID snowflake.ID, serviceAgreementType string) FeeSchedule
	ResolveForUser(ctx context.Context, userID snowflake.ID) FeeSchedule
	Default() FeeSchedule
}

// BreakdownInput are the parameters of one income split.
type BreakdownInput struct {
	Gross              decimal.Decimal
	CoachPaysFee       bool
	PlatformPercentage decimal.Decimal
	PaymentType        PaymentType
	Schedule           FeeSchedule
	// ExplicitTotalFees is the processor-reported total fee figure, when
	// the caller has one (e.g. from a balance transaction).
	ExplicitTotalFees *decimal.Decimal
}

type Calculator interface {
	Breakdown(in BreakdownInput) IncomeBreakdown
	// BreakdownAsInteger returns Total as an int64; a value outside the
	// int64 range is an error, never a silent wrap.
	BreakdownAsInteger(in BreakdownInput) (int64, error)
	FromNetPurchaseAmount(net, platformPercentage decimal.Decimal, coachPaysFee bool, gross decimal.Decimal) decimal.Decimal
}

// Solver inverts the income calculation: from the net a coach should
// receive to the gross the client must be charged.
type Solver interface {
	SolveGrossAmount(net decimal.Decimal, coachPaysFee bool, schedule FeeSchedule) decimal.Decimal
	SolveFee(net decimal.Decimal, coachPaysFee bool, schedule FeeSchedule) decimal.Decimal
}
