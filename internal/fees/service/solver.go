package service

import (
	feesdomain "github.com/coachably/coachpay/internal/fees/domain"
	"github.com/shopspring/decimal"
)

type Solver struct{}

func NewSolver() feesdomain.Solver {
	return &Solver{}
}

// SolveGrossAmount returns the amount to charge the client so the coach
// receives net after processor fees. When the coach absorbs the fee the
// quoted price already is the gross amount.
func (s *Solver) SolveGrossAmount(net decimal.Decimal, coachPaysFee bool, schedule feesdomain.FeeSchedule) decimal.Decimal {
	if coachPaysFee {
		return feesdomain.TruncatePrice(net)
	}
	return feesdomain.TruncatePrice(s.grossRaw(net, schedule))
}

// SolveFee returns the fee component alone, for display.
func (s *Solver) SolveFee(net decimal.Decimal, coachPaysFee bool, schedule feesdomain.FeeSchedule) decimal.Decimal {
	if coachPaysFee {
		return feesdomain.TruncatePrice(net.Mul(schedule.Percentage).Add(schedule.Fixed))
	}
	return feesdomain.TruncatePrice(s.grossRaw(net, schedule).Sub(net))
}

func (s *Solver) grossRaw(net decimal.Decimal, schedule feesdomain.FeeSchedule) decimal.Decimal {
	divisor := one.Sub(schedule.Percentage)
	if !divisor.IsPositive() {
		// A percentage of 100% or more cannot be grossed up.
		return net
	}
	return net.Add(schedule.Fixed).Div(divisor)
}
