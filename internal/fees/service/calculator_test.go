package service

import (
	"testing"

	feesdomain "github.com/coachably/coachpay/internal/fees/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func dp(value string) *decimal.Decimal {
	parsed := decimal.RequireFromString(value)
	return &parsed
}

func testSchedule() feesdomain.FeeSchedule {
	return feesdomain.FeeSchedule{
		Percentage: d("0.029"),
		Fixed:      d("30"),
	}
}

func TestBreakdownClientPaysFee(t *testing.T) {
	calc := NewCalculator()

	breakdown := calc.Breakdown(feesdomain.BreakdownInput{
		Gross:              d("10000"),
		CoachPaysFee:       false,
		PlatformPercentage: d("0.1"),
		PaymentType:        feesdomain.PaymentTypeOneTime,
		Schedule:           testSchedule(),
	})

	require.True(t, breakdown.ProcessorFee.IsZero(), "client absorbs the processor fee")
	require.True(t, breakdown.PlatformFee.Equal(d("1000")), "platform fee %s", breakdown.PlatformFee)
	require.True(t, breakdown.ExtraFees.IsZero())
	require.True(t, breakdown.Total.Equal(d("9000")), "total %s", breakdown.Total)
}

func TestBreakdownCoachPaysFee(t *testing.T) {
	calc := NewCalculator()

	breakdown := calc.Breakdown(feesdomain.BreakdownInput{
		Gross:              d("10000"),
		CoachPaysFee:       true,
		PlatformPercentage: d("0.1"),
		PaymentType:        feesdomain.PaymentTypeOneTime,
		Schedule:           testSchedule(),
	})

	// 10000 * 0.029 + 30
	require.True(t, breakdown.ProcessorFee.Equal(d("320")), "processor fee %s", breakdown.ProcessorFee)
	require.True(t, breakdown.PlatformFee.Equal(d("1000")))
	require.True(t, breakdown.Total.Equal(d("8680")), "total %s", breakdown.Total)
}

func TestBreakdownExplicitFeesCoachPays(t *testing.T) {
	calc := NewCalculator()

	breakdown := calc.Breakdown(feesdomain.BreakdownInput{
		Gross:              d("10000"),
		CoachPaysFee:       true,
		PlatformPercentage: d("0.1"),
		PaymentType:        feesdomain.PaymentTypeOneTime,
		Schedule:           testSchedule(),
		ExplicitTotalFees:  dp("350"),
	})

	// The reported total exceeds the computed processor fee by 30.
	require.True(t, breakdown.ProcessorFee.Equal(d("320")))
	require.True(t, breakdown.ExtraFees.Equal(d("30")), "extra fees %s", breakdown.ExtraFees)
	require.True(t, breakdown.Total.Equal(d("8650")), "total %s", breakdown.Total)
}

func TestBreakdownExplicitFeesClientPays(t *testing.T) {
	calc := NewCalculator()

	breakdown := calc.Breakdown(feesdomain.BreakdownInput{
		Gross:              d("10000"),
		CoachPaysFee:       false,
		PlatformPercentage: d("0.1"),
		PaymentType:        feesdomain.PaymentTypeOneTime,
		Schedule:           testSchedule(),
		ExplicitTotalFees:  dp("350"),
	})

	// Platform percentage applies to gross minus the reported fees.
	require.True(t, breakdown.PlatformFee.Equal(d("965")), "platform fee %s", breakdown.PlatformFee)
	require.True(t, breakdown.ProcessorFee.IsZero())
	require.True(t, breakdown.ExtraFees.Equal(d("350")))
	require.True(t, breakdown.Total.Equal(d("8685")), "total %s", breakdown.Total)
}

func TestBreakdownAdvanceUsesReportedFee(t *testing.T) {
	calc := NewCalculator()

	breakdown := calc.Breakdown(feesdomain.BreakdownInput{
		Gross:              d("10000"),
		CoachPaysFee:       true,
		PlatformPercentage: d("0.1"),
		PaymentType:        feesdomain.PaymentTypeAdvance,
		Schedule:           testSchedule(),
		ExplicitTotalFees:  dp("400"),
	})

	require.True(t, breakdown.ProcessorFee.Equal(d("400")), "processor fee %s", breakdown.ProcessorFee)
	require.True(t, breakdown.ExtraFees.IsZero())
	require.True(t, breakdown.Total.Equal(d("8600")), "total %s", breakdown.Total)
}

func TestBreakdownExtraFeesNeverNegative(t *testing.T) {
	calc := NewCalculator()

	breakdown := calc.Breakdown(feesdomain.BreakdownInput{
		Gross:              d("10000"),
		CoachPaysFee:       true,
		PlatformPercentage: d("0.1"),
		PaymentType:        feesdomain.PaymentTypeOneTime,
		Schedule:           testSchedule(),
		ExplicitTotalFees:  dp("200"),
	})

	require.True(t, breakdown.ExtraFees.IsZero(), "extra fees %s", breakdown.ExtraFees)
}

func TestBreakdownConservation(t *testing.T) {
	calc := NewCalculator()
	one := d("1")

	grosses := []string{"100", "999", "10000", "12345", "333333", "10050.75"}
	for _, gross := range grosses {
		for _, coachPays := range []bool{true, false} {
			breakdown := calc.Breakdown(feesdomain.BreakdownInput{
				Gross:              d(gross),
				CoachPaysFee:       coachPays,
				PlatformPercentage: d("0.1"),
				PaymentType:        feesdomain.PaymentTypeOneTime,
				Schedule:           testSchedule(),
			})

			sum := breakdown.Total.
				Add(breakdown.PlatformFee).
				Add(breakdown.ProcessorFee).
				Add(breakdown.ExtraFees)
			diff := d(gross).Sub(sum).Abs()
			require.True(t, diff.LessThan(one),
				"gross=%s coachPays=%v: parts sum to %s, off by %s", gross, coachPays, sum, diff)
		}
	}
}

func TestBreakdownAsInteger(t *testing.T) {
	calc := NewCalculator()

	total, err := calc.BreakdownAsInteger(feesdomain.BreakdownInput{
		Gross:              d("10000"),
		CoachPaysFee:       true,
		PlatformPercentage: d("0.1"),
		PaymentType:        feesdomain.PaymentTypeOneTime,
		Schedule:           testSchedule(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(8680), total)
}

func TestBreakdownAsIntegerOverflow(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.BreakdownAsInteger(feesdomain.BreakdownInput{
		Gross:              decimal.New(1, 30),
		CoachPaysFee:       false,
		PlatformPercentage: decimal.Zero,
		PaymentType:        feesdomain.PaymentTypeOneTime,
		Schedule:           feesdomain.FeeSchedule{},
	})
	require.ErrorIs(t, err, feesdomain.ErrAmountOverflow)
}

func TestFromNetPurchaseAmount(t *testing.T) {
	calc := NewCalculator()

	// Coach absorbs fees: platform cut is taken off the gross amount.
	got := calc.FromNetPurchaseAmount(d("9680"), d("0.1"), true, d("10000"))
	require.True(t, got.Equal(d("8680")), "coach pays: %s", got)

	// Client pays fees: platform cut comes out of the net amount.
	got = calc.FromNetPurchaseAmount(d("10000"), d("0.1"), false, d("10330"))
	require.True(t, got.Equal(d("9000")), "client pays: %s", got)
}
