package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestTruncatePrice(t *testing.T) {
	tests := []struct {
		price    string
		expected string
	}{
		{"10.00", "10"},
		{"10.40", "10"},
		{"10.49", "10"},
		{"10.50", "11"},
		{"10.99", "11"},
		{"0", "0"},
		{"0.5", "1"},
		{"0.49", "0"},
		{"123", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			got := TruncatePrice(decimal.RequireFromString(tt.price))
			require.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"TruncatePrice(%s) = %s, want %s", tt.price, got, tt.expected)
		})
	}
}

func TestForIntlCard(t *testing.T) {
	schedule := FeeSchedule{
		Percentage:         decimal.RequireFromString("0.029"),
		IntlCardPercentage: decimal.RequireFromString("0.039"),
		Fixed:              decimal.RequireFromString("30"),
	}

	intl := schedule.ForIntlCard()
	require.True(t, intl.Percentage.Equal(decimal.RequireFromString("0.039")))
	require.True(t, intl.Fixed.Equal(schedule.Fixed))

	// Without a configured international rate the schedule is unchanged.
	domestic := FeeSchedule{Percentage: decimal.RequireFromString("0.029")}
	require.True(t, domestic.ForIntlCard().Percentage.Equal(domestic.Percentage))
}

func TestTruncatePriceIsIntegral(t *testing.T) {
	for _, price := range []string{"10.01", "99.999", "0.123", "42"} {
		got := TruncatePrice(decimal.RequireFromString(price))
		require.True(t, got.Equal(got.Floor()), "result %s must be a whole unit", got)
	}
}
