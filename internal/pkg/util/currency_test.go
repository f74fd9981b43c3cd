package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatIDR(t *testing.T) {
	testCases := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "Rp 0"},
		{"thousands", decimal.NewFromInt(10000), "Rp 10.000"},
		{"millions", decimal.NewFromInt(1250000), "Rp 1.250.000"},
		{"with fraction", decimal.NewFromFloat(9500.5), "Rp 9.500,5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FormatIDR(tc.amount))
		})
	}
}
