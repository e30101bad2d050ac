package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount_EUR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00 €"},
		{"12.5", "12,50 €"},
		{"1234.56", "1 234,56 €"},
		{"-1234567.891", "-1 234 567,89 €"},
		{"999", "999,00 €"},
		{"1000", "1 000,00 €"},
	}

	for _, tt := range tests {
		got := FormatAmount(decimal.RequireFromString(tt.in), EUR)
		assert.Equal(t, tt.want, got, "input %s", tt.in)
	}
}

func TestFormatAmount_ExplicitConfig(t *testing.T) {
	usd := CurrencyFormat{Symbol: "$", DecimalSep: ".", ThousandsSep: ",", Decimals: 2}
	assert.Equal(t, "1,234.50 $", FormatAmount(decimal.RequireFromString("1234.5"), usd))

	bare := CurrencyFormat{DecimalSep: ".", ThousandsSep: "", Decimals: 2}
	assert.Equal(t, "1234.50", FormatAmount(decimal.RequireFromString("1234.5"), bare))
}

func TestFormatAmount_RoundsOnlyAtDisplay(t *testing.T) {
	d := decimal.RequireFromString("10.005")
	assert.Equal(t, "10,01 €", FormatAmount(d, EUR))
	// The decimal itself is untouched.
	assert.True(t, d.Equal(decimal.RequireFromString("10.005")))
}
