package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyFormat is the explicit display configuration for money
// strings. It is passed in rather than read from ambient locale state,
// so the decimal arithmetic underneath stays format-free.
type CurrencyFormat struct {
	Symbol       string
	DecimalSep   string
	ThousandsSep string
	Decimals     int32
}

// EUR renders the French convention: "1 234,56 €".
var EUR = CurrencyFormat{Symbol: "€", DecimalSep: ",", ThousandsSep: " ", Decimals: 2}

// FormatAmount renders d per cfg. Rounding to the currency's minor unit
// happens here and nowhere earlier.
func FormatAmount(d decimal.Decimal, cfg CurrencyFormat) string {
	fixed := d.StringFixed(cfg.Decimals)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(cfg.ThousandsSep)
		}
		b.WriteByte(intPart[i])
	}
	if fracPart != "" {
		b.WriteString(cfg.DecimalSep)
		b.WriteString(fracPart)
	}
	if cfg.Symbol != "" {
		b.WriteString(" ")
		b.WriteString(cfg.Symbol)
	}
	return b.String()
}
