package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction mirrors a booked transaction from the GoCardless Bank
// Account Data API. The provider returns these newest-first; that order
// is what balance reconstruction walks, so it must be kept intact.
type RawTransaction struct {
	TransactionID                          string            `json:"transactionId"`
	BookingDate                            string            `json:"bookingDate"`
	TransactionAmount                      TransactionAmount `json:"transactionAmount"`
	RemittanceInformationUnstructuredArray []string          `json:"remittanceInformationUnstructuredArray"`
}

type TransactionAmount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// Title returns the first remittance line, or "" when the bank sent none.
func (t RawTransaction) Title() string {
	if len(t.RemittanceInformationUnstructuredArray) == 0 {
		return ""
	}
	return t.RemittanceInformationUnstructuredArray[0]
}

// EnrichedTransaction is one record of the client-facing feed. Weight is
// the transaction's index in the provider order and is the sole means of
// restoring chronology after search reordering.
type EnrichedTransaction struct {
	ID           string          `json:"id"`
	Weight       int             `json:"weight"`
	Title        string          `json:"title"`
	BookingDate  string          `json:"booking_date"`
	Amount       string          `json:"amount"`
	AmountValue  decimal.Decimal `json:"amount_value"`
	Balance      string          `json:"balance"`
	BalanceValue decimal.Decimal `json:"balance_value"`
	Category     string          `json:"category"`

	BookedAt time.Time `json:"-"` // Internal use only
	Score    float64   `json:"-"` // Internal use only
}
