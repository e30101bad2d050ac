package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bankfeed-api/models"
	"bankfeed-api/utils"
)

// BalanceAccumulator reconstructs the historical balance at the time of
// every transaction from the account's current balance. All arithmetic
// is exact decimal; rounding happens only when the display string is
// rendered.
type BalanceAccumulator struct {
	Format utils.CurrencyFormat
}

// Annotate walks the transactions in provider order (newest-first) and
// attaches weight, title and running balance. The current balance is the
// state after the most recent transaction, so element 0 carries it
// unchanged and every later element subtracts the amount of the element
// before it: walking forward in the slice walks backward in time.
func (a *BalanceAccumulator) Annotate(txs []models.RawTransaction, currentBalance string) ([]models.EnrichedTransaction, error) {
	balance, err := decimal.NewFromString(currentBalance)
	if err != nil {
		return nil, fmt.Errorf("%w: balance %q: %v", ErrDataFormat, currentBalance, err)
	}

	enriched := make([]models.EnrichedTransaction, 0, len(txs))
	var prevAmount decimal.Decimal
	for i, tx := range txs {
		amount, err := decimal.NewFromString(tx.TransactionAmount.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q on transaction %s: %v",
				ErrDataFormat, tx.TransactionAmount.Amount, tx.TransactionID, err)
		}

		bookedAt, err := time.Parse("2006-01-02", tx.BookingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: booking date %q on transaction %s: %v",
				ErrDataFormat, tx.BookingDate, tx.TransactionID, err)
		}

		if i > 0 {
			balance = balance.Sub(prevAmount)
		}

		enriched = append(enriched, models.EnrichedTransaction{
			ID:           tx.TransactionID,
			Weight:       i,
			Title:        tx.Title(),
			BookingDate:  tx.BookingDate,
			Amount:       utils.FormatAmount(amount, a.Format),
			AmountValue:  amount,
			Balance:      utils.FormatAmount(balance, a.Format),
			BalanceValue: balance,
			BookedAt:     bookedAt,
		})
		prevAmount = amount
	}

	return enriched, nil
}
