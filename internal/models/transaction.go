package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a single dated amount booked against a category.
//
// Spending is positive. A withdrawal from savings is recorded with a negative
// amount against the savings category. CategoryID may reference a category
// that no longer exists.
type Transaction struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Note       string          `json:"note"`
	CategoryID string          `json:"categoryId"`
}

// NewTransaction creates a transaction with a fresh identifier. The date is
// truncated to its calendar day.
func NewTransaction(amount decimal.Decimal, date time.Time, note, categoryID string) Transaction {
	return Transaction{
		ID:         uuid.NewString(),
		Amount:     amount,
		Date:       calendarDay(date),
		Note:       note,
		CategoryID: categoryID,
	}
}

// SortNewestFirst orders transactions by date, most recent first. Ties keep
// their insertion order.
func SortNewestFirst(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}

// SumAmounts totals the amounts of txs.
func SumAmounts(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
