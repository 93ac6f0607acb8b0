package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpectedItem is a one-off adjustment to the next period's forecast that sits
// outside the category budgets. The same shape serves expected expenses and
// expected income; which one it is depends on the list holding it.
type ExpectedItem struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

// NewExpectedItem creates an expected item. Negative amounts are stored as
// their magnitude since the list already carries the sign.
func NewExpectedItem(amount decimal.Decimal, note string) ExpectedItem {
	return ExpectedItem{
		ID:     uuid.NewString(),
		Amount: amount.Abs(),
		Note:   note,
	}
}

// SumExpected totals the amounts of items.
func SumExpected(items []ExpectedItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
