package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// UnknownCategoryName is shown for transactions whose category was deleted.
	UnknownCategoryName = "Unknown category"

	incomeTag  = "income"
	savingsTag = "savings"
)

// Category is a spending bucket with a per-period budget. Names are mutable
// and need not be unique; the ID is the identity.
type Category struct {
	ID     string          `json:"id" yaml:"id"`
	Name   string          `json:"name" yaml:"name"`
	Budget decimal.Decimal `json:"budget" yaml:"budget"`
}

// NewCategory creates a category with a fresh identifier.
func NewCategory(name string, budget decimal.Decimal) Category {
	return Category{
		ID:     uuid.NewString(),
		Name:   name,
		Budget: budget,
	}
}

// IsIncome reports whether the category is tagged as income, which is the
// case when its name contains "income" in any letter case.
//
// The tag lives in the name only: renaming "Income" to "Salary" silently
// turns its transactions into spending.
func (c Category) IsIncome() bool {
	return strings.Contains(strings.ToLower(c.Name), incomeTag)
}

// IsSavings reports whether the name contains "savings" in any letter case.
func (c Category) IsSavings() bool {
	return strings.Contains(strings.ToLower(c.Name), savingsTag)
}
