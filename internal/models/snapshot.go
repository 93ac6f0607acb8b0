package models

import (
	"time"

	"fjacquet/daily-dollar/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Paycheck day bounds
const (
	MinPaycheckDay = 1
	MaxPaycheckDay = 31
)

// Snapshot is the whole budgeting state. It is loaded and saved as one
// document; the engines only ever work on the in-memory copy.
type Snapshot struct {
	BeginningBalance decimal.Decimal
	PaycheckAmount   decimal.Decimal
	PaycheckDay      int
	Categories       []Category
	Transactions     []Transaction
	ExpectedExpenses []ExpectedItem
	ExpectedIncome   []ExpectedItem
	// LastPeriodStart is the zero time until the first period check runs.
	LastPeriodStart time.Time
	// ForecastBudgets maps category IDs to the budget used for the next
	// period's projection. Sparse: missing entries use Category.Budget.
	ForecastBudgets map[string]decimal.Decimal
}

// HasPeriodStart reports whether LastPeriodStart has been recorded.
func (s *Snapshot) HasPeriodStart() bool {
	return !s.LastPeriodStart.IsZero()
}

// Validate checks the invariants a loaded snapshot must satisfy.
func (s *Snapshot) Validate() error {
	if s.PaycheckDay < MinPaycheckDay || s.PaycheckDay > MaxPaycheckDay {
		return &parsererror.ValidationError{
			Field:  "paycheckDay",
			Reason: "must be between 1 and 31",
		}
	}

	seen := make(map[string]struct{}, len(s.Categories))
	for _, c := range s.Categories {
		if c.ID == "" {
			return &parsererror.ValidationError{Field: "categories", Reason: "category without id: " + c.Name}
		}
		if _, dup := seen[c.ID]; dup {
			return &parsererror.ValidationError{Field: "categories", Reason: "duplicate category id " + c.ID}
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Categories = append([]Category(nil), s.Categories...)
	c.Transactions = append([]Transaction(nil), s.Transactions...)
	c.ExpectedExpenses = append([]ExpectedItem(nil), s.ExpectedExpenses...)
	c.ExpectedIncome = append([]ExpectedItem(nil), s.ExpectedIncome...)
	c.ForecastBudgets = make(map[string]decimal.Decimal, len(s.ForecastBudgets))
	for k, v := range s.ForecastBudgets {
		c.ForecastBudgets[k] = v
	}
	return &c
}

// CategorySeed describes a category created on first run.
type CategorySeed struct {
	Name   string  `yaml:"name"`
	Budget float64 `yaml:"budget"`
}

// DefaultCategorySeeds is the category set of a brand new budget.
var DefaultCategorySeeds = []CategorySeed{
	{Name: "Rent/Mortgage", Budget: 1200},
	{Name: "Groceries", Budget: 500},
	{Name: "Utilities", Budget: 200},
	{Name: "Transportation", Budget: 300},
	{Name: "Savings", Budget: 400},
	{Name: "Income", Budget: 0},
}

// NewSnapshot returns a fresh budget with the given paycheck and categories.
// An empty seed list falls back to DefaultCategorySeeds.
func NewSnapshot(paycheckAmount decimal.Decimal, paycheckDay int, seeds []CategorySeed) *Snapshot {
	if len(seeds) == 0 {
		seeds = DefaultCategorySeeds
	}
	categories := make([]Category, 0, len(seeds))
	for _, seed := range seeds {
		categories = append(categories, NewCategory(seed.Name, decimal.NewFromFloat(seed.Budget)))
	}
	return &Snapshot{
		BeginningBalance: decimal.Zero,
		PaycheckAmount:   paycheckAmount,
		PaycheckDay:      paycheckDay,
		Categories:       categories,
		ForecastBudgets:  map[string]decimal.Decimal{},
	}
}

// DefaultSnapshot is NewSnapshot with a 3000 paycheck on the 1st.
func DefaultSnapshot() *Snapshot {
	return NewSnapshot(decimal.NewFromInt(3000), 1, nil)
}
