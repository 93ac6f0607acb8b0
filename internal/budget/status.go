package budget

import (
	"time"

	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/period"

	"github.com/shopspring/decimal"
)

// CategoryStatus is one category's standing in the current period.
type CategoryStatus struct {
	Category models.Category
	Spent    decimal.Decimal
	// Left is budget minus spent; negative when overspent.
	Left decimal.Decimal
}

// Status is the current period at a glance.
type Status struct {
	Period           period.Window
	NeedsSetup       bool
	BeginningBalance decimal.Decimal
	Paycheck         decimal.Decimal
	PaycheckDay      int
	Spent            decimal.Decimal
	Income           decimal.Decimal
	Remaining        decimal.Decimal
	Unallocated      decimal.Decimal
	Rollover         decimal.Decimal
	Categories       []CategoryStatus
}

// History is the past periods and the trailing-year spending.
type History struct {
	Periods        []PeriodSummary
	AnnualSpending []ledger.CategorySpending
}

// PeriodSummary lists a past period's transactions, newest first.
type PeriodSummary struct {
	Window       period.Window
	Transactions []models.Transaction
}

// Savings summarizes the savings category.
type Savings struct {
	Category     models.Category
	Found        bool
	Total        decimal.Decimal
	Transactions []models.Transaction
}

func (s *Service) Status() (Status, error) {
	var st Status
	err := s.Read(func(l *ledger.Ledger) {
		st = Status{
			Period:           l.CurrentPeriod(),
			NeedsSetup:       l.NeedsSetup(),
			BeginningBalance: l.BeginningBalance(),
			Paycheck:         l.PaycheckAmount(),
			PaycheckDay:      l.PaycheckDay(),
			Spent:            l.TotalSpentCurrent(),
			Income:           l.TotalIncomeCurrent(),
			Remaining:        l.RemainingCurrent(),
			Unallocated:      l.TotalUnallocatedBudget(),
			Rollover:         l.RolloverAmount(),
		}
		for _, c := range l.Categories() {
			spent := l.SpentForCategory(c)
			st.Categories = append(st.Categories, CategoryStatus{Category: c, Spent: spent, Left: c.Budget.Sub(spent)})
		}
	})
	return st, err
}

// History returns up to n past periods holding transactions.
func (s *Service) History(n int) (History, error) {
	var h History
	err := s.Read(func(l *ledger.Ledger) {
		for _, start := range l.PastPeriods(n) {
			w := period.Window{Start: start, End: period.End(start)}
			h.Periods = append(h.Periods, PeriodSummary{Window: w, Transactions: l.PeriodTransactions(w.Start, w.End)})
		}
		h.AnnualSpending = l.AnnualSpending()
	})
	return h, err
}

func (s *Service) Savings() (Savings, error) {
	var sv Savings
	err := s.Read(func(l *ledger.Ledger) {
		sv.Category, sv.Found = l.SavingsCategory()
		sv.Total = l.TotalSaved()
		sv.Transactions = l.SavingsTransactions()
	})
	return sv, err
}

// CategoryName resolves a category id for display.
func (s *Service) CategoryName(id string) string {
	name := models.UnknownCategoryName
	_ = s.Read(func(l *ledger.Ledger) {
		name = l.CategoryName(id)
	})
	return name
}

// Now is the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}
