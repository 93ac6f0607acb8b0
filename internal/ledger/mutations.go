package ledger

import (
	"fmt"
	"time"

	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/parsererror"

	"github.com/shopspring/decimal"
)

// AddCategory appends a new category and returns it.
func (l *Ledger) AddCategory(name string, budget decimal.Decimal) models.Category {
	c := models.NewCategory(name, budget)
	l.snap.Categories = append(l.snap.Categories, c)
	return c
}

// UpdateCategory renames and rebudgets the category with the given id.
func (l *Ledger) UpdateCategory(id, name string, budget decimal.Decimal) bool {
	for i := range l.snap.Categories {
		if l.snap.Categories[i].ID == id {
			l.snap.Categories[i].Name = name
			l.snap.Categories[i].Budget = budget
			return true
		}
	}
	return false
}

// DeleteCategory removes a category and its forecast override. Its
// transactions stay and resolve to the unknown category name.
func (l *Ledger) DeleteCategory(id string) bool {
	for i, c := range l.snap.Categories {
		if c.ID == id {
			l.snap.Categories = append(l.snap.Categories[:i], l.snap.Categories[i+1:]...)
			delete(l.snap.ForecastBudgets, id)
			return true
		}
	}
	return false
}

// AddTransaction books amount against categoryID on date. The category is
// not required to exist.
func (l *Ledger) AddTransaction(amount decimal.Decimal, date time.Time, note, categoryID string) models.Transaction {
	tx := models.NewTransaction(amount, date, note, categoryID)
	l.snap.Transactions = append(l.snap.Transactions, tx)
	return tx
}

// UpdateTransaction replaces the transaction with the same id.
func (l *Ledger) UpdateTransaction(tx models.Transaction) bool {
	for i := range l.snap.Transactions {
		if l.snap.Transactions[i].ID == tx.ID {
			tx.Date = dateutils.Day(tx.Date)
			l.snap.Transactions[i] = tx
			return true
		}
	}
	return false
}

func (l *Ledger) DeleteTransaction(id string) bool {
	for i, tx := range l.snap.Transactions {
		if tx.ID == id {
			l.snap.Transactions = append(l.snap.Transactions[:i], l.snap.Transactions[i+1:]...)
			return true
		}
	}
	return false
}

// WithdrawFromSavings records a withdrawal of amount as a negative
// transaction against the savings category. It reports false when no
// savings category exists.
func (l *Ledger) WithdrawFromSavings(amount decimal.Decimal, date time.Time, note string) (models.Transaction, bool) {
	savings, ok := l.SavingsCategory()
	if !ok {
		return models.Transaction{}, false
	}
	return l.AddTransaction(amount.Abs().Neg(), date, note, savings.ID), true
}

func (l *Ledger) AddExpectedExpense(amount decimal.Decimal, note string) models.ExpectedItem {
	item := models.NewExpectedItem(amount, note)
	l.snap.ExpectedExpenses = append(l.snap.ExpectedExpenses, item)
	return item
}

func (l *Ledger) DeleteExpectedExpense(id string) bool {
	var ok bool
	l.snap.ExpectedExpenses, ok = removeExpected(l.snap.ExpectedExpenses, id)
	return ok
}

func (l *Ledger) AddExpectedIncome(amount decimal.Decimal, note string) models.ExpectedItem {
	item := models.NewExpectedItem(amount, note)
	l.snap.ExpectedIncome = append(l.snap.ExpectedIncome, item)
	return item
}

func (l *Ledger) DeleteExpectedIncome(id string) bool {
	var ok bool
	l.snap.ExpectedIncome, ok = removeExpected(l.snap.ExpectedIncome, id)
	return ok
}

func removeExpected(items []models.ExpectedItem, id string) ([]models.ExpectedItem, bool) {
	for i, item := range items {
		if item.ID == id {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

// ForecastOverride returns the forecast budget set for categoryID, if any.
func (l *Ledger) ForecastOverride(categoryID string) (decimal.Decimal, bool) {
	v, ok := l.snap.ForecastBudgets[categoryID]
	return v, ok
}

// SetForecastOverride sets the next-period budget of an existing category.
func (l *Ledger) SetForecastOverride(categoryID string, budget decimal.Decimal) bool {
	if _, ok := l.Category(categoryID); !ok {
		return false
	}
	l.snap.ForecastBudgets[categoryID] = budget
	return true
}

// ClearForecastOverride removes an override, reporting whether one existed.
func (l *Ledger) ClearForecastOverride(categoryID string) bool {
	if _, ok := l.snap.ForecastBudgets[categoryID]; !ok {
		return false
	}
	delete(l.snap.ForecastBudgets, categoryID)
	return true
}

func (l *Ledger) SetBeginningBalance(balance decimal.Decimal) {
	l.snap.BeginningBalance = balance
}

// SetPaycheck changes the paycheck amount and anchor day.
func (l *Ledger) SetPaycheck(amount decimal.Decimal, day int) error {
	if day < models.MinPaycheckDay || day > models.MaxPaycheckDay {
		return &parsererror.ValidationError{
			Field:  "paycheckDay",
			Reason: fmt.Sprintf("%d is not between %d and %d", day, models.MinPaycheckDay, models.MaxPaycheckDay),
		}
	}
	l.snap.PaycheckAmount = amount
	l.snap.PaycheckDay = day
	return nil
}

// SetPeriodStart records the start of the period last accounted for.
func (l *Ledger) SetPeriodStart(start time.Time) {
	l.snap.LastPeriodStart = dateutils.Day(start)
}
