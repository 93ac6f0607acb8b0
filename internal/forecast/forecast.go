// Package forecast projects the ending balance of the upcoming period from
// the current rollover, the paycheck, per-category forecast budgets and the
// one-off expected items. Every value is derived on demand.
package forecast

import (
	"time"

	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/period"

	"github.com/shopspring/decimal"
)

// Engine computes forecasts over a ledger.
type Engine struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Engine {
	return &Engine{ledger: l}
}

// Line is one category of the forecast.
type Line struct {
	Category   models.Category
	Budget     decimal.Decimal
	Overridden bool
}

// Summary gathers the forecast figures.
type Summary struct {
	NextPaycheckDate time.Time
	Rollover         decimal.Decimal
	Paycheck         decimal.Decimal
	BudgetedExpenses decimal.Decimal
	BudgetedIncome   decimal.Decimal
	TotalBudgeted    decimal.Decimal
	ExpectedExpenses decimal.Decimal
	ExpectedIncome   decimal.Decimal
	ForecastedEnding decimal.Decimal
	Lines            []Line
}

// ForecastBudget is the override for cat when one is set, else its budget.
func (e *Engine) ForecastBudget(cat models.Category) decimal.Decimal {
	if v, ok := e.ledger.ForecastOverride(cat.ID); ok {
		return v
	}
	return cat.Budget
}

// ForecastBudgetedExpenses sums forecast budgets of non-income categories.
func (e *Engine) ForecastBudgetedExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, c := range e.ledger.Categories() {
		if !c.IsIncome() {
			total = total.Add(e.ForecastBudget(c))
		}
	}
	return total
}

// ForecastBudgetedIncome sums forecast budgets of income categories.
func (e *Engine) ForecastBudgetedIncome() decimal.Decimal {
	total := decimal.Zero
	for _, c := range e.ledger.Categories() {
		if c.IsIncome() {
			total = total.Add(e.ForecastBudget(c))
		}
	}
	return total
}

// TotalBudgeted is budgeted expenses net of budgeted income.
func (e *Engine) TotalBudgeted() decimal.Decimal {
	return e.ForecastBudgetedExpenses().Sub(e.ForecastBudgetedIncome())
}

func (e *Engine) TotalExpectedAdditional() decimal.Decimal {
	return models.SumExpected(e.ledger.ExpectedExpenses())
}

func (e *Engine) TotalExpectedIncome() decimal.Decimal {
	return models.SumExpected(e.ledger.ExpectedIncome())
}

// ForecastedEnding is rollover + paycheck - budgeted expenses - expected
// expenses + budgeted income + expected income.
func (e *Engine) ForecastedEnding() decimal.Decimal {
	return e.ledger.RolloverAmount().
		Add(e.ledger.PaycheckAmount()).
		Sub(e.ForecastBudgetedExpenses()).
		Sub(e.TotalExpectedAdditional()).
		Add(e.ForecastBudgetedIncome()).
		Add(e.TotalExpectedIncome())
}

// NextPaycheckDate is one month after the current period start.
func (e *Engine) NextPaycheckDate() time.Time {
	return period.NextPaycheckDate(e.ledger.CurrentPeriod().Start)
}

// Lines lists every category with its forecast budget, in category order.
func (e *Engine) Lines() []Line {
	categories := e.ledger.Categories()
	lines := make([]Line, 0, len(categories))
	for _, c := range categories {
		_, overridden := e.ledger.ForecastOverride(c.ID)
		lines = append(lines, Line{Category: c, Budget: e.ForecastBudget(c), Overridden: overridden})
	}
	return lines
}

// Summarize computes every figure at once.
func (e *Engine) Summarize() Summary {
	return Summary{
		NextPaycheckDate: e.NextPaycheckDate(),
		Rollover:         e.ledger.RolloverAmount(),
		Paycheck:         e.ledger.PaycheckAmount(),
		BudgetedExpenses: e.ForecastBudgetedExpenses(),
		BudgetedIncome:   e.ForecastBudgetedIncome(),
		TotalBudgeted:    e.TotalBudgeted(),
		ExpectedExpenses: e.TotalExpectedAdditional(),
		ExpectedIncome:   e.TotalExpectedIncome(),
		ForecastedEnding: e.ForecastedEnding(),
		Lines:            e.Lines(),
	}
}
