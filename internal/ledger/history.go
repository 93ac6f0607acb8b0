package ledger

import (
	"sort"
	"time"

	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/period"

	"github.com/shopspring/decimal"
)

// DefaultHistoryPeriods is how many periods PastPeriods looks back by default.
const DefaultHistoryPeriods = 12

// CategorySpending is one row of the annual spending report.
type CategorySpending struct {
	Category models.Category
	Amount   decimal.Decimal
}

// PastPeriods returns the starts of the current period and the n-1 before
// it that hold at least one transaction dated in [start, start+1 month),
// newest first.
func (l *Ledger) PastPeriods(n int) []time.Time {
	var starts []time.Time
	for _, start := range period.Starts(l.Today(), l.snap.PaycheckDay, n) {
		next := period.NextPaycheckDate(start)
		for _, tx := range l.snap.Transactions {
			if !tx.Date.Before(start) && tx.Date.Before(next) {
				starts = append(starts, start)
				break
			}
		}
	}
	return starts
}

// AnnualSpending totals spending per non-income category over the year
// ending on the evaluation date. Only categories that still exist and have a
// positive total are reported, largest first.
func (l *Ledger) AnnualSpending() []CategorySpending {
	since := dateutils.Day(l.Today().AddDate(-1, 0, 0))
	incomeIDs := l.IncomeCategoryIDs()

	totals := make(map[string]decimal.Decimal)
	for _, tx := range l.snap.Transactions {
		if tx.Date.Before(since) {
			continue
		}
		if _, income := incomeIDs[tx.CategoryID]; income {
			continue
		}
		totals[tx.CategoryID] = totals[tx.CategoryID].Add(tx.Amount)
	}

	var report []CategorySpending
	for _, c := range l.snap.Categories {
		if amount, ok := totals[c.ID]; ok && amount.IsPositive() {
			report = append(report, CategorySpending{Category: c, Amount: amount})
		}
	}
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Amount.GreaterThan(report[j].Amount)
	})
	return report
}

// SavingsCategory returns the first category whose name contains "savings".
func (l *Ledger) SavingsCategory() (models.Category, bool) {
	for _, c := range l.snap.Categories {
		if c.IsSavings() {
			return c, true
		}
	}
	return models.Category{}, false
}

// SavingsTransactions returns every transaction of the savings category,
// newest first.
func (l *Ledger) SavingsTransactions() []models.Transaction {
	savings, ok := l.SavingsCategory()
	if !ok {
		return nil
	}
	var txs []models.Transaction
	for _, tx := range l.snap.Transactions {
		if tx.CategoryID == savings.ID {
			txs = append(txs, tx)
		}
	}
	models.SortNewestFirst(txs)
	return txs
}

// TotalSaved nets deposits and withdrawals of the savings category.
func (l *Ledger) TotalSaved() decimal.Decimal {
	return models.SumAmounts(l.SavingsTransactions())
}
