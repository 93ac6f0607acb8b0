package ledger

import (
	"time"

	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/models"

	"github.com/shopspring/decimal"
)

// Categories returns a copy of the category list in insertion order.
func (l *Ledger) Categories() []models.Category {
	return append([]models.Category(nil), l.snap.Categories...)
}

// Transactions returns a copy of all transactions in insertion order.
func (l *Ledger) Transactions() []models.Transaction {
	return append([]models.Transaction(nil), l.snap.Transactions...)
}

func (l *Ledger) ExpectedExpenses() []models.ExpectedItem {
	return append([]models.ExpectedItem(nil), l.snap.ExpectedExpenses...)
}

func (l *Ledger) ExpectedIncome() []models.ExpectedItem {
	return append([]models.ExpectedItem(nil), l.snap.ExpectedIncome...)
}

// Category looks up a category by id.
func (l *Ledger) Category(id string) (models.Category, bool) {
	for _, c := range l.snap.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryByName returns the first category whose name equals name exactly.
func (l *Ledger) CategoryByName(name string) (models.Category, bool) {
	for _, c := range l.snap.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryName resolves id to a name, falling back to
// models.UnknownCategoryName for deleted categories.
func (l *Ledger) CategoryName(id string) string {
	if c, ok := l.Category(id); ok {
		return c.Name
	}
	return models.UnknownCategoryName
}

// Transaction looks up a transaction by id.
func (l *Ledger) Transaction(id string) (models.Transaction, bool) {
	for _, tx := range l.snap.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return models.Transaction{}, false
}

// IncomeCategoryIDs returns the ids of every income-tagged category.
func (l *Ledger) IncomeCategoryIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, c := range l.snap.Categories {
		if c.IsIncome() {
			ids[c.ID] = struct{}{}
		}
	}
	return ids
}

// FirstIncomeCategory returns the first income-tagged category.
func (l *Ledger) FirstIncomeCategory() (models.Category, bool) {
	for _, c := range l.snap.Categories {
		if c.IsIncome() {
			return c, true
		}
	}
	return models.Category{}, false
}

// TransactionsInPeriod returns the transactions dated in [start, end], both
// ends inclusive, in insertion order.
func (l *Ledger) TransactionsInPeriod(start, end time.Time) []models.Transaction {
	var txs []models.Transaction
	for _, tx := range l.snap.Transactions {
		if dateutils.InRange(tx.Date, start, end) {
			txs = append(txs, tx)
		}
	}
	return txs
}

// PeriodTransactions is TransactionsInPeriod sorted newest first.
func (l *Ledger) PeriodTransactions(start, end time.Time) []models.Transaction {
	txs := l.TransactionsInPeriod(start, end)
	models.SortNewestFirst(txs)
	return txs
}

// CurrentTransactions returns the transactions of the current period.
func (l *Ledger) CurrentTransactions() []models.Transaction {
	w := l.CurrentPeriod()
	return l.TransactionsInPeriod(w.Start, w.End)
}

// CategoryTransactionsCurrent returns the current period's transactions
// booked against categoryID, newest first.
func (l *Ledger) CategoryTransactionsCurrent(categoryID string) []models.Transaction {
	var txs []models.Transaction
	for _, tx := range l.CurrentTransactions() {
		if tx.CategoryID == categoryID {
			txs = append(txs, tx)
		}
	}
	models.SortNewestFirst(txs)
	return txs
}

// SplitIncome sums txs into spending and income using incomeIDs. A
// transaction whose category is not an income category counts as spending,
// including ones referencing deleted categories.
func SplitIncome(txs []models.Transaction, incomeIDs map[string]struct{}) (spent, income decimal.Decimal) {
	spent, income = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if _, ok := incomeIDs[tx.CategoryID]; ok {
			income = income.Add(tx.Amount)
		} else {
			spent = spent.Add(tx.Amount)
		}
	}
	return spent, income
}

// TotalSpentCurrent sums the current period's transactions outside every
// income category.
func (l *Ledger) TotalSpentCurrent() decimal.Decimal {
	spent, _ := SplitIncome(l.CurrentTransactions(), l.IncomeCategoryIDs())
	return spent
}

// TotalIncomeCurrent sums the current period's transactions booked against
// the first income category only. Transactions in any further income
// category are neither income nor spending here.
func (l *Ledger) TotalIncomeCurrent() decimal.Decimal {
	income, ok := l.FirstIncomeCategory()
	if !ok {
		return decimal.Zero
	}
	return l.SpentForCategory(income)
}

// RemainingCurrent is beginning balance + paycheck + income - spending for
// the current period.
func (l *Ledger) RemainingCurrent() decimal.Decimal {
	return l.snap.BeginningBalance.
		Add(l.snap.PaycheckAmount).
		Add(l.TotalIncomeCurrent()).
		Sub(l.TotalSpentCurrent())
}

// SpentForCategory sums the current period's transactions booked against
// cat.
func (l *Ledger) SpentForCategory(cat models.Category) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.CurrentTransactions() {
		if tx.CategoryID == cat.ID {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// TotalUnallocatedBudget sums, over every category, the part of its budget
// not yet spent this period. Overspent categories contribute zero.
func (l *Ledger) TotalUnallocatedBudget() decimal.Decimal {
	total := decimal.Zero
	for _, c := range l.snap.Categories {
		total = total.Add(models.PositivePart(c.Budget.Sub(l.SpentForCategory(c))))
	}
	return total
}

// RolloverAmount is the remaining balance not reserved by unspent category
// budgets.
func (l *Ledger) RolloverAmount() decimal.Decimal {
	return l.RemainingCurrent().Sub(l.TotalUnallocatedBudget())
}
