package ledger

import (
	"strings"
	"testing"
	"time"

	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amt(s string) decimal.Decimal {
	return models.MustParseAmount(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msg ...string) {
	t.Helper()
	assert.Truef(t, amt(want).Equal(got), "%s want %s, got %s", strings.Join(msg, " "), want, got.String())
}

func tx(id string, amount string, d time.Time, categoryID string) models.Transaction {
	return models.Transaction{ID: id, Amount: amt(amount), Date: d, CategoryID: categoryID}
}

// fixture evaluated on 2026-01-20 with a day-15 anchor, so the current
// period is 2026-01-15 .. 2026-02-14.
func fixture() *Ledger {
	snap := &models.Snapshot{
		BeginningBalance: amt("100"),
		PaycheckAmount:   amt("3000"),
		PaycheckDay:      15,
		Categories: []models.Category{
			{ID: "groceries", Name: "Groceries", Budget: amt("500")},
			{ID: "rent", Name: "Rent", Budget: amt("1200")},
			{ID: "income", Name: "Income", Budget: amt("0")},
			{ID: "side", Name: "Side income", Budget: amt("0")},
		},
		Transactions: []models.Transaction{
			tx("t1", "120", date(2026, 1, 16), "groceries"),
			tx("t2", "80", date(2026, 2, 14), "groceries"),
			tx("t3", "1300", date(2026, 1, 15), "rent"),
			tx("t4", "200", date(2026, 1, 20), "income"),
			tx("t5", "50", date(2026, 1, 21), "side"),
			tx("t6", "999", date(2026, 1, 14), "groceries"),
			tx("t7", "30", date(2026, 1, 25), "deleted"),
			tx("t8", "10", date(2025, 10, 20), "groceries"),
			tx("t9", "500", date(2025, 1, 19), "rent"),
		},
	}
	return New(snap, nil).AsOf(date(2026, 1, 20))
}

func TestNew_Defaults(t *testing.T) {
	l := New(nil, nil)
	assert.Len(t, l.Categories(), len(models.DefaultCategorySeeds))
	assert.NotNil(t, l.Snapshot().ForecastBudgets)
	assert.True(t, l.NeedsSetup())
}

func TestCurrentPeriod(t *testing.T) {
	w := fixture().CurrentPeriod()
	assert.Equal(t, date(2026, 1, 15), w.Start)
	assert.Equal(t, date(2026, 2, 14), w.End)
}

func TestTransactionsInPeriod_Inclusive(t *testing.T) {
	l := fixture()
	txs := l.TransactionsInPeriod(date(2026, 1, 15), date(2026, 2, 14))

	var ids []string
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5", "t7"}, ids)
}

func TestPeriodTransactions_NewestFirst(t *testing.T) {
	txs := fixture().PeriodTransactions(date(2026, 1, 15), date(2026, 2, 14))
	require.Len(t, txs, 6)
	assert.Equal(t, "t2", txs[0].ID)
	assert.Equal(t, "t3", txs[len(txs)-1].ID)
}

func TestAggregates(t *testing.T) {
	l := fixture()

	assertAmount(t, "1530", l.TotalSpentCurrent(), "spent")
	assertAmount(t, "200", l.TotalIncomeCurrent(), "income uses the first income category only")
	assertAmount(t, "1770", l.RemainingCurrent(), "remaining")
	assertAmount(t, "300", l.TotalUnallocatedBudget(), "unallocated")
	assertAmount(t, "1470", l.RolloverAmount(), "rollover")

	groceries, ok := l.Category("groceries")
	require.True(t, ok)
	assertAmount(t, "200", l.SpentForCategory(groceries))

	rent, _ := l.Category("rent")
	assertAmount(t, "1300", l.SpentForCategory(rent))
}

func TestTotalIncomeCurrent_NoIncomeCategory(t *testing.T) {
	snap := models.NewSnapshot(amt("1000"), 1, []models.CategorySeed{{Name: "Food", Budget: 100}})
	l := New(snap, nil).AsOf(date(2026, 3, 3))
	l.AddTransaction(amt("40"), date(2026, 3, 2), "", snap.Categories[0].ID)

	assert.True(t, l.TotalIncomeCurrent().IsZero())
	assertAmount(t, "40", l.TotalSpentCurrent())
}

func TestRolloverIdentity(t *testing.T) {
	ledgers := []*Ledger{
		fixture(),
		New(nil, nil).AsOf(date(2026, 6, 1)),
		fixture().AsOf(date(2025, 10, 31)),
	}

	empty := New(&models.Snapshot{PaycheckDay: 31, PaycheckAmount: amt("12.34")}, nil).AsOf(date(2026, 2, 28))
	ledgers = append(ledgers, empty)

	for i, l := range ledgers {
		sum := l.RolloverAmount().Add(l.TotalUnallocatedBudget())
		assert.True(t, sum.Equal(l.RemainingCurrent()), "ledger %d", i)
	}
}

func TestCategoryName_Fallback(t *testing.T) {
	l := fixture()
	assert.Equal(t, "Groceries", l.CategoryName("groceries"))
	assert.Equal(t, models.UnknownCategoryName, l.CategoryName("deleted"))
}

func TestCategoryTransactionsCurrent(t *testing.T) {
	txs := fixture().CategoryTransactionsCurrent("groceries")
	require.Len(t, txs, 2)
	assert.Equal(t, "t2", txs[0].ID)
	assert.Equal(t, "t1", txs[1].ID)
}

func TestPastPeriods(t *testing.T) {
	starts := fixture().PastPeriods(DefaultHistoryPeriods)
	assert.Equal(t, []time.Time{
		date(2026, 1, 15),
		date(2025, 12, 15),
		date(2025, 10, 15),
	}, starts)

	assert.Empty(t, fixture().PastPeriods(0))
}

func TestAnnualSpending(t *testing.T) {
	report := fixture().AnnualSpending()
	require.Len(t, report, 2)

	assert.Equal(t, "rent", report[0].Category.ID)
	assertAmount(t, "1300", report[0].Amount)
	assert.Equal(t, "groceries", report[1].Category.ID)
	assertAmount(t, "1209", report[1].Amount)
}

func TestAsOf_SharesState(t *testing.T) {
	base := New(nil, nil)
	view := base.AsOf(date(2026, 1, 1))
	view.SetBeginningBalance(amt("42"))
	assertAmount(t, "42", base.BeginningBalance())
	assert.Equal(t, date(2026, 1, 1), view.Today())
}

func TestNeedsSetup(t *testing.T) {
	l := New(nil, nil)
	assert.True(t, l.NeedsSetup())

	l.SetBeginningBalance(amt("10"))
	assert.False(t, l.NeedsSetup())

	l.SetBeginningBalance(decimal.Zero)
	l.AddTransaction(amt("1"), date(2026, 1, 1), "", "x")
	assert.False(t, l.NeedsSetup())
}

func TestSetPaycheck(t *testing.T) {
	l := New(nil, nil)
	require.NoError(t, l.SetPaycheck(amt("2500"), 31))
	assert.Equal(t, 31, l.PaycheckDay())
	assertAmount(t, "2500", l.PaycheckAmount())

	err := l.SetPaycheck(amt("1"), 0)
	var verr *parsererror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "paycheckDay", verr.Field)
	assert.Equal(t, 31, l.PaycheckDay())
}

func TestSetPeriodStart(t *testing.T) {
	l := New(nil, nil)
	_, ok := l.LastPeriodStart()
	assert.False(t, ok)

	l.SetPeriodStart(time.Date(2026, 1, 15, 13, 45, 0, 0, time.UTC))
	start, ok := l.LastPeriodStart()
	assert.True(t, ok)
	assert.Equal(t, date(2026, 1, 15), start)
}
