package rollover

import (
	"testing"
	"time"

	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/models"

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

func newLedger(lastStart time.Time) *ledger.Ledger {
	snap := &models.Snapshot{
		BeginningBalance: amt("100"),
		PaycheckAmount:   amt("1000"),
		PaycheckDay:      1,
		Categories: []models.Category{
			{ID: "food", Name: "Food", Budget: amt("400")},
			{ID: "income", Name: "Income", Budget: amt("0")},
			{ID: "bonus", Name: "Bonus income", Budget: amt("0")},
		},
		LastPeriodStart: lastStart,
	}
	return ledger.New(snap, nil)
}

func TestCheckPeriodChange_FirstRun(t *testing.T) {
	l := newLedger(time.Time{})
	now := time.Date(2026, 1, 7, 22, 15, 0, 0, time.UTC)

	res := NewEngine().CheckPeriodChange(l, now)

	assert.Equal(t, Initialized, res.Outcome)
	assert.True(t, res.Changed())
	start, ok := l.LastPeriodStart()
	require.True(t, ok)
	assert.Equal(t, date(2026, 1, 1), start)
	assert.True(t, l.BeginningBalance().Equal(amt("100")))
	assert.Zero(t, res.PeriodsApplied)
}

func TestCheckPeriodChange_Transition(t *testing.T) {
	l := newLedger(date(2026, 1, 1))
	l.AddTransaction(amt("300"), date(2026, 1, 10), "", "food")
	l.AddTransaction(amt("50"), date(2026, 1, 15), "", "income")
	l.AddTransaction(amt("20"), date(2026, 1, 20), "", "bonus")
	l.AddTransaction(amt("999"), date(2026, 2, 5), "", "food")
	l.AddTransaction(amt("5"), date(2025, 12, 31), "", "food")

	res := NewEngine().CheckPeriodChange(l, date(2026, 2, 10))

	assert.Equal(t, RolledOver, res.Outcome)
	assert.Equal(t, 1, res.PeriodsApplied)
	assert.Equal(t, date(2026, 1, 1), res.PreviousStart)
	assert.Equal(t, date(2026, 2, 1), res.PeriodStart)
	assert.True(t, res.PreviousBalance.Equal(amt("100")))
	// 100 + 1000 + (50 + 20) - 300, every income category counts here
	assert.True(t, l.BeginningBalance().Equal(amt("870")), "got %s", l.BeginningBalance())
	assert.True(t, res.BeginningBalance.Equal(amt("870")))

	start, _ := l.LastPeriodStart()
	assert.Equal(t, date(2026, 2, 1), start)
}

func TestCheckPeriodChange_Idempotent(t *testing.T) {
	l := newLedger(date(2026, 1, 1))
	l.AddTransaction(amt("300"), date(2026, 1, 10), "", "food")
	engine := NewEngine()
	now := date(2026, 2, 10)

	first := engine.CheckPeriodChange(l, now)
	require.Equal(t, RolledOver, first.Outcome)
	balance := l.BeginningBalance()

	second := engine.CheckPeriodChange(l, now)
	assert.Equal(t, Unchanged, second.Outcome)
	assert.False(t, second.Changed())
	assert.True(t, l.BeginningBalance().Equal(balance))
}

func TestCheckPeriodChange_SingleStepSkipsMissedPeriods(t *testing.T) {
	l := newLedger(date(2025, 11, 1))
	l.AddTransaction(amt("300"), date(2026, 1, 10), "", "food")

	res := NewEngine().CheckPeriodChange(l, date(2026, 2, 10))

	assert.Equal(t, 1, res.PeriodsApplied)
	assert.True(t, l.BeginningBalance().Equal(amt("800")), "got %s", l.BeginningBalance())
}

func TestCheckPeriodChange_CatchUp(t *testing.T) {
	l := newLedger(date(2025, 11, 1))
	l.AddTransaction(amt("300"), date(2026, 1, 10), "", "food")

	res := NewEngine(WithCatchUp(true)).CheckPeriodChange(l, date(2026, 2, 10))

	assert.Equal(t, RolledOver, res.Outcome)
	assert.Equal(t, 3, res.PeriodsApplied)
	// three paychecks, one spend in January
	assert.True(t, l.BeginningBalance().Equal(amt("2800")), "got %s", l.BeginningBalance())
	start, _ := l.LastPeriodStart()
	assert.Equal(t, date(2026, 2, 1), start)
}

func TestCheckPeriodChange_CatchUpAfterAnchorChange(t *testing.T) {
	l := newLedger(date(2026, 1, 1))
	require.NoError(t, l.SetPaycheck(amt("1000"), 15))

	res := NewEngine(WithCatchUp(true)).CheckPeriodChange(l, date(2026, 3, 20))

	// Jan 1 -> Feb 15 -> Mar 15
	assert.Equal(t, 2, res.PeriodsApplied)
	start, _ := l.LastPeriodStart()
	assert.Equal(t, date(2026, 3, 15), start)
	assert.True(t, l.BeginningBalance().Equal(amt("2100")))
}

func TestCheckPeriodChange_CatchUpMatchesSingleStepForOnePeriod(t *testing.T) {
	single := newLedger(date(2026, 1, 1))
	looped := newLedger(date(2026, 1, 1))
	for _, l := range []*ledger.Ledger{single, looped} {
		l.AddTransaction(amt("120"), date(2026, 1, 3), "", "food")
		l.AddTransaction(amt("40"), date(2026, 1, 4), "", "income")
	}

	NewEngine().CheckPeriodChange(single, date(2026, 2, 2))
	NewEngine(WithCatchUp(true)).CheckPeriodChange(looped, date(2026, 2, 2))

	assert.True(t, single.BeginningBalance().Equal(looped.BeginningBalance()))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "unchanged", Unchanged.String())
	assert.Equal(t, "initialized", Initialized.String())
	assert.Equal(t, "rolled_over", RolledOver.String())
}
