// Package ledger holds the in-memory budget state and answers every
// aggregation query over it.
//
// Queries are evaluated against the ledger's clock; use AsOf to pin them to
// a specific date. Nothing is cached: every aggregate is recomputed from the
// snapshot on each call. A Ledger is not safe for concurrent use.
package ledger

import (
	"time"

	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/period"

	"github.com/shopspring/decimal"
)

// Ledger wraps a snapshot with the queries and mutations defined on it.
type Ledger struct {
	snap  *models.Snapshot
	clock dateutils.Clock
}

// New creates a ledger over snap. A nil snapshot starts from
// models.DefaultSnapshot and a nil clock uses the system clock.
func New(snap *models.Snapshot, clock dateutils.Clock) *Ledger {
	if snap == nil {
		snap = models.DefaultSnapshot()
	}
	if snap.ForecastBudgets == nil {
		snap.ForecastBudgets = map[string]decimal.Decimal{}
	}
	if clock == nil {
		clock = dateutils.SystemClock{}
	}
	return &Ledger{snap: snap, clock: clock}
}

// AsOf returns a view of the same snapshot whose queries are evaluated on
// date. Mutations through either ledger are visible to both.
func (l *Ledger) AsOf(date time.Time) *Ledger {
	return &Ledger{snap: l.snap, clock: dateutils.FixedClock(date)}
}

// Snapshot exposes the underlying state, for persistence.
func (l *Ledger) Snapshot() *models.Snapshot {
	return l.snap
}

// Today is the evaluation date as a calendar day.
func (l *Ledger) Today() time.Time {
	return dateutils.Day(l.clock.Now())
}

func (l *Ledger) BeginningBalance() decimal.Decimal { return l.snap.BeginningBalance }
func (l *Ledger) PaycheckAmount() decimal.Decimal   { return l.snap.PaycheckAmount }
func (l *Ledger) PaycheckDay() int                  { return l.snap.PaycheckDay }

// LastPeriodStart returns the recorded period start and whether one has been
// recorded yet.
func (l *Ledger) LastPeriodStart() (time.Time, bool) {
	return l.snap.LastPeriodStart, l.snap.HasPeriodStart()
}

// CurrentPeriod is the window containing the evaluation date.
func (l *Ledger) CurrentPeriod() period.Window {
	return period.Current(l.Today(), l.snap.PaycheckDay)
}

// NeedsSetup reports whether the budget looks untouched: no beginning
// balance and no transactions.
func (l *Ledger) NeedsSetup() bool {
	return l.snap.BeginningBalance.IsZero() && len(l.snap.Transactions) == 0
}
