// Package rollover detects period transitions and carries the ending balance
// of the period just closed into the beginning balance of the new one.
//
// The engine only mutates the ledger; saving the result is up to the caller.
package rollover

import (
	"time"

	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/period"

	"github.com/shopspring/decimal"
)

// maxCatchUpPeriods bounds the catch-up loop.
const maxCatchUpPeriods = 1200

// Outcome describes what CheckPeriodChange did.
type Outcome int

const (
	Unchanged Outcome = iota
	Initialized
	RolledOver
)

func (o Outcome) String() string {
	switch o {
	case Initialized:
		return "initialized"
	case RolledOver:
		return "rolled_over"
	default:
		return "unchanged"
	}
}

// Result reports a period check.
type Result struct {
	Outcome Outcome
	// PreviousStart is the recorded period start before the check; zero on
	// first run.
	PreviousStart    time.Time
	PeriodStart      time.Time
	PreviousBalance  decimal.Decimal
	BeginningBalance decimal.Decimal
	// PeriodsApplied counts the transitions applied: 1 in single-step mode,
	// one per elapsed boundary when catching up.
	PeriodsApplied int
}

// Changed reports whether the ledger was modified.
func (r Result) Changed() bool {
	return r.Outcome != Unchanged
}

// Engine runs period checks against a ledger.
type Engine struct {
	catchUp bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatchUp makes the engine apply one transition per elapsed period when
// more than one boundary was crossed since the last check. Without it a
// single transition is applied whatever the gap.
func WithCatchUp(enabled bool) Option {
	return func(e *Engine) {
		e.catchUp = enabled
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckPeriodChange compares the period containing now with the recorded
// period start.
//
// On first run it records the current period start and leaves the balance
// alone. When the period changed it sets the beginning balance to
// beginningBalance + paycheck + income - spending over the window preceding
// the new period, and records the new start. Otherwise it does nothing, so
// calling it again for the same period is a no-op.
func (e *Engine) CheckPeriodChange(l *ledger.Ledger, now time.Time) Result {
	current := period.Start(now, l.PaycheckDay())
	last, tracking := l.LastPeriodStart()

	res := Result{
		PreviousStart:    last,
		PeriodStart:      current,
		PreviousBalance:  l.BeginningBalance(),
		BeginningBalance: l.BeginningBalance(),
	}

	switch {
	case !tracking:
		l.SetPeriodStart(current)
		res.Outcome = Initialized
	case last.Equal(current):
		res.Outcome = Unchanged
	case e.catchUp && last.Before(current):
		res.PeriodsApplied = catchUp(l, last, current)
		res.Outcome = RolledOver
	default:
		transition(l, current)
		res.PeriodsApplied = 1
		res.Outcome = RolledOver
	}

	res.BeginningBalance = l.BeginningBalance()
	return res
}

// transition closes the period preceding start.
func transition(l *ledger.Ledger, start time.Time) {
	prev := period.Previous(start)
	spent, income := ledger.SplitIncome(l.TransactionsInPeriod(prev.Start, prev.End), l.IncomeCategoryIDs())

	l.SetBeginningBalance(l.BeginningBalance().Add(l.PaycheckAmount()).Add(income).Sub(spent))
	l.SetPeriodStart(start)
}

func catchUp(l *ledger.Ledger, last, current time.Time) int {
	cursor := last
	applied := 0
	for applied < maxCatchUpPeriods && cursor.Before(current) {
		next := period.Following(cursor, l.PaycheckDay())
		if !next.Before(current) {
			next = current
		}
		transition(l, next)
		cursor = next
		applied++
	}
	if !cursor.Equal(current) {
		l.SetPeriodStart(current)
	}
	return applied
}
