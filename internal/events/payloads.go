package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Change is published as LedgerChanged after every applied mutation.
// Persisted is false when the save that followed the mutation failed.
type Change struct {
	Operation string
	EntityID  string
	Persisted bool
}

// Rollover is published as PeriodRolledOver when a new period begins.
type Rollover struct {
	PeriodStart      time.Time
	BeginningBalance decimal.Decimal
	PeriodsApplied   int
}

// Import is published as ImportCompleted after a CSV import.
type Import struct {
	Imported          int
	Failed            int
	CreatedCategories []string
}
