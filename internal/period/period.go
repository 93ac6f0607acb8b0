// Package period computes the paycheck-anchored monthly accounting windows.
//
// A period starts on the paycheck day of a month and ends the day before the
// same day one calendar month later. When the paycheck day does not exist in
// a month (the 31st in April, the 30th in February) the start is clamped to
// that month's last day, which shifts the effective anchor for short months.
// Month additions are clamped the same way, so a period starting Jan 31 ends
// Feb 27 (one calendar month later is Feb 28, minus one day).
//
// For anchors past the 28th this leaves days that belong to no window: with
// a day-31 anchor, Feb 28 maps to the period starting Jan 31 (which ends
// Feb 27) and Mar 28-30 map to the period starting Feb 28 (which ends
// Mar 27). Transactions on those days are not counted by current-period
// queries.
//
// Every function is pure and returns calendar dates at midnight UTC.
package period

import (
	"time"

	"fjacquet/daily-dollar/internal/dateutils"
)

// Window is an inclusive [Start, End] range of calendar dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether date falls inside the window, both ends included.
func (w Window) Contains(date time.Time) bool {
	return dateutils.InRange(date, w.Start, w.End)
}

// Start returns the start of the period containing today.
func Start(today time.Time, paycheckDay int) time.Time {
	day := dateutils.Day(today)
	paycheckDay = clampDay(paycheckDay)

	month := day.Month()
	if day.Day() < paycheckDay {
		month--
	}
	return dateutils.ClampedDate(day.Year(), month, paycheckDay)
}

// End returns the last day of the period beginning at start.
func End(start time.Time) time.Time {
	return dateutils.AddDays(NextPaycheckDate(start), -1)
}

// NextPaycheckDate is one calendar month after start.
func NextPaycheckDate(start time.Time) time.Time {
	return dateutils.AddMonths(start, 1)
}

// Current returns the window containing today.
func Current(today time.Time, paycheckDay int) Window {
	start := Start(today, paycheckDay)
	return Window{Start: start, End: End(start)}
}

// Previous returns the window immediately before the period starting at
// start: one calendar month before start through the day before start.
func Previous(start time.Time) Window {
	return Window{
		Start: dateutils.AddMonths(start, -1),
		End:   dateutils.AddDays(start, -1),
	}
}

// Following returns the start of the period after the one beginning at
// start, re-anchored on paycheckDay so that a clamped start (Feb 28 for a
// day-31 anchor) is followed by Mar 31 rather than Mar 28.
func Following(start time.Time, paycheckDay int) time.Time {
	next := dateutils.AddMonths(dateutils.StartOfMonth(start), 1)
	return dateutils.ClampedDate(next.Year(), next.Month(), clampDay(paycheckDay))
}

// Starts returns the start of the period containing today followed by the
// starts of the n-1 periods before it, newest first.
func Starts(today time.Time, paycheckDay int, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	current := Start(today, paycheckDay)
	starts := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		starts = append(starts, dateutils.ClampedDate(current.Year(), current.Month()-time.Month(i), clampDay(paycheckDay)))
	}
	return starts
}

func clampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 31 {
		return 31
	}
	return day
}
