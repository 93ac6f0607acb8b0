// Package dateutils provides the calendar-date operations used throughout the application.
//
// All dates handled by the budgeting engine are calendar dates: they are
// normalized to midnight UTC so that comparisons and month arithmetic never
// depend on the local time zone or the time of day.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts used throughout the application
const (
	DateLayoutISO   = "2006-01-02"
	DateLayoutCSV   = "1/2/06" // MM/dd/yy, leading zeros optional
	DateLayoutUS    = "01/02/2006"
	DateLayoutMonth = "January 2006"
	DateLayoutShort = "Jan 2, 2006"
)

// Day returns the calendar date of t (as seen in t's own location) at
// midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampedDate builds the date (year, month, day), clamping day to the last
// valid day of that month. Month overflow is normalized first, so month 0 is
// December of the previous year.
func ClampedDate(year int, month time.Month, day int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := DaysIn(first.Year(), first.Month())
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddMonths moves t by n calendar months. When the day of month does not
// exist in the target month the result is clamped to its last day, so
// Jan 31 + 1 month is Feb 28 (or 29), never Mar 3.
func AddMonths(t time.Time, n int) time.Time {
	d := Day(t)
	return ClampedDate(d.Year(), d.Month()+time.Month(n), d.Day())
}

// AddDays moves t by n days.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// InRange reports whether date falls in [start, end], both ends inclusive.
func InRange(date, start, end time.Time) bool {
	d := Day(date)
	return !d.Before(Day(start)) && !d.After(Day(end))
}

// CompareDates compares two dates and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = Day(date1)
	date2 = Day(date2)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	}
	return 0
}

// ParseISODate parses a YYYY-MM-DD date.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
	}
	return t, nil
}

// ParseCSVDate parses the MM/dd/yy dates found in imported CSV files.
// Two-digit years 69-99 map to 19xx and 00-68 to 20xx.
func ParseCSVDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayoutCSV, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q as MM/dd/yy", s)
	}
	return t, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ToCSVDate formats a date as MM/dd/yy with leading zeros.
func ToCSVDate(date time.Time) string {
	return date.Format("01/02/06")
}
