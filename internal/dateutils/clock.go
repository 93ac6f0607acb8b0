package dateutils

import "time"

// Clock supplies the evaluation instant for period queries.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Ledger.AsOf uses it to pin
// queries to a caller-supplied evaluation date.
type FixedClock time.Time

func (f FixedClock) Now() time.Time {
	return time.Time(f)
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
