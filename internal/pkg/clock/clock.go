package clock

import "time"

// Clocker reports the current time.
type Clocker interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

// New returns the wall clock.
func New() System {
	return System{}
}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. Outgoing mail uses it in tests so
// Date headers are deterministic.
type Fixed time.Time

// Now returns the fixed instant.
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
