// Package clock abstracts time for deterministic run timestamps.
package clock

import "time"

// Clock provides the current time to run records and log file names.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Stamp formats a time the way run artifacts (log files, history rows)
// name themselves.
func Stamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// RealClock implements Clock with the system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FakeClock implements Clock with a fixed time for testing.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a FakeClock set to t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the fixed time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance moves the fixed time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
