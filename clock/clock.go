// Package clock provides the wall-clock capability used by the trackers.
// This interface allows time to be mocked in tests.
package clock

import "time"

// Clock provides the current moment for tracker operations.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// RealClock provides actual system time in local time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since t.
func (RealClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

// TestClock provides a manually controlled time for testing.
// It only moves when told to via Advance or Set.
type TestClock struct {
	current time.Time
}

// NewTestClock returns a TestClock frozen at start.
func NewTestClock(start time.Time) *TestClock {
	return &TestClock{current: start}
}

// Now returns the test time.
func (c *TestClock) Now() time.Time {
	return c.current
}

// Since returns the span between t and the test time.
func (c *TestClock) Since(t time.Time) time.Duration {
	return c.current.Sub(t)
}

// Advance moves the test time forward by d. Negative d moves it backward.
func (c *TestClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// Set moves the test time to t.
func (c *TestClock) Set(t time.Time) {
	c.current = t
}
