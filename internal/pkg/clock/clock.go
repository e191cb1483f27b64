// Package clock provides time utilities for the application
package clock

import "time"

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed is a Clock that advances by Step on every call, for tests
type Fixed struct {
	At   time.Time
	Step time.Duration
}

// Now returns At, then moves it forward by Step
func (c *Fixed) Now() time.Time {
	now := c.At
	c.At = c.At.Add(c.Step)
	return now
}
