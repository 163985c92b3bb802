package clock

import "time"

// Clock abstracts time lookups so session expiry can be tested
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the wall clock
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current wall-clock time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
