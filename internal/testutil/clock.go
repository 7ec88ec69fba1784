package testutil

import (
	"sync"
	"time"
)

// SteppingClock is a deterministic clock for tests.
//
// Each call to Now returns the current instant and then advances it by a
// fixed step, so consecutive transaction ids and timestamps are unique and
// reproducible across runs.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SteppingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewSteppingClock creates a clock starting at the given instant,
// advancing by step on every Now call.
func NewSteppingClock(start time.Time, step time.Duration) *SteppingClock {
	return &SteppingClock{now: start, step: step}
}

// Now returns the current instant and advances the clock.
func (c *SteppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Set repositions the clock at a specific instant.
func (c *SteppingClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
