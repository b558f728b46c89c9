package testutil

import "sync"

// StepClock is a fake wall clock for move timestamps.
//
// Every call to Now returns the previous value plus a fixed step, so a test
// that timestamps its moves produces identical snapshots on every run.
// Implements table.Clock.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu   sync.Mutex
	next int64
	step int64
}

// NewStepClock creates a clock whose first reading is start. Each later
// reading adds step milliseconds.
func NewStepClock(start, step int64) *StepClock {
	return &StepClock{next: start, step: step}
}

// Now returns the current reading and advances the clock.
func (c *StepClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next += c.step
	return now
}

// Peek returns the next reading without advancing.
func (c *StepClock) Peek() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next
}

// Reset moves the clock back to start.
func (c *StepClock) Reset(start int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next = start
}
