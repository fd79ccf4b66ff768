// Package clock provides the time source used to stamp batch runs
package clock

import (
	"sync"
	"time"
)

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

// Stepping is a clock that starts at a fixed instant and moves forward by a
// fixed step on every call. Repeatable runs use it so batch timings do not
// depend on the machine.
type Stepping struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewStepping returns a clock whose first reading is start
func NewStepping(start time.Time, step time.Duration) *Stepping {
	return &Stepping{now: start, step: step}
}

// Now returns the current reading and advances the clock
func (c *Stepping) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}
