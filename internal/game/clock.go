package game

import "time"

// TimeProvider supplies wall-clock readings.
type TimeProvider interface {
	Now() time.Time
}

// SystemTime reads the monotonic system clock.
type SystemTime struct{}

func (SystemTime) Now() time.Time { return time.Now() }

// FrameClock measures the time between consecutive frames in seconds.
type FrameClock struct {
	provider TimeProvider
	prev     time.Time
	ticked   bool
}

func NewFrameClock(p TimeProvider) *FrameClock {
	if p == nil {
		p = SystemTime{}
	}
	return &FrameClock{provider: p}
}

// Tick returns seconds since the previous Tick. The first call returns 0.
// A clock that goes backwards yields 0 rather than a negative step.
func (c *FrameClock) Tick() float64 {
	now := c.provider.Now()
	if !c.ticked {
		c.prev = now
		c.ticked = true
		return 0
	}
	elapsed := now.Sub(c.prev).Seconds()
	c.prev = now
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Reset makes the next Tick return 0, e.g. after a pause in a menu.
func (c *FrameClock) Reset() {
	c.ticked = false
}
