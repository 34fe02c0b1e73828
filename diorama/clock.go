package diorama

import "time"

// Clock measures wall time between consecutive frames.
type Clock struct {
	now     func() time.Time
	last    time.Time
	running bool
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{
		now: now,
	}
}

// Delta returns the time since the previous call. The first call starts the
// clock and returns zero.
func (c *Clock) Delta() time.Duration {
	current := c.now()
	if !c.running {
		c.running = true
		c.last = current
		return 0
	}
	delta := current.Sub(c.last)
	c.last = current
	if delta < 0 {
		return 0
	}
	return delta
}
