package gridcube

import "time"

// Clock measures the time between frames for Session.Tick.
type Clock struct {
	Time time.Time
	Dt   time.Duration
}

func NewClock(now time.Time) *Clock {
	return &Clock{Time: now}
}

// Advance moves the clock to now and returns the elapsed time. A clock
// that has never been set, or time running backwards, yields zero.
func (c *Clock) Advance(now time.Time) time.Duration {
	if c.Time.IsZero() || now.Before(c.Time) {
		c.Dt = 0
	} else {
		c.Dt = now.Sub(c.Time)
	}
	c.Time = now
	return c.Dt
}
