package editor

import "time"

const defaultClickInterval = 500 * time.Millisecond

// ClickTracker turns a stream of mouse presses into single, double, and
// triple clicks.
type ClickTracker struct {
	// MaxInterval is the longest gap between presses that still chains
	// them. Zero means the default.
	MaxInterval time.Duration

	count  int
	lastAt time.Time
	lastX  int
	lastY  int
}

// Click records a press at cell (x, y) and returns the click count it
// lands on: 1, 2, or 3, then back to 1. A press on a different cell or
// after the interval starts a new chain.
func (c *ClickTracker) Click(x, y int, now time.Time) int {
	interval := c.MaxInterval
	if interval <= 0 {
		interval = defaultClickInterval
	}
	chained := !c.lastAt.IsZero() &&
		x == c.lastX && y == c.lastY &&
		now.Sub(c.lastAt) <= interval &&
		c.count < 3
	if chained {
		c.count++
	} else {
		c.count = 1
	}
	c.lastAt = now
	c.lastX = x
	c.lastY = y
	return c.count
}
