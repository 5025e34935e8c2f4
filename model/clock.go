package model

const (
	DefaultRotationInterval = 1000
	RotationStep            = 90
)

// RotationClock turns the whole grid one step per interval. It is polled
// once per frame with the host's clock, there is no timer of its own.
type RotationClock struct {
	Interval int64
	grid     *Grid
	last     int64
}

func NewRotationClock(grid *Grid, intervalMs int64) *RotationClock {
	if intervalMs <= 0 {
		intervalMs = DefaultRotationInterval
	}
	return &RotationClock{Interval: intervalMs, grid: grid}
}

// Tick rotates the grid when at least Interval ms passed since the last
// rotation and reports whether it did.
func (c *RotationClock) Tick(nowMs int64) bool {
	if nowMs-c.last < c.Interval {
		return false
	}
	c.grid.Rotate(RotationStep)
	c.last = nowMs
	return true
}

func (c *RotationClock) LastTick() int64 {
	return c.last
}
