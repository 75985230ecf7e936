package core

import "time"

// Clock converts wall time between frames into capped simulation steps.
type Clock struct {
	MaxStep  time.Duration
	now      func() time.Time
	lastTime time.Time
	paused   bool
}

// NewClock creates a clock that never reports more than maxStep per call
func NewClock(maxStep time.Duration) *Clock {
	return NewClockWith(maxStep, time.Now)
}

// NewClockWith uses a custom time source.
func NewClockWith(maxStep time.Duration, now func() time.Time) *Clock {
	return &Clock{MaxStep: maxStep, now: now, lastTime: now()}
}

// Tick returns the elapsed ms since the previous call, capped at MaxStep.
// A paused clock reports zero.
func (c *Clock) Tick() float64 {
	now := c.now()
	frame := now.Sub(c.lastTime)
	c.lastTime = now
	if c.paused || frame < 0 {
		return 0
	}

	// Cap frame time to avoid spiral of death
	if frame > c.MaxStep {
		frame = c.MaxStep
	}
	return float64(frame) / float64(time.Millisecond)
}

// Pause stops time from advancing
func (c *Clock) Pause() { c.paused = true }

// Resume continues from the current instant
func (c *Clock) Resume() {
	c.paused = false
	c.lastTime = c.now()
}

// Paused reports whether the clock is paused
func (c *Clock) Paused() bool { return c.paused }
