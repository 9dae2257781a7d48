package utils

import "time"

// fpsSmoothing is the weight of the newest sample in the FPS moving average.
const fpsSmoothing = 0.1

// FrameClock counts frames and tracks frame time for frontends that drive
// their own loop.
type FrameClock struct {
	start time.Time
	last  time.Time
	frame uint64
	delta time.Duration
	fps   float64
}

func NewFrameClock(now time.Time) *FrameClock {
	return &FrameClock{start: now, last: now}
}

// Tick records the end of a frame at now.
func (c *FrameClock) Tick(now time.Time) {
	c.frame++
	c.delta = now.Sub(c.last)
	c.last = now
	if c.delta <= 0 {
		return
	}

	instant := float64(time.Second) / float64(c.delta)
	if c.fps == 0 {
		c.fps = instant
	} else {
		c.fps += (instant - c.fps) * fpsSmoothing
	}
}

func (c *FrameClock) Frame() uint64 {
	return c.frame
}

// Delta returns the duration of the last frame.
func (c *FrameClock) Delta() time.Duration {
	return c.delta
}

// FPS returns the smoothed frame rate, zero before the first timed frame.
func (c *FrameClock) FPS() float64 {
	return c.fps
}

// Elapsed returns the time since the clock started, as of the last tick.
func (c *FrameClock) Elapsed() time.Duration {
	return c.last.Sub(c.start)
}
