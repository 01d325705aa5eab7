package engine

import (
	"sync"
	"time"
)

// TimeProvider supplies the timestamps scene updates are measured against
type TimeProvider interface {
	Now() time.Time
}

// WallClock reads the system clock, monotonic reading included
type WallClock struct{}

// Now returns time.Now
func (WallClock) Now() time.Time {
	return time.Now()
}

// PausableClock freezes scene time while paused
// Resuming continues from the frozen instant, so bodies do not jump by the pause length
type PausableClock struct {
	source TimeProvider

	mu       sync.Mutex
	paused   bool
	pausedAt time.Time     // Source time when the current pause began
	offset   time.Duration // Cumulative completed pause time
}

// NewPausableClock wraps source, nil uses WallClock
func NewPausableClock(source TimeProvider) *PausableClock {
	if source == nil {
		source = WallClock{}
	}
	return &PausableClock{source: source}
}

// Now returns source time minus all time spent paused
func (c *PausableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return c.pausedAt.Add(-c.offset)
	}
	return c.source.Now().Add(-c.offset)
}

// Pause stops time; no-op when already paused
func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

// Resume restarts time; no-op when running
func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resumeLocked()
}

// Toggle flips the pause state and returns the new state
func (c *PausableClock) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		c.resumeLocked()
	} else {
		c.pauseLocked()
	}
	return c.paused
}

func (c *PausableClock) pauseLocked() {
	if !c.paused {
		c.paused = true
		c.pausedAt = c.source.Now()
	}
}

func (c *PausableClock) resumeLocked() {
	if c.paused {
		c.offset += c.source.Now().Sub(c.pausedAt)
		c.paused = false
	}
}

// IsPaused reports the pause state
func (c *PausableClock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// PausedFor returns total pause time including the pause in progress
func (c *PausableClock) PausedFor() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.offset
	if c.paused {
		total += c.source.Now().Sub(c.pausedAt)
	}
	return total
}
