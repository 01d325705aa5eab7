// Package audio synthesizes the orbit completion chime
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/orrery/component"
)

// Chime plays a tone pitched by orbit radius whenever a body completes a revolution
type Chime struct {
	cfg    *Config
	player Player
	now    func() time.Time

	mu   sync.Mutex
	last time.Time

	muted   atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewChime creates a chime playing on player; nil cfg uses DefaultConfig
func NewChime(player Player, cfg *Config) *Chime {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Chime{
		cfg:    cfg,
		player: player,
		now:    time.Now,
	}
}

// OrbitCompleted plays the body's tone unless muted or too soon after the previous chime
func (c *Chime) OrbitCompleted(b *component.Body) {
	if c.muted.Load() {
		return
	}

	now := c.now()
	c.mu.Lock()
	if !c.last.IsZero() && now.Sub(c.last) < c.cfg.MinGap {
		c.mu.Unlock()
		c.dropped.Add(1)
		return
	}
	c.last = now
	c.mu.Unlock()

	c.player.Play(NewChimeSound(PitchForOrbit(b.OrbitRadius(), c.cfg), c.cfg))
	c.played.Add(1)
}

// ToggleMute flips mute and returns the new state
func (c *Chime) ToggleMute() bool {
	for {
		old := c.muted.Load()
		if c.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Stats returns chimes played and dropped by the rate limit
func (c *Chime) Stats() (played, dropped uint64) {
	return c.played.Load(), c.dropped.Load()
}
