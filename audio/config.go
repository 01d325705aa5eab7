package audio

import "time"

// Config holds chime synthesis parameters
type Config struct {
	SampleRate int
	Volume     float64 // 0.0-1.0

	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	// MinGap drops chimes that arrive sooner than this after the previous one
	MinGap time.Duration

	// Pitch range, the innermost orbit rings at HighFreq
	LowFreq  float64
	HighFreq float64
	// MaxOrbit maps to LowFreq; farther orbits are clamped
	MaxOrbit float64
}

// DefaultConfig returns a quiet bell-like chime
func DefaultConfig() *Config {
	return &Config{
		SampleRate: 44100,
		Volume:     0.4,
		Duration:   350 * time.Millisecond,
		Attack:     5 * time.Millisecond,
		Release:    300 * time.Millisecond,
		MinGap:     120 * time.Millisecond,
		LowFreq:    220,
		HighFreq:   1760,
		MaxOrbit:   120,
	}
}
