package component

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/orrery/parameter"
)

// ErrInvalidStar is returned for a star with a non-positive hold or an out of range frame
var ErrInvalidStar = errors.New("invalid star")

// Star is a background point that cycles through parameter.StarFrames
// X and Y are absolute cell coordinates; the rasterizer relocates a star when it falls
// out of bounds or returns to the blank frame
type Star struct {
	X, Y  int
	Color string

	frame int
	hold  float64 // Seconds per frame
	next  time.Time
}

// NewStar creates a star showing frame, holding each frame for hold seconds counted from now
func NewStar(x, y, frame int, hold float64, color string, now time.Time) (*Star, error) {
	if !(hold > 0) || math.IsInf(hold, 0) {
		return nil, fmt.Errorf("%w: hold must be a positive duration, got %v", ErrInvalidStar, hold)
	}
	if frame < 0 || frame >= len(parameter.StarFrames) {
		return nil, fmt.Errorf("%w: frame %d outside [0, %d)", ErrInvalidStar, frame, len(parameter.StarFrames))
	}
	return &Star{
		X:     x,
		Y:     y,
		Color: color,
		frame: frame,
		hold:  hold,
		next:  now,
	}, nil
}

// Update advances one frame once the current frame has been held long enough
// Returns true if the frame changed
func (s *Star) Update(now time.Time) bool {
	if now.Sub(s.next).Seconds() <= s.hold {
		return false
	}
	s.frame = (s.frame + 1) % len(parameter.StarFrames)
	s.next = now
	return true
}

// Frame returns the current index into parameter.StarFrames
func (s *Star) Frame() int { return s.frame }

// Glyph returns the rune for the current frame
func (s *Star) Glyph() rune { return parameter.StarFrames[s.frame] }

// Hold returns seconds per frame
func (s *Star) Hold() float64 { return s.hold }

// InBounds reports whether the star lies inside a width×height grid
func (s *Star) InBounds(width, height int) bool {
	return s.X >= 0 && s.X < width && s.Y >= 0 && s.Y < height
}

// MoveTo relocates the star
func (s *Star) MoveTo(x, y int) {
	s.X, s.Y = x, y
}
