package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/orrery/component"
)

// ErrInvalidSpeed is returned for a non-positive or non-finite time multiplier
var ErrInvalidSpeed = errors.New("invalid speed")

// Scene holds the simulated bodies and the star field
// Not safe for concurrent use; the loop owns it
type Scene struct {
	bodies []*component.Body
	stars  []*component.Star
	speed  float64

	completed []*component.Body
}

// NewScene creates a scene advancing body orbits at speed times wall-clock rate
// Star twinkle is never scaled
func NewScene(bodies []*component.Body, stars []*component.Star, speed float64) (*Scene, error) {
	if !(speed > 0) || math.IsInf(speed, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, speed)
	}
	return &Scene{
		bodies: bodies,
		stars:  stars,
		speed:  speed,
	}, nil
}

func (s *Scene) Bodies() []*component.Body { return s.bodies }
func (s *Scene) Stars() []*component.Star  { return s.stars }
func (s *Scene) Speed() float64            { return s.speed }

// Advance moves every body and star to now
// Returns the bodies that completed at least one revolution; the slice is reused by the next call
func (s *Scene) Advance(now time.Time) []*component.Body {
	s.completed = s.completed[:0]
	for _, b := range s.bodies {
		before := b.Revolutions()
		b.AdvanceScaled(now, s.speed)
		if b.Revolutions() > before {
			s.completed = append(s.completed, b)
		}
	}
	for _, st := range s.stars {
		st.Update(now)
	}
	return s.completed
}
