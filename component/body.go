package component

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// ErrInvalidBody is returned when body parameters would produce NaN geometry
var ErrInvalidBody = errors.New("invalid body")

// BodyOptions carries construction parameters for a Body
// Zero Symbol and FillSymbol take the package defaults; LineWidth zero is a valid borderless body
type BodyOptions struct {
	Name        string
	Radius      float64 // Visual size in rows
	OrbitRadius float64 // Distance from origin, 0 for an anchor
	Period      float64 // Seconds per revolution, 0 never moves
	Angle       float64 // Initial angle, folded into [0, 2π)
	Inclination float64 // Orbital plane tilt in radians
	Symbol      rune
	FillSymbol  rune
	LineWidth   float64
	HasRing     bool
	Color       string
	Epoch       time.Time // Reference for the first Advance, zero uses time.Now
}

// Body is a sphere on a circular orbit around the scene origin
// Position is derived from orbit radius, angle and inclination and cannot be set directly
type Body struct {
	name        string
	radius      float64
	orbitRadius float64
	period      float64
	angle       float64
	inclination float64
	symbol      rune
	fillSymbol  rune
	lineWidth   float64
	hasRing     bool
	color       string

	position    mgl64.Vec3
	revolutions int
	lastUpdate  time.Time
}

// NewBody validates options and returns a body positioned at its initial angle
func NewBody(opts BodyOptions) (*Body, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	symbol := opts.Symbol
	if symbol == 0 {
		symbol = parameter.DefaultBodySymbol
	}
	fill := opts.FillSymbol
	if fill == 0 {
		fill = parameter.DefaultFillSymbol
	}
	epoch := opts.Epoch
	if epoch.IsZero() {
		epoch = time.Now()
	}

	b := &Body{
		name:        opts.Name,
		radius:      opts.Radius,
		orbitRadius: opts.OrbitRadius,
		period:      opts.Period,
		angle:       vmath.WrapAngle(opts.Angle),
		inclination: opts.Inclination,
		symbol:      symbol,
		fillSymbol:  fill,
		lineWidth:   opts.LineWidth,
		hasRing:     opts.HasRing,
		color:       opts.Color,
		lastUpdate:  epoch,
	}
	b.project()
	return b, nil
}

// NewAnchor returns a stationary body at the origin drawn with the wide anchor outline
func NewAnchor(name string, radius float64, symbol rune, color string) (*Body, error) {
	return NewBody(BodyOptions{
		Name:      name,
		Radius:    radius,
		Symbol:    symbol,
		LineWidth: parameter.DefaultAnchorLineWidth,
		Color:     color,
	})
}

func (o BodyOptions) validate() error {
	var errs []error
	check := func(field string, v float64, allowNegative bool) {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, fmt.Errorf("%s must be finite, got %v", field, v))
		case !allowNegative && v < 0:
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", field, v))
		}
	}
	check("radius", o.Radius, false)
	check("orbit radius", o.OrbitRadius, false)
	check("period", o.Period, false)
	check("line width", o.LineWidth, false)
	check("angle", o.Angle, true)
	check("inclination", o.Inclination, true)

	if len(errs) == 0 {
		return nil
	}
	name := o.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Errorf("%w %q: %w", ErrInvalidBody, name, errors.Join(errs...))
}

// Update advances the orbit by elapsed seconds
// Bodies with zero period never move; non-finite elapsed is ignored
// The revolution count saturates at math.MaxInt
func (b *Body) Update(elapsed float64) {
	if b.period == 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return
	}

	raw := b.angle + vmath.AngleStep(elapsed, b.period)
	if raw >= vmath.TwoPi {
		turns := math.Floor(raw / vmath.TwoPi)
		if turns >= float64(math.MaxInt-b.revolutions) {
			b.revolutions = math.MaxInt
		} else {
			b.revolutions += int(turns)
		}
	}
	b.angle = vmath.WrapAngle(raw)
	b.project()
}

// Advance updates the body with the wall-clock delta since its previous update
func (b *Body) Advance(now time.Time) {
	b.AdvanceScaled(now, 1)
}

// AdvanceScaled is Advance with the delta multiplied by speed
// lastUpdate still tracks now so the next delta is measured in wall-clock time
func (b *Body) AdvanceScaled(now time.Time, speed float64) {
	elapsed := now.Sub(b.lastUpdate).Seconds()
	b.Update(elapsed * speed)
	b.lastUpdate = now
}

func (b *Body) project() {
	b.position = vmath.PolarToCartesian(b.orbitRadius, b.angle, b.inclination)
}

// IsAnchor reports whether the body is a stationary center such as a sun
func (b *Body) IsAnchor() bool {
	return b.orbitRadius == 0 && b.period == 0
}

func (b *Body) Name() string          { return b.name }
func (b *Body) Radius() float64       { return b.radius }
func (b *Body) OrbitRadius() float64  { return b.orbitRadius }
func (b *Body) Period() float64       { return b.period }
func (b *Body) Angle() float64        { return b.angle }
func (b *Body) Inclination() float64  { return b.inclination }
func (b *Body) Symbol() rune          { return b.symbol }
func (b *Body) FillSymbol() rune      { return b.fillSymbol }
func (b *Body) LineWidth() float64    { return b.lineWidth }
func (b *Body) HasRing() bool         { return b.hasRing }
func (b *Body) Color() string         { return b.color }
func (b *Body) Position() mgl64.Vec3  { return b.position }
func (b *Body) LastUpdate() time.Time { return b.lastUpdate }
func (b *Body) X() float64            { return b.position[0] }
func (b *Body) Y() float64            { return b.position[1] }
func (b *Body) Z() float64            { return b.position[2] }

// Revolutions counts completed orbits since construction
func (b *Body) Revolutions() int { return b.revolutions }

// Options returns the parameters that reconstruct this body at its current angle
func (b *Body) Options() BodyOptions {
	return BodyOptions{
		Name:        b.name,
		Radius:      b.radius,
		OrbitRadius: b.orbitRadius,
		Period:      b.period,
		Angle:       b.angle,
		Inclination: b.inclination,
		Symbol:      b.symbol,
		FillSymbol:  b.fillSymbol,
		LineWidth:   b.lineWidth,
		HasRing:     b.hasRing,
		Color:       b.color,
	}
}

func (b *Body) String() string {
	return fmt.Sprintf("%s r=%g r_o=%g T=%g θ=%.3f φ=%.3f pos=(%.2f, %.2f, %.2f)",
		b.name, b.radius, b.orbitRadius, b.period, b.angle, b.inclination,
		b.position[0], b.position[1], b.position[2])
}
