package catalogue

import (
	"fmt"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/parameter/visual"
	"github.com/lixenwraith/orrery/vmath"
)

// BodySpec is the file representation of a body
// Angle nil draws a random starting angle; LineWidth nil uses the default for the body kind
type BodySpec struct {
	Name        string   `yaml:"name"`
	Radius      float64  `yaml:"radius"`
	OrbitRadius float64  `yaml:"orbit_radius,omitempty"`
	Period      float64  `yaml:"period,omitempty"`
	Angle       *float64 `yaml:"angle,omitempty"`
	Inclination float64  `yaml:"inclination,omitempty"`
	Symbol      string   `yaml:"symbol,omitempty"`
	Fill        string   `yaml:"fill,omitempty"`
	LineWidth   *float64 `yaml:"line_width,omitempty"`
	Ring        bool     `yaml:"ring,omitempty"`
	Color       string   `yaml:"color,omitempty"`
}

// Options converts the spec to constructor options, drawing a missing angle from rng
func (s BodySpec) Options(rng *rand.Rand, epoch time.Time) (component.BodyOptions, error) {
	symbol, err := singleRune("symbol", s.Symbol, parameter.DefaultBodySymbol)
	if err != nil {
		return component.BodyOptions{}, err
	}
	fill, err := singleRune("fill", s.Fill, parameter.DefaultFillSymbol)
	if err != nil {
		return component.BodyOptions{}, err
	}

	color := s.Color
	if color == "" {
		color = parameter.DefaultBodyColor
	}
	if !visual.Known(color) {
		return component.BodyOptions{}, fmt.Errorf("unknown color %q", color)
	}

	lineWidth := parameter.DefaultLineWidth
	if s.OrbitRadius == 0 && s.Period == 0 {
		lineWidth = parameter.DefaultAnchorLineWidth
	}
	if s.LineWidth != nil {
		lineWidth = *s.LineWidth
	}

	var angle float64
	switch {
	case s.Angle != nil:
		angle = *s.Angle
	case s.Period > 0 && rng != nil:
		angle = rng.Float64() * vmath.TwoPi
	}

	return component.BodyOptions{
		Name:        s.Name,
		Radius:      s.Radius,
		OrbitRadius: s.OrbitRadius,
		Period:      s.Period,
		Angle:       angle,
		Inclination: s.Inclination,
		Symbol:      symbol,
		FillSymbol:  fill,
		LineWidth:   lineWidth,
		HasRing:     s.Ring,
		Color:       color,
		Epoch:       epoch,
	}, nil
}

func singleRune(field, s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s %q must be a single character", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Build constructs bodies in spec order
func Build(specs []BodySpec, rng *rand.Rand, epoch time.Time) ([]*component.Body, error) {
	bodies := make([]*component.Body, 0, len(specs))
	for i, s := range specs {
		opts, err := s.Options(rng, epoch)
		if err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, s.Name, err)
		}
		b, err := component.NewBody(opts)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// Describe returns specs reproducing the bodies at their current angles
func Describe(bodies []*component.Body) []BodySpec {
	specs := make([]BodySpec, len(bodies))
	for i, b := range bodies {
		angle := b.Angle()
		lineWidth := b.LineWidth()
		specs[i] = BodySpec{
			Name:        b.Name(),
			Radius:      b.Radius(),
			OrbitRadius: b.OrbitRadius(),
			Period:      b.Period(),
			Angle:       &angle,
			Inclination: b.Inclination(),
			Symbol:      string(b.Symbol()),
			Fill:        string(b.FillSymbol()),
			LineWidth:   &lineWidth,
			Ring:        b.HasRing(),
			Color:       b.Color(),
		}
	}
	return specs
}
