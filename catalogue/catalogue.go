// Package catalogue supplies the bodies and stars a scene starts with:
// a fixed solar system, a seeded random system, or a YAML scene file
package catalogue

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

func ptr[T any](v T) *T { return &v }

// solarSystem is the default catalogue, distances in cells and periods in seconds
var solarSystem = []BodySpec{
	{Name: "sun", Radius: 4, Symbol: "*", LineWidth: ptr(3.0), Color: "bright_yellow"},
	{Name: "mercury", Radius: 1, OrbitRadius: 10, Period: 2.4, Angle: ptr(0.3), Inclination: 0.12, Symbol: "o", Color: "white"},
	{Name: "venus", Radius: 1.5, OrbitRadius: 15, Period: 4.0, Angle: ptr(1.9), Inclination: 0.06, Symbol: "@", Color: "gold"},
	{Name: "earth", Radius: 1.5, OrbitRadius: 21, Period: 6.0, Angle: ptr(3.4), Inclination: 0.08, Symbol: "O", Fill: ".", Color: "bright_blue"},
	{Name: "mars", Radius: 1, OrbitRadius: 27, Period: 8.4, Angle: ptr(4.6), Inclination: 0.1, Symbol: "o", Color: "red"},
	{Name: "jupiter", Radius: 3, OrbitRadius: 38, Period: 15, Angle: ptr(0.9), Inclination: 0.05, Symbol: "#", Fill: ":", Color: "pink"},
	{Name: "saturn", Radius: 2.5, OrbitRadius: 52, Period: 22, Angle: ptr(2.6), Inclination: 0.09, Symbol: "%", Ring: true, Color: "gold"},
	{Name: "uranus", Radius: 2, OrbitRadius: 64, Period: 32, Angle: ptr(5.5), Inclination: 0.04, Symbol: "+", Color: "cyan"},
	{Name: "neptune", Radius: 2, OrbitRadius: 76, Period: 44, Angle: ptr(3.9), Inclination: 0.07, Symbol: "=", Color: "blue"},
}

// SolarSystem returns a copy of the default catalogue specs
func SolarSystem() []BodySpec {
	specs := make([]BodySpec, len(solarSystem))
	copy(specs, solarSystem)
	return specs
}

// Default builds the default catalogue; every angle is fixed so rng is unused
func Default(epoch time.Time) ([]*component.Body, error) {
	return Build(solarSystem, nil, epoch)
}

// Random generates an anchor and up to planets orbiting bodies from rng
// Generation stops early once the next orbit would exceed MaxOrbitRadius
func Random(rng *rand.Rand, planets int, epoch time.Time) ([]*component.Body, error) {
	specs, err := RandomSpecs(rng, planets)
	if err != nil {
		return nil, err
	}
	return Build(specs, rng, epoch)
}

// RandomSpecs draws a random system without constructing bodies
func RandomSpecs(rng *rand.Rand, planets int) ([]BodySpec, error) {
	if planets < 0 || planets > parameter.MaxPlanets {
		return nil, fmt.Errorf("planets %d out of range [0, %d]", planets, parameter.MaxPlanets)
	}

	sunRadius := between(rng, parameter.MaxRadius, parameter.MaxRadius*parameter.SunRadiusScale)
	specs := make([]BodySpec, 0, planets+1)
	specs = append(specs, BodySpec{
		Name:      "sun",
		Radius:    sunRadius,
		Symbol:    string(pick(rng, parameter.BorderSymbols)),
		Fill:      string(pick(rng, parameter.FillSymbols)),
		LineWidth: ptr(parameter.DefaultAnchorLineWidth),
		Color:     pick(rng, parameter.PlanetColors),
	})

	cursor := sunRadius * parameter.OrbitRadiusMultiplier
	for i := range planets {
		radius := between(rng, parameter.MinRadius, parameter.MaxRadius)
		orbit := cursor + radius*parameter.OrbitRadiusMultiplier
		if orbit > parameter.MaxOrbitRadius {
			break
		}
		cursor = orbit + radius

		var inclination float64
		if rng.Float64() < parameter.InclinationChance {
			inclination = between(rng, -parameter.MaxInclination, parameter.MaxInclination)
		}

		specs = append(specs, BodySpec{
			Name:        fmt.Sprintf("planet-%d", i+1),
			Radius:      radius,
			OrbitRadius: orbit,
			Period:      between(rng, parameter.MinPeriod, parameter.MaxPeriod),
			Angle:       ptr(rng.Float64() * vmath.TwoPi),
			Inclination: inclination,
			Symbol:      string(pick(rng, parameter.BorderSymbols)),
			Fill:        string(pick(rng, parameter.FillSymbols)),
			Ring:        rng.Float64() < parameter.RingChance,
			Color:       pick(rng, parameter.PlanetColors),
		})
	}
	return specs, nil
}

// Stars scatters count stars over a width x height field with random frames
// Next-frame deadlines are staggered so the field does not twinkle in lockstep
func Stars(rng *rand.Rand, count, width, height int, now time.Time) ([]*component.Star, error) {
	if count < 0 {
		return nil, fmt.Errorf("star count %d is negative", count)
	}
	width, height = max(width, 1), max(height, 1)

	stars := make([]*component.Star, 0, count)
	for range count {
		jitter := time.Duration(rng.Float64() * parameter.StarFrameHold * float64(time.Second))
		s, err := component.NewStar(
			rng.Intn(width), rng.Intn(height),
			rng.Intn(len(parameter.StarFrames)),
			parameter.StarFrameHold, parameter.StarColor,
			now.Add(-jitter),
		)
		if err != nil {
			return nil, err
		}
		stars = append(stars, s)
	}
	return stars, nil
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func pick[T any](rng *rand.Rand, pool []T) T {
	return pool[rng.Intn(len(pool))]
}
