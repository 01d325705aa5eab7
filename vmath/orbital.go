package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TwoPi is one full revolution in radians
const TwoPi = 2 * math.Pi

// PolarToCartesian projects an orbit position onto scene axes
// radius: distance from origin, theta: angle along the orbit, phi: orbital plane inclination
// phi == 0 confines motion to the x/z plane with y fixed at 0
func PolarToCartesian(radius, theta, phi float64) mgl64.Vec3 {
	sinTheta, cosTheta := math.Sincos(theta)
	sinPhi, cosPhi := math.Sincos(phi)
	return mgl64.Vec3{
		radius * cosTheta,
		radius * sinTheta * sinPhi,
		radius * sinTheta * cosPhi,
	}
}

// WrapAngle folds any finite angle into [0, 2π)
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// Mod of a tiny negative value plus 2π rounds up to exactly 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// AngleStep returns the angle swept in elapsed seconds for a full revolution every period seconds
// Zero period is stationary
func AngleStep(elapsed, period float64) float64 {
	if period == 0 {
		return 0
	}
	return elapsed / period * TwoPi
}
