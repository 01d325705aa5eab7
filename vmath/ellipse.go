package vmath

import "math"

// Terminal cells are roughly twice as tall as they are wide; horizontal deltas
// are divided by the aspect scale so a circle in scene space stays round on screen

// AnisotropicDist returns the distance from (cx, cy) to (px, py) with the x axis compressed by xScale
// xScale must be non-zero
func AnisotropicDist(px, py, cx, cy, xScale float64) float64 {
	dx := (px - cx) / xScale
	dy := py - cy
	return math.Sqrt(dx*dx + dy*dy)
}

// ValidScale reports whether xScale can be used as a horizontal divisor
func ValidScale(xScale float64) bool {
	return xScale > 0 && !math.IsInf(xScale, 0) && !math.IsNaN(xScale)
}

// RoundCell converts a scene coordinate to the nearest cell index
func RoundCell(v float64) int {
	return int(math.Round(v))
}
