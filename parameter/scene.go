package parameter

import (
	"math"
	"time"
)

// Rasterization
const (
	// DepthOfFieldModifier divides z to get the apparent radius offset; smaller values exaggerate perspective
	DepthOfFieldModifier = 30.0

	// RingSizeModifier scales apparent radius into half the ring overlay length
	RingSizeModifier = 1.8

	// RingChar is drawn along the ring diagonal, top-left to bottom-right
	RingChar = '\\'

	// TerminalXScale is the default glyph height/width ratio
	TerminalXScale = 2.2
)

// Body defaults, match an unconfigured body in a scene file
const (
	DefaultBodySymbol      = '*'
	DefaultFillSymbol      = ' '
	DefaultLineWidth       = 1.0
	DefaultAnchorLineWidth = 3.0
	DefaultBodyColor       = "white"
)

// Star field
const (
	StarFrameHold = 0.5 // seconds each twinkle frame stays on screen
	StarColor     = "white"
	DefaultStars  = 100
)

// StarFrames is the twinkle cycle; index 0 is the blank frame that triggers relocation
var StarFrames = [7]rune{' ', '.', '+', '*', '+', '.', ' '}

// Loop timing
const (
	DefaultFPS   = 30
	MaxFPS       = 240
	DefaultSpeed = 1.0
)

// FrameInterval returns the tick duration for fps, clamped to [1, MaxFPS]
func FrameInterval(fps int) time.Duration {
	fps = max(1, min(fps, MaxFPS))
	return time.Second / time.Duration(fps)
}

// Random catalogue bounds
const (
	MinRadius             = 1.0
	MaxRadius             = 5.0
	MaxOrbitRadius        = 120.0
	MinPeriod             = 0.5
	MaxPeriod             = 5.0
	InclinationChance     = 0.2
	MaxInclination        = math.Pi / 4
	RingChance            = 0.2
	OrbitRadiusMultiplier = 3.0
	DefaultPlanets        = 8
	MaxPlanets            = 64

	// SunRadiusScale multiplies MaxRadius for the generated anchor
	SunRadiusScale = 1.5
)

// BorderSymbols is the glyph pool for generated body outlines
var BorderSymbols = []rune{
	'*', 'O', '@', '#', '+', '-', '=', '~', '%', '$',
	'☀', '☿', '♀', '⊕', '♂', '♃', '♄', '♅', '♆', '♇',
}

// FillSymbols is the glyph pool for generated body interiors
var FillSymbols = []rune{
	' ', '.', ',', '`', '\'', ':', ';', '_', '^', '"', '/',
}

// PlanetColors is the color pool for generated bodies, keys of visual.Palette
var PlanetColors = []string{
	"white", "yellow", "bright_yellow", "gold",
	"red", "bright_red", "pink",
	"magenta", "bright_magenta",
	"green", "bright_green",
	"cyan", "bright_cyan",
	"blue", "bright_blue",
}
