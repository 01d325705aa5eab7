package render

import (
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/vmath"
)

// BodyResult reports what a single RenderBody call wrote
type BodyResult struct {
	Skipped         bool // xScale unusable, nothing written
	Border          int  // Cells written with the border symbol
	Fill            int  // Cells written with the fill symbol
	Ring            int  // Cells written by the ring overlay
	Fallback        bool // Nearest-cell pixel forced because no border cell qualified
	FallbackDropped bool // Nearest cell was on the buffer edge and not drawn
}

// Written returns the total number of cells written
func (r BodyResult) Written() int {
	n := r.Border + r.Fill + r.Ring
	if r.Fallback {
		n++
	}
	return n
}

// Rasterizer draws bodies, rings and stars into a FrameBuffer
// Not safe for concurrent use; the random source is shared with star relocation
type Rasterizer struct {
	rng *rand.Rand

	// Monochrome drops body and star colors at write time
	Monochrome bool
}

// NewRasterizer creates a rasterizer relocating stars with rng, nil seeds from the clock
func NewRasterizer(rng *rand.Rand) *Rasterizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Rasterizer{rng: rng}
}

func (r *Rasterizer) paint(glyph rune, color string) Cell {
	if r.Monochrome {
		color = ""
	}
	return Cell{Glyph: glyph, Color: color}
}

// depthOffset is the apparent radius change for a body at depth z
func depthOffset(z float64) float64 {
	return z / parameter.DepthOfFieldModifier
}

// RenderBody draws a body disc centered at (centerX, centerY) in cell space
// Horizontal distances are divided by xScale; an unusable xScale skips the body
func (r *Rasterizer) RenderBody(buf *FrameBuffer, body *component.Body, centerX, centerY, xScale float64) BodyResult {
	var res BodyResult
	if !vmath.ValidScale(xScale) {
		res.Skipped = true
		return res
	}

	apparent := body.Radius() + depthOffset(body.Z())
	half := body.LineWidth() / 2
	inner := apparent - half
	outer := apparent + half

	border := r.paint(body.Symbol(), body.Color())
	fill := r.paint(body.FillSymbol(), body.Color())

	minDist := math.Inf(1)
	minRow, minCol := -1, -1

	for py := 0; py < buf.height; py++ {
		for px := 0; px < buf.width; px++ {
			dist := vmath.AnisotropicDist(float64(px), float64(py), centerX, centerY, xScale)

			if inner < dist && dist < outer {
				buf.cells[py*buf.width+px] = border
				res.Border++
			} else if dist < inner {
				buf.cells[py*buf.width+px] = fill
				res.Fill++
			}

			if dist < minDist {
				minDist = dist
				minRow, minCol = py, px
			}
		}
	}

	// Far or tiny bodies may miss every band; force one pixel so nothing vanishes
	if res.Border == 0 && minRow >= 0 {
		if buf.Interior(minRow, minCol) {
			buf.Set(minRow, minCol, border)
			res.Fallback = true
		} else {
			res.FallbackDropped = true
		}
	}

	if body.HasRing() {
		res.Ring = r.RenderRing(buf, body, centerX, centerY, xScale)
	}

	return res
}

// RenderRing draws a straight diagonal through the body center approximating an edge-on ring
// Returns the number of cells written
func (r *Rasterizer) RenderRing(buf *FrameBuffer, body *component.Body, centerX, centerY, xScale float64) int {
	if !vmath.ValidScale(xScale) {
		return 0
	}

	length := int(math.Floor((body.Radius() + depthOffset(body.Z())) * parameter.RingSizeModifier))
	ring := r.paint(parameter.RingChar, body.Color())

	written := 0
	for offset := -length; offset <= length; offset++ {
		row := vmath.RoundCell(centerY + float64(offset))
		col := vmath.RoundCell(centerX + float64(offset)*xScale)
		if buf.Set(row, col, ring) {
			written++
		}
	}
	return written
}

// RenderStar draws the star's current frame, first relocating it uniformly at random when it is
// outside the buffer or on its blank frame
// Returns false when nothing visible was written
func (r *Rasterizer) RenderStar(buf *FrameBuffer, star *component.Star) bool {
	if buf.width == 0 || buf.height == 0 {
		return false
	}
	if !star.InBounds(buf.width, buf.height) || star.Frame() == 0 {
		star.MoveTo(r.rng.Intn(buf.width), r.rng.Intn(buf.height))
	}

	glyph := star.Glyph()
	if glyph == ' ' {
		return false
	}
	return buf.Set(star.Y, star.X, r.paint(glyph, star.Color))
}
