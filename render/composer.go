package render

import (
	"cmp"
	"math/rand"
	"slices"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/vmath"
)

// FrameStats summarizes one composed frame
type FrameStats struct {
	Width, Height    int
	Stars            int  // Stars with a visible glyph this frame
	Bodies           int  // Bodies rasterized
	BodiesSkipped    bool // Body pass skipped for an unusable xScale
	BorderCells      int
	FillCells        int
	RingCells        int
	Fallbacks        int
	DroppedFallbacks int
}

// Composer owns the frame buffer and draws one scene frame per call
// The returned buffer is reused by the next Compose
type Composer struct {
	raster *Rasterizer
	buf    *FrameBuffer
	order  []*component.Body
}

// NewComposer creates a composer whose star relocation draws from rng
func NewComposer(rng *rand.Rand) *Composer {
	return &Composer{
		raster: NewRasterizer(rng),
		buf:    NewFrameBuffer(0, 0),
	}
}

// SortByDepth stable-sorts bodies far to near (ascending z); ties keep input order
func SortByDepth(bodies []*component.Body) {
	slices.SortStableFunc(bodies, func(a, b *component.Body) int {
		return cmp.Compare(a.Z(), b.Z())
	})
}

// Compose renders stars then bodies back to front into a cleared width×height buffer
// Bodies are centered on (width/2 + x, height/2 + y); z only drives ordering and depth of field
func (c *Composer) Compose(bodies []*component.Body, stars []*component.Star, width, height int, colorEnabled bool, xScale float64) (*FrameBuffer, FrameStats) {
	c.buf.Resize(width, height)
	c.raster.Monochrome = !colorEnabled

	stats := FrameStats{Width: c.buf.width, Height: c.buf.height}

	for _, s := range stars {
		if c.raster.RenderStar(c.buf, s) {
			stats.Stars++
		}
	}

	if !vmath.ValidScale(xScale) {
		stats.BodiesSkipped = true
		return c.buf, stats
	}

	c.order = append(c.order[:0], bodies...)
	SortByDepth(c.order)

	centerX := float64(c.buf.width / 2)
	centerY := float64(c.buf.height / 2)
	for _, b := range c.order {
		res := c.raster.RenderBody(c.buf, b, centerX+b.X(), centerY+b.Y(), xScale)
		stats.Bodies++
		stats.BorderCells += res.Border
		stats.FillCells += res.Fill
		stats.RingCells += res.Ring
		if res.Fallback {
			stats.Fallbacks++
		}
		if res.FallbackDropped {
			stats.DroppedFallbacks++
		}
	}

	return c.buf, stats
}
