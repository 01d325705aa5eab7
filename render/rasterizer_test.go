package render

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/parameter"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newBody(t *testing.T, opts component.BodyOptions) *component.Body {
	t.Helper()
	opts.Epoch = epoch
	b, err := component.NewBody(opts)
	require.NoError(t, err)
	return b
}

func newRaster() *Rasterizer {
	return NewRasterizer(rand.New(rand.NewSource(1)))
}

func glyphAt(t *testing.T, b *FrameBuffer, row, col int) rune {
	t.Helper()
	c, ok := b.Get(row, col)
	require.True(t, ok, "cell (%d, %d) out of bounds", row, col)
	return c.Glyph
}

func TestRenderBody_BorderAndFill(t *testing.T) {
	buf := NewFrameBuffer(9, 9)
	body := newBody(t, component.BodyOptions{Radius: 1, LineWidth: 1, Symbol: 'O', FillSymbol: '.', Color: "yellow"})

	res := newRaster().RenderBody(buf, body, 4, 4, 1)

	assert.False(t, res.Skipped)
	assert.False(t, res.Fallback)
	assert.Equal(t, 8, res.Border)
	assert.Equal(t, 1, res.Fill)

	assert.Equal(t, '.', glyphAt(t, buf, 4, 4))
	for _, p := range [][2]int{{3, 4}, {5, 4}, {4, 3}, {4, 5}, {3, 3}, {5, 5}} {
		assert.Equal(t, 'O', glyphAt(t, buf, p[0], p[1]), "cell %v", p)
	}
	assert.Equal(t, ' ', glyphAt(t, buf, 4, 6))

	c, _ := buf.Get(3, 4)
	assert.Equal(t, "yellow", c.Color)
}

func TestRenderBody_XScaleStretchesHorizontally(t *testing.T) {
	buf := NewFrameBuffer(21, 5)
	body := newBody(t, component.BodyOptions{Radius: 1, LineWidth: 1, Symbol: 'O'})

	newRaster().RenderBody(buf, body, 10, 2, 2)

	// dx = 2/2 = 1 lies on the border, one row up is dy = 1
	assert.Equal(t, 'O', glyphAt(t, buf, 2, 12))
	assert.Equal(t, 'O', glyphAt(t, buf, 2, 8))
	assert.Equal(t, 'O', glyphAt(t, buf, 1, 10))
	// dx = 4/2 = 2 is outside
	assert.Equal(t, ' ', glyphAt(t, buf, 2, 14))
}

func TestRenderBody_DepthOfFieldGrowsNearBodies(t *testing.T) {
	// Angle π/2 puts the body at z = orbit radius
	near := newBody(t, component.BodyOptions{Radius: 2, OrbitRadius: 30, Period: 1, Angle: math.Pi / 2, LineWidth: 1, Symbol: 'N'})
	far := newBody(t, component.BodyOptions{Radius: 2, OrbitRadius: 30, Period: 1, Angle: 3 * math.Pi / 2, LineWidth: 1, Symbol: 'F'})
	require.InDelta(t, 30, near.Z(), 1e-9)
	require.InDelta(t, -30, far.Z(), 1e-9)

	nearBuf := NewFrameBuffer(15, 15)
	farBuf := NewFrameBuffer(15, 15)
	nr := newRaster().RenderBody(nearBuf, near, 7, 7, 1)
	fr := newRaster().RenderBody(farBuf, far, 7, 7, 1)

	// z/30 = ±1 changes the apparent radius to 3 and 1
	assert.Equal(t, 'N', glyphAt(t, nearBuf, 7, 10))
	assert.Equal(t, 'F', glyphAt(t, farBuf, 7, 8))
	assert.Equal(t, ' ', glyphAt(t, farBuf, 7, 10))
	assert.Greater(t, nr.Border+nr.Fill, fr.Border+fr.Fill)
}

func TestRenderBody_FallbackAlwaysVisible(t *testing.T) {
	const w, h = 24, 12
	radii := []float64{0, 0.05, 0.3, 1, 4}
	widths := []float64{0, 0.1, 1, 3}
	scales := []float64{0.25, 1, 2.2, 9}
	centers := [][2]float64{{1, 1}, {12, 6}, {22, 10}, {5.5, 3.25}, {17.3, 8.8}}

	for _, r := range radii {
		for _, lw := range widths {
			for _, xs := range scales {
				for _, c := range centers {
					buf := NewFrameBuffer(w, h)
					body := newBody(t, component.BodyOptions{Radius: r, LineWidth: lw, Symbol: 'o'})
					res := newRaster().RenderBody(buf, body, c[0], c[1], xs)

					assert.GreaterOrEqual(t, res.Written(), 1, "r=%v lw=%v xScale=%v center=%v", r, lw, xs, c)
					assert.NotEqual(t, Serialize(NewFrameBuffer(w, h), false), Serialize(buf, false))
				}
			}
		}
	}
}

func TestRenderBody_FallbackUsesNearestCell(t *testing.T) {
	buf := NewFrameBuffer(10, 10)
	// Zero line width leaves no border band
	body := newBody(t, component.BodyOptions{Radius: 0, LineWidth: 0, Symbol: '*'})

	res := newRaster().RenderBody(buf, body, 6.2, 3.9, 2.2)

	assert.True(t, res.Fallback)
	assert.Equal(t, 0, res.Border)
	assert.Equal(t, '*', glyphAt(t, buf, 4, 6))
}

func TestRenderBody_FallbackDroppedOnEdge(t *testing.T) {
	buf := NewFrameBuffer(10, 10)
	before := Serialize(buf, false)
	body := newBody(t, component.BodyOptions{Radius: 0, LineWidth: 0, Symbol: '*'})

	for _, c := range [][2]float64{{0, 0}, {9, 4}, {4, 9}, {0, 5}} {
		res := newRaster().RenderBody(buf, body, c[0], c[1], 1)
		assert.True(t, res.FallbackDropped, "center %v", c)
		assert.False(t, res.Fallback)
		assert.Equal(t, 0, res.Written())
	}
	assert.Equal(t, before, Serialize(buf, false))
}

func TestRenderBody_ZeroScaleWritesNothing(t *testing.T) {
	buf := NewFrameBuffer(12, 8)
	buf.Set(2, 2, Cell{Glyph: '+', Color: "white"})
	before := Serialize(buf, true)

	body := newBody(t, component.BodyOptions{Radius: 3, LineWidth: 1, HasRing: true})
	for _, xs := range []float64{0, math.NaN(), -2} {
		res := newRaster().RenderBody(buf, body, 6, 4, xs)
		assert.True(t, res.Skipped)
		assert.Equal(t, 0, res.Written())
	}
	assert.Equal(t, before, Serialize(buf, true))
}

func TestRenderRing_Diagonal(t *testing.T) {
	buf := NewFrameBuffer(21, 21)
	body := newBody(t, component.BodyOptions{Radius: 2, LineWidth: 1, HasRing: true, Color: "gold"})

	res := newRaster().RenderBody(buf, body, 10, 10, 1)

	length := int(math.Floor(2 * parameter.RingSizeModifier))
	assert.Equal(t, 2*length+1, res.Ring)
	for off := -length; off <= length; off++ {
		c, ok := buf.Get(10+off, 10+off)
		require.True(t, ok)
		assert.Equal(t, parameter.RingChar, c.Glyph, "offset %d", off)
		assert.Equal(t, "gold", c.Color)
	}
	assert.NotEqual(t, parameter.RingChar, glyphAt(t, buf, 10+length+1, 10+length+1))
}

func TestRenderRing_ScaledAndClipped(t *testing.T) {
	buf := NewFrameBuffer(12, 5)
	body := newBody(t, component.BodyOptions{Radius: 2, LineWidth: 1})

	written := newRaster().RenderRing(buf, body, 6, 2, 2)

	// Offsets ±3 land on rows -1 and 5 and are clipped
	assert.Equal(t, 5, written)
	assert.Equal(t, parameter.RingChar, glyphAt(t, buf, 0, 2))
	assert.Equal(t, parameter.RingChar, glyphAt(t, buf, 1, 4))
	assert.Equal(t, parameter.RingChar, glyphAt(t, buf, 2, 6))
	assert.Equal(t, parameter.RingChar, glyphAt(t, buf, 3, 8))
	assert.Equal(t, parameter.RingChar, glyphAt(t, buf, 4, 10))
}

func TestRenderRing_NegativeLengthDrawsNothing(t *testing.T) {
	buf := NewFrameBuffer(12, 12)
	// Far side of a wide orbit shrinks the apparent radius below zero
	body := newBody(t, component.BodyOptions{Radius: 1, OrbitRadius: 90, Period: 1, Angle: 3 * math.Pi / 2, LineWidth: 1})
	assert.Equal(t, 0, newRaster().RenderRing(buf, body, 6, 6, 1))
}

func TestRenderBody_MonochromeDropsColor(t *testing.T) {
	buf := NewFrameBuffer(9, 9)
	body := newBody(t, component.BodyOptions{Radius: 1, LineWidth: 1, Symbol: 'O', Color: "red"})

	r := newRaster()
	r.Monochrome = true
	r.RenderBody(buf, body, 4, 4, 1)

	c, _ := buf.Get(3, 4)
	assert.Equal(t, 'O', c.Glyph)
	assert.Empty(t, c.Color)
}

func TestRenderStar(t *testing.T) {
	r := newRaster()
	buf := NewFrameBuffer(30, 10)

	visible, err := component.NewStar(3, 4, 3, 1, "white", epoch)
	require.NoError(t, err)
	assert.True(t, r.RenderStar(buf, visible))
	assert.Equal(t, 3, visible.X)
	assert.Equal(t, 4, visible.Y)
	assert.Equal(t, '*', glyphAt(t, buf, 4, 3))

	outside, err := component.NewStar(200, 50, 2, 1, "white", epoch)
	require.NoError(t, err)
	assert.True(t, r.RenderStar(buf, outside))
	assert.True(t, outside.InBounds(30, 10))
	assert.Equal(t, '+', glyphAt(t, buf, outside.Y, outside.X))

	blank, err := component.NewStar(5, 5, 0, 1, "white", epoch)
	require.NoError(t, err)
	moved := false
	for i := 0; i < 20 && !moved; i++ {
		assert.False(t, r.RenderStar(buf, blank))
		assert.True(t, blank.InBounds(30, 10))
		moved = blank.X != 5 || blank.Y != 5
	}
	assert.True(t, moved, "blank frame star should be relocated")
}

func TestRenderStar_EmptyBuffer(t *testing.T) {
	s, err := component.NewStar(1, 1, 3, 1, "white", epoch)
	require.NoError(t, err)
	assert.False(t, newRaster().RenderStar(NewFrameBuffer(0, 0), s))
}
