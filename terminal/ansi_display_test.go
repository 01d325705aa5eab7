package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/render"
)

func frame(t *testing.T, w, h int, cells map[[2]int]render.Cell) *render.FrameBuffer {
	t.Helper()
	buf := render.NewFrameBuffer(w, h)
	for pos, c := range cells {
		require.True(t, buf.Set(pos[0], pos[1], c))
	}
	return buf
}

func TestANSIDisplay_SizeFallback(t *testing.T) {
	d := NewANSIDisplay(&bytes.Buffer{}, false)
	w, h := d.Size()
	assert.Equal(t, FallbackWidth, w)
	assert.Equal(t, FallbackHeight, h)
}

func TestANSIDisplay_Present(t *testing.T) {
	var out bytes.Buffer
	d := NewANSIDisplay(&out, false, termenv.WithProfile(termenv.Ascii))

	buf := frame(t, 3, 2, map[[2]int]render.Cell{{0, 1}: {Glyph: '*'}, {1, 2}: {Glyph: '.'}})
	require.NoError(t, d.Present(buf))
	assert.Equal(t, seqClear+seqHome+" * \r\n  .", out.String())

	out.Reset()
	require.NoError(t, d.Present(buf))
	assert.Equal(t, seqHome+" * \r\n  .", out.String(), "no clear when size is unchanged")

	out.Reset()
	require.NoError(t, d.Present(render.NewFrameBuffer(2, 1)))
	assert.True(t, strings.HasPrefix(out.String(), seqClear), "resize clears")
}

func TestANSIDisplay_Color(t *testing.T) {
	var out bytes.Buffer
	d := NewANSIDisplay(&out, true, termenv.WithProfile(termenv.TrueColor))
	assert.Equal(t, termenv.TrueColor, d.Profile())

	buf := frame(t, 2, 1, map[[2]int]render.Cell{{0, 0}: {Glyph: 'O', Color: "gold"}})
	require.NoError(t, d.Present(buf))
	assert.Contains(t, out.String(), "\x1b[38;2;")
}

func TestANSIDisplay_StartClose(t *testing.T) {
	var out bytes.Buffer
	d := NewANSIDisplay(&out, false, termenv.WithProfile(termenv.Ascii))

	d.Close()
	assert.Empty(t, out.String(), "close before start is a no-op")

	d.Start()
	d.Start()
	assert.Equal(t, 1, strings.Count(out.String(), termenv.CSI+termenv.AltScreenSeq))
	assert.Contains(t, out.String(), termenv.CSI+termenv.HideCursorSeq)

	d.Close()
	assert.Contains(t, out.String(), termenv.CSI+termenv.ShowCursorSeq)
	assert.Contains(t, out.String(), termenv.CSI+termenv.ExitAltScreenSeq)
}

func TestEmergencyReset(t *testing.T) {
	var out bytes.Buffer
	EmergencyReset(&out)
	assert.Contains(t, out.String(), termenv.CSI+termenv.ShowCursorSeq)
	assert.Contains(t, out.String(), termenv.CSI+termenv.ExitAltScreenSeq)
}
