package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/render"
)

func simScreen(t *testing.T, w, h int) (tcell.SimulationScreen, *ScreenDisplay) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	d, err := NewScreenDisplay(sim)
	require.NoError(t, err)
	sim.SetSize(w, h)
	return sim, d
}

func TestScreenDisplay_Present(t *testing.T) {
	sim, d := simScreen(t, 4, 3)
	defer d.Close()

	w, h := d.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	buf := render.NewFrameBuffer(4, 3)
	buf.Set(1, 2, render.Cell{Glyph: 'O', Color: "gold"})
	buf.Set(0, 0, render.Cell{Glyph: '.'})
	require.NoError(t, d.Present(buf))

	r, _, style, _ := sim.GetContent(2, 1)
	assert.Equal(t, 'O', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.GetColor("#ffd700"), fg)

	r, _, style, _ = sim.GetContent(0, 0)
	assert.Equal(t, '.', r)
	assert.Equal(t, tcell.StyleDefault, style)

	r, _, _, _ = sim.GetContent(3, 2)
	assert.Equal(t, ' ', r)
}

func TestScreenDisplay_Watch(t *testing.T) {
	sim, d := simScreen(t, 4, 3)

	actions := make(chan Action, 4)
	d.Watch(func(a Action) { actions <- a })

	sim.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'm', tcell.ModNone)
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	for _, want := range []Action{ActionPause, ActionMute, ActionQuit} {
		select {
		case got := <-actions:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %v", want)
		}
	}
	d.Close()
}
