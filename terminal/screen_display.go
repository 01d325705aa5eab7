package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/parameter/visual"
	"github.com/lixenwraith/orrery/render"
)

// ScreenDisplay draws frames on a tcell screen
type ScreenDisplay struct {
	screen tcell.Screen
	styles map[string]tcell.Style
}

// NewScreenDisplay initializes screen, nil opens the controlling terminal
func NewScreenDisplay(screen tcell.Screen) (*ScreenDisplay, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()

	return &ScreenDisplay{
		screen: screen,
		styles: map[string]tcell.Style{"": tcell.StyleDefault},
	}, nil
}

// Size returns the screen size
func (d *ScreenDisplay) Size() (int, int) {
	return d.screen.Size()
}

// Present copies every cell, blanks included, and shows the screen
func (d *ScreenDisplay) Present(buf *render.FrameBuffer) error {
	for row := range buf.Height() {
		for col, cell := range buf.Row(row) {
			d.screen.SetContent(col, row, cell.Glyph, nil, d.style(cell.Color))
		}
	}
	d.screen.Show()
	return nil
}

func (d *ScreenDisplay) style(color string) tcell.Style {
	if s, ok := d.styles[color]; ok {
		return s
	}
	s := tcell.StyleDefault
	if hex, ok := visual.Hex(color); ok {
		s = s.Foreground(tcell.GetColor(hex))
	}
	d.styles[color] = s
	return s
}

// Watch polls screen events on a background goroutine until the screen is finalized
// Resize events resynchronize the screen; the next frame picks up the new size
func (d *ScreenDisplay) Watch(emit func(Action)) {
	Go(func() {
		for {
			switch ev := d.screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				d.screen.Sync()
			case *tcell.EventKey:
				if a := keyAction(ev); a != ActionNone {
					emit(a)
				}
			}
		}
	})
}

func keyAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return ActionQuit
		case ' ', 'p':
			return ActionPause
		case 'm', 'M':
			return ActionMute
		}
	}
	return ActionNone
}

// Close finalizes the screen and restores the terminal
func (d *ScreenDisplay) Close() {
	d.screen.Fini()
}
