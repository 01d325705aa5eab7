package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/lixenwraith/orrery/render"
)

// Fallback size when the output is not a terminal or the query fails
const (
	FallbackWidth  = 80
	FallbackHeight = 24
)

var (
	seqHome  = termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1)
	seqClear = termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2)
)

// ANSIDisplay writes serialized frames to a stream through termenv
// Color escapes follow the output's detected profile and degrade to plain text off a terminal
type ANSIDisplay struct {
	out        *termenv.Output
	fd         int // -1 when the writer is not a terminal
	serializer *render.Serializer
	color      bool

	mu            sync.Mutex
	started       bool
	width, height int
	sb            strings.Builder
}

// NewANSIDisplay creates a display on w; opts can force a color profile
func NewANSIDisplay(w io.Writer, color bool, opts ...termenv.OutputOption) *ANSIDisplay {
	out := termenv.NewOutput(w, opts...)

	fd := -1
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}

	return &ANSIDisplay{
		out:        out,
		fd:         fd,
		serializer: render.NewSerializer(render.ANSIMarkup{Profile: out.Profile}),
		color:      color,
	}
}

// Profile returns the color profile frames are encoded with
func (d *ANSIDisplay) Profile() termenv.Profile {
	return d.out.Profile
}

// Start enters the alternate screen and hides the cursor
func (d *ANSIDisplay) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.out.AltScreen()
	d.out.HideCursor()
	d.out.ClearScreen()
	d.started = true
}

// Close restores the cursor and the primary screen
func (d *ANSIDisplay) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return
	}
	d.out.Reset()
	d.out.ShowCursor()
	d.out.ExitAltScreen()
	d.started = false
}

// Size returns the terminal size, or FallbackWidth x FallbackHeight
func (d *ANSIDisplay) Size() (int, int) {
	if d.fd >= 0 {
		if w, h, err := term.GetSize(d.fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return FallbackWidth, FallbackHeight
}

// Present redraws the whole frame from the home position
// The screen is cleared first whenever the frame size changes
func (d *ANSIDisplay) Present(buf *render.FrameBuffer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sb.Reset()
	if buf.Width() != d.width || buf.Height() != d.height {
		d.sb.WriteString(seqClear)
		d.width, d.height = buf.Width(), buf.Height()
	}
	d.sb.WriteString(seqHome)
	// Raw mode disables output post-processing, rows need an explicit carriage return
	d.sb.WriteString(strings.ReplaceAll(d.serializer.Serialize(buf, d.color), "\n", "\r\n"))

	_, err := d.out.WriteString(d.sb.String())
	return err
}
