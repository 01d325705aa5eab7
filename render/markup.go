package render

import (
	"github.com/muesli/termenv"

	"github.com/lixenwraith/orrery/parameter/visual"
)

// Markup wraps a run of same-colored glyphs for a particular output device
type Markup interface {
	Wrap(color, text string) string
}

// TagMarkup emits console tags: [color]text[/color]
type TagMarkup struct{}

func (TagMarkup) Wrap(color, text string) string {
	return "[" + color + "]" + text + "[/" + color + "]"
}

// ANSIMarkup emits terminal escape sequences, degraded to the profile's color depth
// Unknown color names are emitted bare
type ANSIMarkup struct {
	Profile termenv.Profile
}

func (m ANSIMarkup) Wrap(color, text string) string {
	hex, ok := visual.Hex(color)
	if !ok {
		return text
	}
	return m.Profile.String(text).Foreground(m.Profile.Color(hex)).String()
}
