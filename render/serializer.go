package render

import "strings"

// Serializer converts a FrameBuffer into a printable text block
type Serializer struct {
	markup Markup
}

// NewSerializer creates a serializer; nil markup uses TagMarkup
func NewSerializer(m Markup) *Serializer {
	if m == nil {
		m = TagMarkup{}
	}
	return &Serializer{markup: m}
}

// Serialize joins rows with newlines
// With color enabled each maximal run of non-blank cells sharing a color is wrapped in markup;
// blank and uncolored cells are always emitted bare
func (s *Serializer) Serialize(buf *FrameBuffer, colorEnabled bool) string {
	var sb strings.Builder
	sb.Grow(buf.width*buf.height + buf.height)

	var run strings.Builder
	runColor := ""
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(s.markup.Wrap(runColor, run.String()))
		run.Reset()
		runColor = ""
	}

	for row := 0; row < buf.height; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range buf.cells[row*buf.width : (row+1)*buf.width] {
			glyph := c.Glyph
			if glyph == 0 {
				glyph = ' '
			}
			if !colorEnabled || c.Color == "" || c.Blank() {
				flush()
				sb.WriteRune(glyph)
				continue
			}
			if c.Color != runColor {
				flush()
				runColor = c.Color
			}
			run.WriteRune(glyph)
		}
		flush()
	}

	return sb.String()
}

// Serialize renders buf with tag markup
func Serialize(buf *FrameBuffer, colorEnabled bool) string {
	return NewSerializer(nil).Serialize(buf, colorEnabled)
}
