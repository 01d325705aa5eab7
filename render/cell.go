package render

// Cell is one character position in a FrameBuffer
// Color is a palette name; empty means uncolored
type Cell struct {
	Glyph rune
	Color string
}

// EmptyCell is the cleared state of every cell
var EmptyCell = Cell{Glyph: ' '}

// Blank reports whether the cell draws nothing visible
func (c Cell) Blank() bool {
	return c.Glyph == ' ' || c.Glyph == 0
}
