package render

// FrameBuffer is a row-major grid of cells sized to the display
// All access goes through bounds-checked Get/Set; out of range writes are rejected
type FrameBuffer struct {
	cells  []Cell
	width  int
	height int
}

// clampDims collapses the grid to 0x0 when either dimension is not positive
func clampDims(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return width, height
}

// NewFrameBuffer creates a cleared buffer; a non-positive dimension yields an empty 0x0 buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	width, height = clampDims(width, height)
	b := &FrameBuffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Width returns the column count
func (b *FrameBuffer) Width() int { return b.width }

// Height returns the row count
func (b *FrameBuffer) Height() int { return b.height }

// Resize adjusts dimensions and clears, reallocating only if capacity is insufficient
func (b *FrameBuffer) Resize(width, height int) {
	width, height = clampDims(width, height)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to EmptyCell using exponential copy
func (b *FrameBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = EmptyCell
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// InBounds reports whether (row, col) addresses a cell
func (b *FrameBuffer) InBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Interior reports whether (row, col) is in bounds and not on the outermost row or column
func (b *FrameBuffer) Interior(row, col int) bool {
	return row > 0 && row < b.height-1 && col > 0 && col < b.width-1
}

// Get returns the cell at (row, col); ok is false when out of bounds
func (b *FrameBuffer) Get(row, col int) (Cell, bool) {
	if !b.InBounds(row, col) {
		return Cell{}, false
	}
	return b.cells[row*b.width+col], true
}

// Set writes the cell at (row, col); returns false and writes nothing when out of bounds
func (b *FrameBuffer) Set(row, col int, c Cell) bool {
	if !b.InBounds(row, col) {
		return false
	}
	b.cells[row*b.width+col] = c
	return true
}

// Row returns a copy of one row, nil when out of range
func (b *FrameBuffer) Row(row int) []Cell {
	if row < 0 || row >= b.height {
		return nil
	}
	out := make([]Cell, b.width)
	copy(out, b.cells[row*b.width:(row+1)*b.width])
	return out
}

// Clone returns an independent copy
func (b *FrameBuffer) Clone() *FrameBuffer {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &FrameBuffer{cells: cells, width: b.width, height: b.height}
}
