package core

// Point is a 2D position in layout units, relative to the text origin.
type Point struct {
	X float32
	Y float32
}

// Rect is the box a cursor occupies: Min is its top-left corner.
type Rect struct {
	Min    Point
	Height float32
}

// Center returns the vertical middle of the rect at its left edge.
func (r Rect) Center() Point {
	return Point{X: r.Min.X, Y: r.Min.Y + r.Height/2}
}

// VisualCursor is a CharCursor resolved against a layout: the visual row it
// is drawn on and its column within that row.
type VisualCursor struct {
	Char   CharCursor
	Row    int
	Column int
}

// Layout is the externally computed mapping from text to wrapped rows and
// glyph positions. A layout belongs to exactly one text; any mutation of the
// buffer invalidates it.
type Layout interface {
	// Text returns the text the layout was built from.
	Text() string
	// RowCount returns the number of visual rows (at least 1).
	RowCount() int
	// RowHeight returns the height of one visual row.
	RowHeight() float32
	// Height returns the total laid-out height.
	Height() float32

	// FromCharCursor resolves a char cursor to its visual row and column,
	// honoring PreferNextRow at wrap boundaries.
	FromCharCursor(c CharCursor) VisualCursor
	// PosFromCursor returns the rect of the cursor.
	PosFromCursor(c VisualCursor) Rect
	// CursorFromPos returns the cursor closest to p.
	CursorFromPos(p Point) VisualCursor
}

// Layouter builds a layout for text wrapped at wrapWidth.
type Layouter func(text string, wrapWidth float32) Layout

// farRight is an x coordinate beyond the end of any row.
const farRight = float32(1 << 30)

// RowBegin returns the cursor at the start of the visual row c is on.
func RowBegin(l Layout, c CharCursor) CharCursor {
	rect := l.PosFromCursor(l.FromCharCursor(c))
	begin := l.CursorFromPos(Point{X: 0, Y: rect.Center().Y}).Char
	begin.PreferNextRow = true
	return begin
}

// RowEnd returns the cursor at the end of the visual row c is on.
func RowEnd(l Layout, c CharCursor) CharCursor {
	rect := l.PosFromCursor(l.FromCharCursor(c))
	end := l.CursorFromPos(Point{X: farRight, Y: rect.Center().Y}).Char
	end.PreferNextRow = false
	return end
}
