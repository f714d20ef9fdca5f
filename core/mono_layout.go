package core

import (
	"math"
	"sort"

	"github.com/mattn/go-runewidth"
)

type monoRow struct {
	start   int  // First character of the row
	end     int  // One past the last character, excluding the newline
	newline bool // Row is closed by a '\n' rather than by wrapping
}

// MonoLayout lays text out on a fixed grid of cells, the way a terminal
// draws it. Rows wrap at a fixed number of cells; wide runes take two.
type MonoLayout struct {
	text      string
	runes     []rune
	rows      []monoRow
	cellWidth float32
	rowHeight float32
	tabWidth  int
	wrapCols  int
}

// NewMonoLayout lays out text wrapped at wrapCols cells (0 disables
// wrapping). cellWidth and rowHeight convert cells into layout units.
func NewMonoLayout(text string, wrapCols int, cellWidth, rowHeight float32, tabWidth int) *MonoLayout {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if rowHeight <= 0 {
		rowHeight = 1
	}
	if tabWidth <= 0 {
		tabWidth = 4
	}

	l := &MonoLayout{
		text:      text,
		runes:     []rune(text),
		cellWidth: cellWidth,
		rowHeight: rowHeight,
		tabWidth:  tabWidth,
		wrapCols:  max(0, wrapCols),
	}
	l.build()
	return l
}

// MonoLayouter returns a Layouter producing MonoLayouts whose wrap column is
// derived from the requested wrap width.
func MonoLayouter(cellWidth, rowHeight float32, tabWidth int) Layouter {
	return func(text string, wrapWidth float32) Layout {
		cols := 0
		if wrapWidth > 0 && cellWidth > 0 {
			cols = int(wrapWidth / cellWidth)
		}
		return NewMonoLayout(text, cols, cellWidth, rowHeight, tabWidth)
	}
}

func (l *MonoLayout) build() {
	start := 0
	cells := 0
	for i, r := range l.runes {
		if r == '\n' {
			l.rows = append(l.rows, monoRow{start: start, end: i, newline: true})
			start = i + 1
			cells = 0
			continue
		}
		w := l.runeCells(r)
		if l.wrapCols > 0 && i > start && cells+w > l.wrapCols {
			l.rows = append(l.rows, monoRow{start: start, end: i})
			start = i
			cells = 0
		}
		cells += w
	}
	l.rows = append(l.rows, monoRow{start: start, end: len(l.runes)})
}

func (l *MonoLayout) runeCells(r rune) int {
	if r == '\t' {
		return l.tabWidth
	}
	return runewidth.RuneWidth(r)
}

func (l *MonoLayout) Text() string       { return l.text }
func (l *MonoLayout) RowCount() int      { return len(l.rows) }
func (l *MonoLayout) RowHeight() float32 { return l.rowHeight }

func (l *MonoLayout) Height() float32 {
	return float32(len(l.rows)) * l.rowHeight
}

// RowSpan returns the character span [start, end) of a visual row, without
// its trailing newline.
func (l *MonoLayout) RowSpan(row int) (start, end int) {
	r := l.rows[clampInt(row, 0, len(l.rows)-1)]
	return r.start, r.end
}

// RowText returns the text of a visual row, without its trailing newline.
func (l *MonoLayout) RowText(row int) string {
	start, end := l.RowSpan(row)
	return string(l.runes[start:end])
}

// IsWrapped reports whether row continues on the next row without a newline.
func (l *MonoLayout) IsWrapped(row int) bool {
	row = clampInt(row, 0, len(l.rows)-1)
	return row < len(l.rows)-1 && !l.rows[row].newline
}

func (l *MonoLayout) FromCharCursor(c CharCursor) VisualCursor {
	idx := clampInt(c.Index, 0, len(l.runes))

	row := sort.Search(len(l.rows), func(i int) bool {
		return l.rows[i].start > idx
	}) - 1
	row = max(row, 0)

	// On a soft wrap the end of the upper row and the start of the lower one
	// share an index; affinity picks the row.
	if !c.PreferNextRow && row > 0 && idx == l.rows[row].start && !l.rows[row-1].newline {
		row--
	}

	return VisualCursor{
		Char:   CharCursor{Index: idx, PreferNextRow: c.PreferNextRow},
		Row:    row,
		Column: idx - l.rows[row].start,
	}
}

func (l *MonoLayout) PosFromCursor(c VisualCursor) Rect {
	row := clampInt(c.Row, 0, len(l.rows)-1)
	r := l.rows[row]
	end := clampInt(r.start+c.Column, r.start, r.end)

	cells := 0
	for _, ch := range l.runes[r.start:end] {
		cells += l.runeCells(ch)
	}

	return Rect{
		Min:    Point{X: float32(cells) * l.cellWidth, Y: float32(row) * l.rowHeight},
		Height: l.rowHeight,
	}
}

func (l *MonoLayout) CursorFromPos(p Point) VisualCursor {
	row := 0
	if p.Y > 0 {
		row = int(math.Floor(float64(p.Y / l.rowHeight)))
	}
	row = clampInt(row, 0, len(l.rows)-1)
	r := l.rows[row]

	idx := r.end
	x := float32(0)
	for i := r.start; i < r.end; i++ {
		w := float32(l.runeCells(l.runes[i])) * l.cellWidth
		if p.X < x+w/2 {
			idx = i
			break
		}
		x += w
	}

	return VisualCursor{
		Char:   CharCursor{Index: idx, PreferNextRow: idx == r.start},
		Row:    row,
		Column: idx - r.start,
	}
}
