package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMonoLayout_Rows(t *testing.T) {
	l := mono("ab\n\ncdefg", 3)

	require.Equal(t, 4, l.RowCount())
	assert.Equal(t, "ab", l.RowText(0))
	assert.Equal(t, "", l.RowText(1))
	assert.Equal(t, "cde", l.RowText(2))
	assert.Equal(t, "fg", l.RowText(3))
	assert.False(t, l.IsWrapped(0))
	assert.True(t, l.IsWrapped(2))
	assert.False(t, l.IsWrapped(3))
	assert.Equal(t, float32(4), l.Height())
}

func TestMonoLayout_EmptyTextHasOneRow(t *testing.T) {
	l := mono("", 10)
	require.Equal(t, 1, l.RowCount())

	vc := l.FromCharCursor(NewCharCursor(0))
	require.Equal(t, VisualCursor{}, vc)
}

func TestMonoLayout_TrailingNewlineAddsRow(t *testing.T) {
	l := mono("ab\n", 0)
	require.Equal(t, 2, l.RowCount())
	require.Equal(t, 1, l.FromCharCursor(NewCharCursor(3)).Row)
}

func TestMonoLayout_WrapAffinity(t *testing.T) {
	l := mono("abcdef", 3)

	upper := l.FromCharCursor(CharCursor{Index: 3})
	assert.Equal(t, 0, upper.Row)
	assert.Equal(t, 3, upper.Column)

	lower := l.FromCharCursor(CharCursor{Index: 3, PreferNextRow: true})
	assert.Equal(t, 1, lower.Row)
	assert.Equal(t, 0, lower.Column)

	// A hard newline has no ambiguity.
	l = mono("abc\ndef", 3)
	assert.Equal(t, 1, l.FromCharCursor(CharCursor{Index: 4}).Row)
}

func TestMonoLayout_CursorFromPos(t *testing.T) {
	l := mono("hello\nhi", 0)

	tests := []struct {
		pos  Point
		want int
	}{
		{Point{X: 0, Y: 0.5}, 0},
		{Point{X: 1.4, Y: 0.5}, 1},
		{Point{X: 1.6, Y: 0.5}, 2},
		{Point{X: 99, Y: 0.5}, 5},
		{Point{X: 99, Y: 1.5}, 8},
		{Point{X: 1, Y: -3}, 1},
		{Point{X: 0, Y: 50}, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.CursorFromPos(tt.pos).Char.Index, "%+v", tt.pos)
	}
}

func TestMonoLayout_WideRunesAndTabs(t *testing.T) {
	l := mono("日本語", 4)
	require.Equal(t, 2, l.RowCount(), "two wide runes fill four cells")
	assert.Equal(t, "日本", l.RowText(0))

	rect := l.PosFromCursor(l.FromCharCursor(NewCharCursor(1)))
	assert.Equal(t, float32(2), rect.Min.X)

	l = NewMonoLayout("\tx", 0, 1, 1, 8)
	rect = l.PosFromCursor(l.FromCharCursor(NewCharCursor(1)))
	assert.Equal(t, float32(8), rect.Min.X)
	assert.Equal(t, 1, l.CursorFromPos(Point{X: 8, Y: 0.5}).Char.Index)
}

func TestMonoLayout_Scaling(t *testing.T) {
	l := NewMonoLayout("ab\ncd", 0, 7, 16, 4)

	rect := l.PosFromCursor(l.FromCharCursor(NewCharCursor(4)))
	assert.Equal(t, Rect{Min: Point{X: 7, Y: 16}, Height: 16}, rect)
	assert.Equal(t, 4, l.CursorFromPos(rect.Center()).Char.Index)
}

func TestMonoLayouter(t *testing.T) {
	l := MonoLayouter(2, 1, 4)("abcdef", 6)
	require.Equal(t, 2, l.RowCount(), "a width of 6 at 2 per cell wraps at 3 columns")
}

func TestMonoLayout_PositionRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-z日 \n]{0,40}`).Draw(rt, "text")
		wrap := rapid.IntRange(0, 8).Draw(rt, "wrap")
		l := mono(text, wrap)

		n := len([]rune(text))
		idx := rapid.IntRange(0, n).Draw(rt, "idx")
		prefer := rapid.Bool().Draw(rt, "prefer")

		vc := l.FromCharCursor(CharCursor{Index: idx, PreferNextRow: prefer})
		back := l.CursorFromPos(l.PosFromCursor(vc).Center())

		require.Equal(rt, idx, back.Char.Index)
		require.Equal(rt, vc.Row, back.Row)
	})
}

func TestSelectionRange_Visual(t *testing.T) {
	l := mono("ab\ncd", 0)

	primary, secondary := Two(NewCharCursor(1), NewCharCursor(4)).Visual(l)
	assert.Equal(t, VisualCursor{Char: NewCharCursor(4), Row: 1, Column: 1}, primary)
	assert.Equal(t, VisualCursor{Char: NewCharCursor(1), Row: 0, Column: 1}, secondary)
}
