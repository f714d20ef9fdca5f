package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDeleteSelected(t *testing.T) {
	buf := NewBuffer("hello world")

	c := DeleteSelected(buf, One(NewCharCursor(3)))
	require.Equal(t, "hello world", buf.String(), "empty range is a no-op")
	require.Equal(t, 3, c.Index)

	c = DeleteSelected(buf, Two(NewCharCursor(11), NewCharCursor(5)))
	require.Equal(t, "hello", buf.String())
	require.Equal(t, 5, c.Index)
}

func TestDeleteChar_Graphemes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		at       int
		backward bool
		want     string
		cursor   int
	}{
		{"backspace ascii", "abc", 2, true, "ac", 1},
		{"backspace at start", "abc", 0, true, "abc", 0},
		{"backspace combining mark", "ae\u0301b", 3, true, "ab", 1},
		{"backspace flag", "x\U0001F1EB\U0001F1F7", 3, true, "x", 1},
		{"delete ascii", "abc", 1, false, "ac", 1},
		{"delete at end", "abc", 3, false, "abc", 3},
		{"delete combining mark", "ae\u0301b", 1, false, "ab", 1},
		{"delete crlf", "a\r\nb", 1, false, "ab", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer(tt.text)
			var c CharCursor
			if tt.backward {
				c = DeletePreviousChar(buf, NewCharCursor(tt.at))
			} else {
				c = DeleteNextChar(buf, NewCharCursor(tt.at))
			}
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.cursor, c.Index)
		})
	}
}

func TestDeleteWord(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		at       int
		backward bool
		want     string
		cursor   int
	}{
		{"previous word", "hello world", 11, true, "hello ", 6},
		{"previous stops at whitespace run", "hello world", 6, true, "helloworld", 5},
		{"previous mid word", "hello world", 3, true, "lo world", 0},
		{"previous crosses newline run", "ab\n\ncd", 4, true, "abcd", 2},
		{"next word", "hello world", 0, false, " world", 0},
		{"next whitespace run", "hello   world", 5, false, "helloworld", 5},
		{"next at end", "hello", 5, false, "hello", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer(tt.text)
			var c CharCursor
			if tt.backward {
				c = DeletePreviousWord(buf, NewCharCursor(tt.at))
			} else {
				c = DeleteNextWord(buf, NewCharCursor(tt.at))
			}
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.cursor, c.Index)
		})
	}
}

func TestDeleteParagraph_UsesVisualRows(t *testing.T) {
	t.Run("before cursor on a logical line", func(t *testing.T) {
		buf := NewBuffer("ab\ncd")
		l := NewMonoLayout(buf.String(), 0, 1, 1, 4)

		c := DeleteParagraphBeforeCursor(buf, l, One(NewCharCursor(5)))
		require.Equal(t, "ab\n", buf.String())
		require.Equal(t, 3, c.Index)
	})

	t.Run("before cursor at row start joins rows", func(t *testing.T) {
		buf := NewBuffer("ab\ncd")
		l := NewMonoLayout(buf.String(), 0, 1, 1, 4)

		c := DeleteParagraphBeforeCursor(buf, l, One(NewCharCursor(3)))
		require.Equal(t, "abcd", buf.String())
		require.Equal(t, 2, c.Index)
	})

	t.Run("before cursor stops at soft wrap", func(t *testing.T) {
		buf := NewBuffer("abcdef")
		l := NewMonoLayout(buf.String(), 3, 1, 1, 4)

		c := DeleteParagraphBeforeCursor(buf, l, One(NewCharCursor(5)))
		require.Equal(t, "abcf", buf.String(), "only the wrapped row is cleared")
		require.Equal(t, 3, c.Index)
	})

	t.Run("after cursor", func(t *testing.T) {
		buf := NewBuffer("ab\ncd")
		l := NewMonoLayout(buf.String(), 0, 1, 1, 4)

		c := DeleteParagraphAfterCursor(buf, l, One(NewCharCursor(0)))
		require.Equal(t, "\ncd", buf.String())
		require.Equal(t, 0, c.Index)
	})

	t.Run("after cursor at row end joins rows", func(t *testing.T) {
		buf := NewBuffer("ab\ncd")
		l := NewMonoLayout(buf.String(), 0, 1, 1, 4)

		c := DeleteParagraphAfterCursor(buf, l, One(NewCharCursor(2)))
		require.Equal(t, "abcd", buf.String())
		require.Equal(t, 2, c.Index)
	})

	t.Run("after cursor with selection", func(t *testing.T) {
		buf := NewBuffer("abc def\nxyz")
		l := NewMonoLayout(buf.String(), 0, 1, 1, 4)

		c := DeleteParagraphAfterCursor(buf, l, Two(NewCharCursor(5), NewCharCursor(1)))
		require.Equal(t, "a\nxyz", buf.String())
		require.Equal(t, 1, c.Index)
	})
}

func TestDecreaseIndentation(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		at     int
		want   string
		cursor int
	}{
		{"tab", "\tfoo", 2, "foo", 1},
		{"spaces up to width", "      foo", 6, "  foo", 2},
		{"fewer spaces than width", "  foo", 4, "foo", 2},
		{"cursor inside indentation", "    x", 1, "x", 0},
		{"second line", "a\n\tb", 4, "a\nb", 3},
		{"no indentation", "foo", 2, "foo", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer(tt.text)
			c := DecreaseIndentation(buf, NewCharCursor(tt.at), 4)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.cursor, c.Index)
		})
	}
}

func TestInsertText_ReplacesSelection(t *testing.T) {
	buf := NewBuffer("hello world")

	rng := InsertText(buf, Two(NewCharCursor(6), NewCharCursor(11)), "there", 0)
	require.Equal(t, "hello there", buf.String())
	require.True(t, rng.IsEmpty())
	require.Equal(t, 11, rng.Primary.Index)
}

func TestBackspaceThenDelete_NoDoubleDeletion(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-z ]{2,30}`).Draw(rt, "text")
		n := len(text)
		at := rapid.IntRange(1, n-1).Draw(rt, "at")

		buf := NewBuffer(text)
		c := DeletePreviousChar(buf, NewCharCursor(at))
		DeleteNextChar(buf, c)

		require.Equal(rt, n-2, buf.Len())
		require.Equal(rt, text[:at-1]+text[at+1:], buf.String())
	})
}
