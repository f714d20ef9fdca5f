package core

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// graphemeWindow is how many characters are inspected around a cursor before
// the window is widened.
const graphemeWindow = 32

// prevGraphemeStart returns the index where the grapheme cluster ending at
// index starts. It returns index unchanged at the buffer start.
func prevGraphemeStart(buf Buffer, index int) int {
	index = clampInt(index, 0, buf.Len())
	if index == 0 {
		return 0
	}

	for window := graphemeWindow; ; window *= 2 {
		from := max(0, index-window)
		last := lastClusterLen(buf.CharRange(from, index))
		start := index - last
		// A cluster touching the window edge may continue further left.
		if start > from || from == 0 {
			return start
		}
	}
}

// nextGraphemeEnd returns the index where the grapheme cluster starting at
// index ends. It returns index unchanged at the buffer end.
func nextGraphemeEnd(buf Buffer, index int) int {
	n := buf.Len()
	index = clampInt(index, 0, n)
	if index == n {
		return n
	}

	for window := graphemeWindow; ; window *= 2 {
		to := min(n, index+window)
		end := index + firstClusterLen(buf.CharRange(index, to))
		if end < to || to == n {
			return end
		}
	}
}

// firstClusterLen returns the rune length of the first grapheme in text.
func firstClusterLen(text string) int {
	if text == "" {
		return 0
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	return utf8.RuneCountInString(cluster)
}

// lastClusterLen returns the rune length of the last grapheme in text.
func lastClusterLen(text string) int {
	last := 0
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		last = utf8.RuneCountInString(cluster)
	}
	return last
}

// isSpaceAt reports whether the character at index is whitespace.
// Word boundaries are transitions of this class.
func isSpaceAt(buf Buffer, index int) bool {
	s := buf.CharRange(index, index+1)
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
