package core

import (
	"unicode/utf8"
)

// Buffer represents the text content of one open document. All offsets are
// character (rune) indices and every operation clamps out-of-range input.
//
// The editor only relies on this capability set, so a rope or a gap buffer
// can stand in for the default rune-slice implementation.
type Buffer interface {
	// Content access
	Len() int                        // Number of characters
	String() string                  // Entire content
	CharRange(start, end int) string // Text in the sorted range [start, end)

	// Modification
	InsertTextAt(cursor CharCursor, text string, maxChars int) CharCursor // Insert, truncated to maxChars total (<= 0 means unlimited)
	DeleteCharRange(start, end int)                                       // Delete the sorted range [start, end)
	Take() string                                                         // Clear and return previous content
	ReplaceWith(text string)                                              // Replace entire content
}

// textBuffer is the default Buffer, a flat slice of runes.
type textBuffer struct {
	runes []rune
}

// NewBuffer creates a buffer holding text
func NewBuffer(text string) Buffer {
	return &textBuffer{runes: []rune(text)}
}

// NewBufferFromBytes creates a buffer from file content. Invalid UTF-8 is
// replaced rune by rune.
func NewBufferFromBytes(content []byte) Buffer {
	b := &textBuffer{runes: make([]rune, 0, utf8.RuneCount(content))}
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		b.runes = append(b.runes, r)
		content = content[size:]
	}
	return b
}

func (b *textBuffer) Len() int {
	return len(b.runes)
}

func (b *textBuffer) String() string {
	return string(b.runes)
}

// sortedSpan orders and clamps a range into [0, len].
func (b *textBuffer) sortedSpan(start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	start = clampInt(start, 0, len(b.runes))
	end = clampInt(end, 0, len(b.runes))
	return start, end
}

func (b *textBuffer) CharRange(start, end int) string {
	start, end = b.sortedSpan(start, end)
	return string(b.runes[start:end])
}

// InsertTextAt inserts text at cursor and returns the cursor after it.
func (b *textBuffer) InsertTextAt(cursor CharCursor, text string, maxChars int) CharCursor {
	cursor = cursor.clamp(len(b.runes))
	ins := []rune(text)

	if maxChars > 0 {
		room := maxChars - len(b.runes)
		if room <= 0 {
			return cursor
		}
		if len(ins) > room {
			ins = ins[:room]
		}
	}
	if len(ins) == 0 {
		return cursor
	}

	next := make([]rune, 0, len(b.runes)+len(ins))
	next = append(next, b.runes[:cursor.Index]...)
	next = append(next, ins...)
	next = append(next, b.runes[cursor.Index:]...)
	b.runes = next

	return CharCursor{Index: cursor.Index + len(ins), PreferNextRow: cursor.PreferNextRow}
}

func (b *textBuffer) DeleteCharRange(start, end int) {
	start, end = b.sortedSpan(start, end)
	if start == end {
		return
	}
	b.runes = append(b.runes[:start], b.runes[end:]...)
}

func (b *textBuffer) Take() string {
	prev := string(b.runes)
	b.runes = nil
	return prev
}

func (b *textBuffer) ReplaceWith(text string) {
	b.runes = []rune(text)
}
