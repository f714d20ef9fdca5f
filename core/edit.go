package core

// The operations below work on any Buffer. Each returns the cursor the
// editor should place after the edit, and none of them fail: out-of-range
// input is clamped and deletions at the buffer edges are no-ops.

// DeleteSelected deletes the sorted span of rng. An empty range is left
// untouched and its cursor is returned as is.
func DeleteSelected(buf Buffer, rng SelectionRange) CharCursor {
	rng = rng.Clamp(buf.Len())
	if rng.IsEmpty() {
		return rng.Primary
	}
	start, end := rng.SortedIndices()
	buf.DeleteCharRange(start, end)
	return CharCursor{Index: start}
}

// DeletePreviousChar deletes the grapheme before c.
func DeletePreviousChar(buf Buffer, c CharCursor) CharCursor {
	c = c.clamp(buf.Len())
	start := prevGraphemeStart(buf, c.Index)
	if start == c.Index {
		return c
	}
	buf.DeleteCharRange(start, c.Index)
	return CharCursor{Index: start}
}

// DeleteNextChar deletes the grapheme after c.
func DeleteNextChar(buf Buffer, c CharCursor) CharCursor {
	c = c.clamp(buf.Len())
	end := nextGraphemeEnd(buf, c.Index)
	buf.DeleteCharRange(c.Index, end)
	return CharCursor{Index: c.Index}
}

// DeletePreviousWord deletes left of c up to the first whitespace class
// transition.
func DeletePreviousWord(buf Buffer, c CharCursor) CharCursor {
	c = c.clamp(buf.Len())
	start := previousWordBoundary(buf, c.Index)
	buf.DeleteCharRange(start, c.Index)
	return CharCursor{Index: start}
}

// DeleteNextWord deletes right of c up to the first whitespace class
// transition.
func DeleteNextWord(buf Buffer, c CharCursor) CharCursor {
	c = c.clamp(buf.Len())
	end := nextWordBoundary(buf, c.Index)
	buf.DeleteCharRange(c.Index, end)
	return CharCursor{Index: c.Index}
}

// DeleteParagraphBeforeCursor deletes from the start of the visual row of the
// range's first end up to its last end. When there is nothing in between it
// deletes the previous character instead, joining the row with the one above.
func DeleteParagraphBeforeCursor(buf Buffer, l Layout, rng SelectionRange) CharCursor {
	rng = rng.Clamp(buf.Len())
	first, last := rng.Sorted()
	begin := RowBegin(l, first)
	if begin.Index == last.Index {
		return DeletePreviousChar(buf, last)
	}
	return DeleteSelected(buf, Two(begin, last))
}

// DeleteParagraphAfterCursor deletes from the range's first end to the end of
// the visual row of its last end. At a row end it deletes the next character.
func DeleteParagraphAfterCursor(buf Buffer, l Layout, rng SelectionRange) CharCursor {
	rng = rng.Clamp(buf.Len())
	first, last := rng.Sorted()
	end := RowEnd(l, last)
	if end.Index == first.Index {
		return DeleteNextChar(buf, first)
	}
	return DeleteSelected(buf, Two(first, end))
}

// DecreaseIndentation removes one leading tab, or up to indentWidth leading
// spaces, from the logical line holding c.
func DecreaseIndentation(buf Buffer, c CharCursor, indentWidth int) CharCursor {
	c = c.clamp(buf.Len())
	lineStart := logicalLineStart(buf, c.Index)

	removed := 0
	if buf.CharRange(lineStart, lineStart+1) == "\t" {
		removed = 1
	} else {
		for removed < indentWidth && buf.CharRange(lineStart+removed, lineStart+removed+1) == " " {
			removed++
		}
	}
	if removed == 0 {
		return c
	}

	buf.DeleteCharRange(lineStart, lineStart+removed)
	c.Index -= min(removed, c.Index-lineStart)
	return c
}

// InsertText inserts text over rng and returns the collapsed range after it.
func InsertText(buf Buffer, rng SelectionRange, text string, maxChars int) SelectionRange {
	c := DeleteSelected(buf, rng)
	return One(buf.InsertTextAt(c, text, maxChars))
}

func previousWordBoundary(buf Buffer, index int) int {
	if index == 0 {
		return 0
	}
	space := isSpaceAt(buf, index-1)
	for index > 0 && isSpaceAt(buf, index-1) == space {
		index--
	}
	return index
}

func nextWordBoundary(buf Buffer, index int) int {
	n := buf.Len()
	if index >= n {
		return n
	}
	space := isSpaceAt(buf, index)
	for index < n && isSpaceAt(buf, index) == space {
		index++
	}
	return index
}

// logicalLineStart returns the index just after the newline preceding index.
func logicalLineStart(buf Buffer, index int) int {
	for index > 0 && buf.CharRange(index-1, index) != "\n" {
		index--
	}
	return index
}
