package core

// CharCursor is an offset into the buffer counted in characters (runes),
// plus the row affinity used when the offset sits exactly on a soft wrap.
type CharCursor struct {
	Index         int
	PreferNextRow bool
}

// NewCharCursor returns a cursor at index with no row preference.
func NewCharCursor(index int) CharCursor {
	return CharCursor{Index: index}
}

// clamp keeps the cursor inside [0, n].
func (c CharCursor) clamp(n int) CharCursor {
	c.Index = clampInt(c.Index, 0, n)
	return c
}

// SelectionRange is a pair of cursors. Primary is the end that moves;
// Secondary is the anchor. Equal cursors mean a plain insertion point.
type SelectionRange struct {
	Primary   CharCursor
	Secondary CharCursor
}

// One returns a collapsed range at c.
func One(c CharCursor) SelectionRange {
	return SelectionRange{Primary: c, Secondary: c}
}

// Two returns a range anchored at secondary with the moving end at primary.
func Two(secondary, primary CharCursor) SelectionRange {
	return SelectionRange{Primary: primary, Secondary: secondary}
}

// SelectAll returns a range covering a buffer of n characters, with the
// moving end at the buffer end.
func SelectAll(n int) SelectionRange {
	return Two(CharCursor{}, CharCursor{Index: n})
}

// IsEmpty reports whether the range is a plain cursor.
func (r SelectionRange) IsEmpty() bool {
	return r.Primary.Index == r.Secondary.Index
}

// Single returns the cursor when the range is collapsed.
func (r SelectionRange) Single() (CharCursor, bool) {
	if r.IsEmpty() {
		return r.Primary, true
	}
	return CharCursor{}, false
}

// Sorted returns the two ends ordered by index.
func (r SelectionRange) Sorted() (first, last CharCursor) {
	if r.Primary.Index <= r.Secondary.Index {
		return r.Primary, r.Secondary
	}
	return r.Secondary, r.Primary
}

// SortedIndices returns the sorted character span [start, end).
func (r SelectionRange) SortedIndices() (start, end int) {
	first, last := r.Sorted()
	return first.Index, last.Index
}

// SliceStr returns the selected text.
func (r SelectionRange) SliceStr(buf Buffer) string {
	start, end := r.SortedIndices()
	return buf.CharRange(start, end)
}

// Clamp keeps both ends inside a buffer of n characters.
func (r SelectionRange) Clamp(n int) SelectionRange {
	return SelectionRange{
		Primary:   r.Primary.clamp(n),
		Secondary: r.Secondary.clamp(n),
	}
}

// Visual resolves both ends against a layout.
func (r SelectionRange) Visual(l Layout) (primary, secondary VisualCursor) {
	return l.FromCharCursor(r.Primary), l.FromCharCursor(r.Secondary)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
