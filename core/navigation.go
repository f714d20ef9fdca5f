package core

// --- Selection-only changes ---

// OnEvent tries to read event as a pure navigation or selection change.
// It updates rng in place and returns true when it did; false means the event
// has to be tried as a mutation instead. pageRows is how many visual rows
// PageUp and PageDown travel.
func OnEvent(platform Platform, event Event, l Layout, rng *SelectionRange, pageRows int) bool {
	n := len([]rune(l.Text()))

	switch ev := event.(type) {
	case PointerEvent:
		c := l.CursorFromPos(ev.Pos).Char
		switch {
		case ev.Kind == PointerDrag:
			rng.Primary = c
		case ev.Modifiers.Shift():
			rng.Primary = c
		default:
			*rng = One(c)
		}
		return true

	case KeyPressEvent:
		return onKey(platform, ev.KeyEvent, l, n, rng, pageRows)
	}

	return false
}

func onKey(platform Platform, key KeyEvent, l Layout, n int, rng *SelectionRange, pageRows int) bool {
	mods := key.Modifiers

	if key.Key == KeyA && mods.Command(platform) && !mods.Shift() {
		*rng = SelectAll(n)
		return true
	}

	var moved CharCursor
	switch key.Key {
	case KeyLeft, KeyRight:
		if !mods.Shift() && !rng.IsEmpty() && !mods.WordModifier(platform) && !mods.Cmd() {
			// Collapse the selection onto the side the arrow points at.
			first, last := rng.Sorted()
			if key.Key == KeyLeft {
				*rng = One(first)
			} else {
				*rng = One(last)
			}
			return true
		}
		moved = moveHorizontal(platform, key, l, rng.Primary)

	case KeyUp, KeyDown:
		delta := -1
		if key.Key == KeyDown {
			delta = 1
		}
		if mods.Cmd() && platform == PlatformMac {
			moved = bufferEdge(delta, n)
		} else {
			moved = moveRows(l, rng.Primary, delta)
		}

	case KeyPageUp, KeyPageDown:
		rows := max(1, pageRows)
		if key.Key == KeyPageUp {
			rows = -rows
		}
		moved = moveRows(l, rng.Primary, rows)

	case KeyHome, KeyEnd:
		delta := -1
		if key.Key == KeyEnd {
			delta = 1
		}
		if mods.Command(platform) {
			moved = bufferEdge(delta, n)
		} else if delta < 0 {
			moved = RowBegin(l, rng.Primary)
		} else {
			moved = RowEnd(l, rng.Primary)
		}

	default:
		return false
	}

	if mods.Shift() {
		rng.Primary = moved
	} else {
		*rng = One(moved)
	}
	return true
}

func moveHorizontal(platform Platform, key KeyEvent, l Layout, c CharCursor) CharCursor {
	mods := key.Modifiers
	left := key.Key == KeyLeft

	if platform == PlatformMac && mods.Cmd() {
		if left {
			return RowBegin(l, c)
		}
		return RowEnd(l, c)
	}

	// Navigation reads the layout's text so it never sees a buffer newer
	// than the layout it positions against.
	buf := NewBuffer(l.Text())
	if mods.WordModifier(platform) {
		if left {
			return CharCursor{Index: previousWordStart(buf, c.Index)}
		}
		return CharCursor{Index: nextWordEnd(buf, c.Index)}
	}
	if left {
		return CharCursor{Index: prevGraphemeStart(buf, c.Index)}
	}
	return CharCursor{Index: nextGraphemeEnd(buf, c.Index), PreferNextRow: true}
}

// previousWordStart skips whitespace, then the word before it.
func previousWordStart(buf Buffer, index int) int {
	for index > 0 && isSpaceAt(buf, index-1) {
		index--
	}
	return previousWordBoundary(buf, index)
}

// nextWordEnd skips whitespace, then the word after it.
func nextWordEnd(buf Buffer, index int) int {
	n := buf.Len()
	for index < n && isSpaceAt(buf, index) {
		index++
	}
	return nextWordBoundary(buf, index)
}

// moveRows moves c by delta visual rows, keeping its x position.
func moveRows(l Layout, c CharCursor, delta int) CharCursor {
	vc := l.FromCharCursor(c)
	target := vc.Row + delta
	if target < 0 {
		return CharCursor{}
	}
	if target >= l.RowCount() {
		return CharCursor{Index: len([]rune(l.Text()))}
	}

	rect := l.PosFromCursor(vc)
	y := float32(target)*l.RowHeight() + l.RowHeight()/2
	return l.CursorFromPos(Point{X: rect.Min.X, Y: y}).Char
}

func bufferEdge(delta, n int) CharCursor {
	if delta < 0 {
		return CharCursor{}
	}
	return CharCursor{Index: n}
}
