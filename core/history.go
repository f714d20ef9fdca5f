package core

import "time"

const (
	DefaultUndoDebounce = time.Second
	DefaultMaxUndos     = 100
)

// UndoEntry is a restorable snapshot of a document.
type UndoEntry struct {
	Selection SelectionRange
	Text      string
	Time      time.Time
}

// UndoHistory records document snapshots and groups edits that arrive close
// together into a single undo step.
//
// The editor feeds it after every processed event. Feeds that leave the text
// unchanged only refresh the remembered selection; a feed that changes the
// text either extends the open step or closes it and starts a new one,
// pushing the state from before the change onto the undo stack.
type UndoHistory struct {
	// Debounce is the longest pause between two edits of the same step.
	Debounce time.Duration
	// MaxUndos caps the undo stack; the oldest steps are dropped first.
	MaxUndos int

	undo []UndoEntry
	redo []UndoEntry

	last       *UndoEntry
	stepOpen   bool
	lastChange time.Time
}

// NewUndoHistory returns an empty history. Non-positive arguments select the
// defaults.
func NewUndoHistory(debounce time.Duration, maxUndos int) *UndoHistory {
	h := &UndoHistory{Debounce: debounce, MaxUndos: maxUndos}
	if h.Debounce <= 0 {
		h.Debounce = DefaultUndoDebounce
	}
	if h.MaxUndos <= 0 {
		h.MaxUndos = DefaultMaxUndos
	}
	return h
}

// Feed records the current state of the document.
func (h *UndoHistory) Feed(sel SelectionRange, text string, now time.Time) {
	if h.last == nil {
		h.last = &UndoEntry{Selection: sel, Text: text, Time: now}
		return
	}

	if h.last.Text == text {
		h.last.Selection = sel
		return
	}

	h.redo = nil
	if !h.stepOpen || now.Sub(h.lastChange) > h.Debounce {
		h.push(*h.last)
		h.stepOpen = true
	}

	h.last = &UndoEntry{Selection: sel, Text: text, Time: now}
	h.lastChange = now
}

func (h *UndoHistory) push(e UndoEntry) {
	h.undo = append(h.undo, e)
	if limit := h.MaxUndos; limit > 0 && len(h.undo) > limit {
		h.undo = h.undo[len(h.undo)-limit:]
	}
}

// Undo returns the state to restore in place of the current one, or false
// when there is nothing to undo.
func (h *UndoHistory) Undo(sel SelectionRange, text string) (UndoEntry, bool) {
	// Skip snapshots equal to what is already shown.
	for len(h.undo) > 0 {
		e := h.undo[len(h.undo)-1]
		h.undo = h.undo[:len(h.undo)-1]
		if e.Text == text {
			continue
		}
		h.redo = append(h.redo, h.current(sel, text))
		h.restored(e)
		return e, true
	}
	return UndoEntry{}, false
}

// Redo reapplies the most recently undone state, or returns false when there
// is nothing to redo.
func (h *UndoHistory) Redo(sel SelectionRange, text string) (UndoEntry, bool) {
	for len(h.redo) > 0 {
		e := h.redo[len(h.redo)-1]
		h.redo = h.redo[:len(h.redo)-1]
		if e.Text == text {
			continue
		}
		h.push(h.current(sel, text))
		h.restored(e)
		return e, true
	}
	return UndoEntry{}, false
}

// current snapshots the state being replaced by an undo or redo.
func (h *UndoHistory) current(sel SelectionRange, text string) UndoEntry {
	e := UndoEntry{Selection: sel, Text: text}
	if h.last != nil {
		e.Time = h.last.Time
	}
	return e
}

func (h *UndoHistory) restored(e UndoEntry) {
	h.last = &e
	h.stepOpen = false
}

// Break closes the open step so the next edit starts a new one.
func (h *UndoHistory) Break() { h.stepOpen = false }

// Clear forgets everything, including the current baseline.
func (h *UndoHistory) Clear() {
	h.undo = nil
	h.redo = nil
	h.last = nil
	h.stepOpen = false
}

func (h *UndoHistory) HasUndo() bool { return len(h.undo) > 0 }
func (h *UndoHistory) HasRedo() bool { return len(h.redo) > 0 }
