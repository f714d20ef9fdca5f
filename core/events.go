package core

// Event is one discrete input event delivered by the host for a frame.
// The concrete types are TextEvent, PasteEvent, CopyEvent, CutEvent,
// KeyPressEvent and PointerEvent.
type Event interface {
	isEvent()
}

// TextEvent carries typed text. Newlines inside it are ignored; Enter is the
// only way to insert a line break.
type TextEvent struct {
	Text string
}

// PasteEvent carries text the host already resolved from the clipboard.
type PasteEvent struct {
	Text string
}

// CopyEvent asks the editor to copy the selection, or the whole buffer when
// nothing is selected.
type CopyEvent struct{}

// CutEvent asks the editor to cut the selection, or the whole buffer when
// nothing is selected.
type CutEvent struct{}

// KeyPressEvent is a key going down. Releases are not delivered.
type KeyPressEvent struct {
	KeyEvent
}

// PointerKind tells a click apart from a drag.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerDrag
)

// PointerEvent is a primary-button press or drag at a position relative to
// the text origin (scroll offset already applied by the host).
type PointerEvent struct {
	Kind      PointerKind
	Pos       Point
	Modifiers KeyModifiers
}

func (TextEvent) isEvent()     {}
func (PasteEvent) isEvent()    {}
func (CopyEvent) isEvent()     {}
func (CutEvent) isEvent()      {}
func (KeyPressEvent) isEvent() {}
func (PointerEvent) isEvent()  {}

// Key is shorthand for building a KeyPressEvent.
func Key(code KeyCode, mods KeyModifiers) KeyPressEvent {
	return KeyPressEvent{KeyEvent{Key: code, Modifiers: mods}}
}
