package core

// OutcomeKind tags what an input event turned out to be.
type OutcomeKind int

const (
	// OutcomeUnhandled means the event matched no binding and changed nothing.
	OutcomeUnhandled OutcomeKind = iota
	// OutcomeNavigation means only the selection moved.
	OutcomeNavigation
	// OutcomeMutated means the buffer changed; Selection holds the new range.
	OutcomeMutated
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNavigation:
		return "navigation"
	case OutcomeMutated:
		return "mutated"
	default:
		return "unhandled"
	}
}

// Outcome is the result of dispatching a single event.
type Outcome struct {
	Kind      OutcomeKind
	Selection SelectionRange
}

func unhandled() Outcome { return Outcome{Kind: OutcomeUnhandled} }

func navigated(rng SelectionRange) Outcome {
	return Outcome{Kind: OutcomeNavigation, Selection: rng}
}

func mutated(rng SelectionRange) Outcome {
	return Outcome{Kind: OutcomeMutated, Selection: rng}
}

// CheckForMutatingKeyPress applies the key bindings that edit text. It returns
// the selection after the edit and true, or false when key is not a mutating
// binding, in which case buf is left untouched.
//
// l must describe the current contents of buf; it is only read before the
// edit happens.
func CheckForMutatingKeyPress(
	platform Platform,
	mods KeyModifiers,
	key KeyCode,
	rng SelectionRange,
	buf Buffer,
	l Layout,
	cfg Config,
) (SelectionRange, bool) {
	rng = rng.Clamp(buf.Len())

	switch key {
	case KeyBackspace:
		var c CharCursor
		switch single, ok := rng.Single(); {
		case platform == PlatformMac && mods.Cmd():
			c = DeleteParagraphBeforeCursor(buf, l, rng)
		case !ok:
			c = DeleteSelected(buf, rng)
		case mods.WordModifier(platform):
			c = DeletePreviousWord(buf, single)
		default:
			c = DeletePreviousChar(buf, single)
		}
		return One(c), true

	case KeyDelete:
		if mods.Shift() && platform == PlatformWindows {
			// Shift+Delete cuts on Windows.
			return rng, false
		}
		var c CharCursor
		switch single, ok := rng.Single(); {
		case platform == PlatformMac && mods.Cmd():
			c = DeleteParagraphAfterCursor(buf, l, rng)
		case !ok:
			c = DeleteSelected(buf, rng)
		case mods.WordModifier(platform):
			c = DeleteNextWord(buf, single)
		default:
			c = DeleteNextChar(buf, single)
		}
		c.PreferNextRow = true
		return One(c), true

	case KeyH:
		if !mods.Ctrl() {
			return rng, false
		}
		return One(DeletePreviousChar(buf, rng.Primary)), true

	case KeyK:
		if !mods.Ctrl() {
			return rng, false
		}
		c := DeleteParagraphAfterCursor(buf, l, rng)
		c.PreferNextRow = true
		return One(c), true

	case KeyU:
		if !mods.Ctrl() {
			return rng, false
		}
		return One(DeleteParagraphBeforeCursor(buf, l, rng)), true

	case KeyW:
		if !mods.Ctrl() {
			return rng, false
		}
		if single, ok := rng.Single(); ok {
			return One(DeletePreviousWord(buf, single)), true
		}
		return One(DeleteSelected(buf, rng)), true

	case KeyTab:
		c := DeleteSelected(buf, rng)
		if mods.Shift() {
			return One(DecreaseIndentation(buf, c, cfg.IndentWidth)), true
		}
		return One(buf.InsertTextAt(c, "\t", cfg.MaxChars)), true

	case KeyEnter:
		c := DeleteSelected(buf, rng)
		return One(buf.InsertTextAt(c, "\n", cfg.MaxChars)), true
	}

	return rng, false
}
