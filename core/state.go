package core

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// WidgetState is everything the editor remembers about one document between
// frames. The Session owns one per open document.
type WidgetState struct {
	Selection SelectionRange
	Scroll    ScrollState
	History   *UndoHistory
}

// NewWidgetState returns state with an empty history built from cfg.
func NewWidgetState(cfg Config) *WidgetState {
	return &WidgetState{
		History: NewUndoHistory(cfg.UndoDebounce.Duration, cfg.MaxUndos),
	}
}

// Concrete implementation of Editor
type editor struct {
	cfg              Config
	platform         Platform
	platformOverride *Platform
	layouter         Layouter

	// viewportHeight is the height from the latest frame, used for paging.
	viewportHeight float32

	clipboard    Clipboard // Clipboard interface for copy/cut
	logger       zerolog.Logger
	updateSignal chan Signal
}

func (e *editor) Config() Config     { return e.cfg }
func (e *editor) Platform() Platform { return e.platform }

func (e *editor) NewWidgetState() *WidgetState { return NewWidgetState(e.cfg) }

func (e *editor) GetUpdateSignalChan() <-chan Signal {
	return e.updateSignal
}

func (e *editor) Frame(buf Buffer, st *WidgetState, in FrameInput) Response {
	if st.History == nil {
		st.History = NewUndoHistory(e.cfg.UndoDebounce.Duration, e.cfg.MaxUndos)
	}
	e.viewportHeight = in.ViewportHeight
	now := in.Time
	if now.IsZero() {
		now = time.Now()
	}

	l := e.layouter(buf.String(), in.WrapWidth)
	before := l.Text()
	st.Selection = st.Selection.Clamp(buf.Len())
	st.History.Feed(st.Selection, before, now)

	handled := false
	if in.Focused {
		for _, ev := range in.Events {
			out := e.HandleEvent(buf, st, l, ev)
			if out.Kind == OutcomeUnhandled {
				continue
			}
			handled = true
			if out.Kind == OutcomeMutated {
				// Everything after this point must see the edited text.
				l = e.layouter(buf.String(), in.WrapWidth)
			}
			st.Selection = out.Selection.Clamp(buf.Len())
			st.History.Feed(st.Selection, l.Text(), now)
		}
	}

	cursor := l.FromCharCursor(st.Selection.Primary)
	rect := l.PosFromCursor(cursor)
	if handled {
		st.Scroll.ScrollTo(rect.Min.Y, rect.Height, in.ViewportHeight)
	}

	var delta float32
	if in.Hovered {
		delta = in.ScrollDelta
	}
	st.Scroll.Update(delta, l.Height(), in.ViewportHeight, in.DeltaTime, e.cfg.ScrollSmoothing)

	return Response{
		Changed:    l.Text() != before,
		Selection:  st.Selection,
		Cursor:     cursor,
		CursorRect: rect,
		Window:     st.Scroll.Window(l.RowHeight(), in.ViewportHeight, l.RowCount()),
		Layout:     l,
	}
}

func (e *editor) HandleEvent(buf Buffer, st *WidgetState, l Layout, ev Event) Outcome {
	rng := st.Selection.Clamp(buf.Len())

	if OnEvent(e.platform, ev, l, &rng, e.pageRows(l)) {
		return navigated(rng)
	}

	switch ev := ev.(type) {
	case TextEvent:
		// Enter is the only way to type a newline.
		text := strings.NewReplacer("\r", "", "\n", "").Replace(ev.Text)
		if text == "" {
			return unhandled()
		}
		return mutated(InsertText(buf, rng, text, e.cfg.MaxChars))

	case PasteEvent:
		if ev.Text == "" {
			return unhandled()
		}
		return mutated(InsertText(buf, rng, ev.Text, e.cfg.MaxChars))

	case CopyEvent:
		text := buf.String()
		if !rng.IsEmpty() {
			text = rng.SliceStr(buf)
		}
		if e.writeClipboard(text, false) == nil {
			e.DispatchMessage(CopiedMessage)
		}
		return unhandled()

	case CutEvent:
		return e.cut(buf, rng)

	case KeyPressEvent:
		return e.handleKey(buf, st, l, rng, ev.KeyEvent)
	}

	return unhandled()
}

func (e *editor) handleKey(buf Buffer, st *WidgetState, l Layout, rng SelectionRange, key KeyEvent) Outcome {
	mods := key.Modifiers

	switch {
	case mods.Command(e.platform) && key.Key == KeyZ && !mods.Shift():
		return e.undo(buf, st)
	case mods.Command(e.platform) && (key.Key == KeyY || (key.Key == KeyZ && mods.Shift())):
		return e.redo(buf, st)
	case key.Key == KeyDelete && mods.Shift() && e.platform == PlatformWindows:
		return e.cut(buf, rng)
	}

	if sel, ok := CheckForMutatingKeyPress(e.platform, mods, key.Key, rng, buf, l, e.cfg); ok {
		return mutated(sel)
	}
	return unhandled()
}

// cut moves the selection, or the whole buffer when nothing is selected, to
// the clipboard. The text stays put if the clipboard rejects it.
func (e *editor) cut(buf Buffer, rng SelectionRange) Outcome {
	if rng.IsEmpty() {
		if buf.Len() == 0 {
			return unhandled()
		}
		if e.writeClipboard(buf.String(), true) != nil {
			return unhandled()
		}
		buf.Take()
		e.DispatchMessage(CutMessage)
		return mutated(One(CharCursor{}))
	}

	if e.writeClipboard(rng.SliceStr(buf), true) != nil {
		return unhandled()
	}
	e.DispatchMessage(CutMessage)
	return mutated(One(DeleteSelected(buf, rng)))
}

func (e *editor) writeClipboard(text string, cut bool) error {
	if e.clipboard == nil {
		err := fmt.Errorf("%w: clipboard handler not set", ErrClipboardWrite)
		e.DispatchError(ErrClipboardWriteId, err)
		return err
	}
	if err := e.clipboard.Write(text); err != nil {
		err = fmt.Errorf("%w: %w", ErrClipboardWrite, err)
		e.logger.Error().Err(err).Msg("clipboard write failed")
		e.DispatchError(ErrClipboardWriteId, err)
		return err
	}
	e.DispatchSignal(CopySignal{text: text, cut: cut})
	return nil
}

func (e *editor) undo(buf Buffer, st *WidgetState) Outcome {
	entry, ok := st.History.Undo(st.Selection, buf.String())
	if !ok {
		e.DispatchMessage(NothingToUndo)
		return unhandled()
	}
	buf.ReplaceWith(entry.Text)
	e.DispatchSignal(UndoSignal{})
	return mutated(entry.Selection)
}

func (e *editor) redo(buf Buffer, st *WidgetState) Outcome {
	entry, ok := st.History.Redo(st.Selection, buf.String())
	if !ok {
		e.DispatchMessage(NothingToRedo)
		return unhandled()
	}
	buf.ReplaceWith(entry.Text)
	e.DispatchSignal(RedoSignal{})
	return mutated(entry.Selection)
}

// pageRows is how many rows fit in the last known viewport.
func (e *editor) pageRows(l Layout) int {
	if e.viewportHeight <= 0 || l.RowHeight() <= 0 {
		return 1
	}
	return max(1, int(math.Floor(float64(e.viewportHeight/l.RowHeight()))))
}

// Save hands the document's content to the host through a SaveSignal.
func (e *editor) Save(doc *Document) {
	if doc == nil {
		return
	}
	if !doc.Dirty() {
		e.DispatchError(ErrNoChangesToSaveId, ErrNoChangesToSave)
		return
	}

	signal := SaveSignal{id: doc.ID, path: doc.Path, content: doc.Buffer.String()}
	select {
	case e.updateSignal <- signal:
	default:
		e.logger.Warn().Str("doc", string(doc.ID)).Msg("failed to send SaveSignal, channel full")
	}
}

func (e *editor) Quit() {
	e.DispatchSignal(QuitSignal{})
}
