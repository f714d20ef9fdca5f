package core

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FrameInput is everything the host hands the editor for one frame.
type FrameInput struct {
	// Focused gates event processing; events are dropped while unfocused.
	Focused bool
	// Hovered gates ScrollDelta.
	Hovered     bool
	Events      []Event
	ScrollDelta float32

	// Time stamps the frame for undo grouping. Zero means time.Now().
	Time time.Time
	// DeltaTime is the time since the previous frame, in seconds.
	DeltaTime float32

	// WrapWidth is passed to the Layouter; 0 disables wrapping.
	WrapWidth      float32
	ViewportHeight float32
}

// Response reports the outcome of a frame to the host.
type Response struct {
	// Changed is true when the frame left the text different from how it
	// found it.
	Changed   bool
	Selection SelectionRange
	// Cursor is the primary cursor resolved against Layout.
	Cursor     VisualCursor
	CursorRect Rect
	Window     VisibleWindow
	// Layout describes the text as it is after the frame.
	Layout Layout
}

// Editor represents the main editor interface
type Editor interface {
	// Frame processes one frame of input against buf, reading and writing the
	// per-document state in st.
	Frame(buf Buffer, st *WidgetState, in FrameInput) Response

	// HandleEvent runs a single event through navigation and then mutation.
	// l must describe the current contents of buf.
	HandleEvent(buf Buffer, st *WidgetState, l Layout, ev Event) Outcome

	Config() Config
	Platform() Platform
	// NewWidgetState returns fresh per-document state sized by the config.
	NewWidgetState() *WidgetState

	GetUpdateSignalChan() <-chan Signal  // For UI updates
	Save(doc *Document)                  // Ask the host to persist a document
	Quit()                               // Signal to quit the editor
	DispatchError(id ErrorId, err error) // Dispatch errors to consumers
	DispatchMessage(args ...string)      // Dispatch (success) messages to consumers
	DispatchSignal(signal Signal)        // Dispatch signals to consumers
}

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Option configures an editor built by New.
type Option func(*editor)

// WithConfig replaces DefaultConfig. The platform it names is used unless
// WithPlatform is also given.
func WithConfig(cfg Config) Option {
	return func(e *editor) {
		e.cfg = cfg
		e.platform = cfg.ResolvedPlatform()
	}
}

func WithPlatform(p Platform) Option {
	return func(e *editor) { e.platformOverride = &p }
}

// WithLayouter sets how text is laid out. The default is a MonoLayout with
// one unit per cell and the configured line height.
func WithLayouter(l Layouter) Option {
	return func(e *editor) { e.layouter = l }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *editor) { e.logger = logger }
}

// New creates a new editor instance
func New(clipboard Clipboard, opts ...Option) Editor {
	cfg := DefaultConfig()
	e := &editor{
		cfg:          cfg,
		platform:     cfg.ResolvedPlatform(),
		clipboard:    clipboard,
		logger:       log.Logger,
		updateSignal: make(chan Signal, 100), // Buffered channel for updates
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.platformOverride != nil {
		e.platform = *e.platformOverride
	}
	if e.layouter == nil {
		e.layouter = MonoLayouter(1, e.cfg.LineHeight, e.cfg.TabWidth)
	}

	e.logger.Debug().
		Str("platform", e.platform.String()).
		Dur("undo_debounce", e.cfg.UndoDebounce.Duration).
		Msg("editor created")

	return e
}
