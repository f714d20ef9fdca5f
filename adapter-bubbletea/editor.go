package adapter_bubbletea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/eta/core"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Theme struct {
	CursorStyle            lipgloss.Style
	StatusLineStyle        lipgloss.Style
	DirtyStyle             lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	ErrorStyle             lipgloss.Style
	PlaceholderStyle       lipgloss.Style
	TildeStyle             lipgloss.Style
}

var DefaultTheme = Theme{
	CursorStyle:            lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	DirtyStyle:             lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("0")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(4).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(4).Align(lipgloss.Right),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	PlaceholderStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	TildeStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// frameInterval paces the frames that ease scrolling once input stops.
const frameInterval = 16 * time.Millisecond

// wheelLines is how many rows one wheel notch scrolls.
const wheelLines = 3

type Model struct {
	editor          editor.Editor
	session         *editor.Session
	keyMap          KeyMap
	clipboard       editor.Clipboard
	viewport        viewport.Model
	width           int
	height          int
	showLineNumbers bool
	showStatusLine  bool
	theme           Theme
	StatusLineFunc  func() string
	err             error
	message         string
	isFocused       bool
	placeholder     string
	clearMsgCancel  context.CancelFunc
	logger          zerolog.Logger

	// Last frame, kept for rendering and mouse hit testing.
	response  editor.Response
	lastFrame time.Time
	animating bool
	dragging  bool
}

type ErrorMsg struct {
	ID    editor.ErrorId
	Error error
}

// SaveMsg asks the host to write Content. Path is nil for scratch documents;
// the host picks a path and reports it back through SetPath.
type SaveMsg struct {
	ID      editor.DocID
	Path    *string
	Content string
}

// ReloadMsg asks the host to read the document at Path again and hand the
// content back through Reload.
type ReloadMsg struct {
	ID   editor.DocID
	Path string
}

type QuitMsg struct{}

// CopyMsg reports text placed on the clipboard.
type CopyMsg struct {
	Content string
	Cut     bool
}

type UndoMsg struct{}

type RedoMsg struct{}

type clearMsg struct{}

type frameMsg time.Time

type messageMsg string

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

// New builds an editor model backed by the system clipboard.
func New(width, height int, cfg editor.Config, opts ...editor.Option) Model {
	return NewWithClipboard(width, height, cfg, &clipboardImpl{}, opts...)
}

// NewWithClipboard is New with a caller supplied clipboard.
func NewWithClipboard(width, height int, cfg editor.Config, cb editor.Clipboard, opts ...editor.Option) Model {
	opts = append([]editor.Option{editor.WithConfig(cfg)}, opts...)
	ed := editor.New(cb, opts...)

	m := Model{
		editor:          ed,
		session:         editor.NewSession(cfg),
		keyMap:          DefaultKeyMap,
		clipboard:       cb,
		viewport:        viewport.New(width, height-2),
		showLineNumbers: true,
		showStatusLine:  true,
		theme:           DefaultTheme,
		logger:          log.Logger,
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-2)
	if !m.showStatusLine {
		m.viewport.Height = max(1, height)
	}
	m.frame(nil, 0)
}

// SetLogger sets the logger used by the model and its session.
func (m *Model) SetLogger(logger zerolog.Logger) {
	m.logger = logger
	m.session.SetLogger(logger)
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
	m.frame(nil, 0)
}

// WithKeyMap replaces the host key bindings.
func (m *Model) WithKeyMap(keyMap KeyMap) {
	m.keyMap = keyMap
}

// Open shows the file at path, reading its content from content. A file
// that is already open keeps its unsaved edits.
func (m *Model) Open(path string, content []byte) *editor.Document {
	doc := m.session.Open(path, content)
	m.frame(nil, 0)
	return doc
}

// OpenScratch shows a new document without a file.
func (m *Model) OpenScratch(text string) *editor.Document {
	doc := m.session.OpenScratch(text)
	m.frame(nil, 0)
	return doc
}

// SetContent replaces the text of the current document as if it had just
// been read from disk: undo history is dropped and the document is clean.
func (m *Model) SetContent(content string) {
	doc := m.current()
	if err := m.session.Reload(doc.ID, []byte(content)); err != nil {
		m.logger.Error().Err(err).Msg("failed to set content")
		return
	}
	m.frame(nil, 0)
}

// Reload replaces a document's text with content read from disk. Unsaved
// edits and undo history are dropped.
func (m *Model) Reload(id editor.DocID, content []byte) error {
	if err := m.session.Reload(id, content); err != nil {
		return err
	}
	m.frame(nil, 0)
	return nil
}

// GetCurrentContent returns the text of the current document.
func (m *Model) GetCurrentContent() string {
	return m.current().Buffer.String()
}

// HasChanges checks if the current document has unsaved changes
func (m *Model) HasChanges() bool {
	return m.current().Dirty()
}

// MarkSaved records a successful write of content for the document. Hosts
// call it only after the write succeeded so a failed write keeps the
// document dirty.
func (m *Model) MarkSaved(id editor.DocID, content string) error {
	return m.session.MarkSaved(id, content)
}

// SetPath assigns a file to a scratch document after the host chose one.
func (m *Model) SetPath(id editor.DocID, path string) error {
	_, err := m.session.SetPath(id, path)
	return err
}

// Session returns the open documents.
func (m *Model) Session() *editor.Session {
	return m.session
}

// GetEditor returns the underlying editor instance
func (m *Model) GetEditor() editor.Editor {
	return m.editor
}

// HideLineNumbers controls whether to show line numbers in the viewport.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
	m.frame(nil, 0)
}

// HideStatusLine controls whether to show the status and command lines.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
	m.SetSize(m.width, m.height)
}

func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
	m.frame(nil, 0)
}

// Blur sets the editor to unfocused state.
func (m *Model) Blur() {
	m.isFocused = false
	m.frame(nil, 0)
}

// IsFocused returns whether the editor is currently focused.
func (m *Model) IsFocused() bool {
	return m.isFocused
}

// DispatchMessage shows message in the command line for duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil
	return m.dispatchClearMsg(duration)
}

// DispatchError shows err in the command line for duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""
	return m.dispatchClearMsg(duration)
}

// current returns the shown document, opening a scratch one if there is none.
func (m *Model) current() *editor.Document {
	doc := m.session.Current()
	if doc == nil {
		doc = m.session.OpenScratch("")
	}
	return doc
}

// frame runs one editor frame against the current document and re-renders.
// It returns a command that keeps frames coming while scrolling eases.
func (m *Model) frame(events []editor.Event, scrollDelta float32) tea.Cmd {
	if m.editor == nil {
		return nil
	}

	now := time.Now()
	var dt float32
	if !m.lastFrame.IsZero() {
		dt = float32(now.Sub(m.lastFrame).Seconds())
	}
	m.lastFrame = now

	doc := m.session.Current()
	if doc == nil {
		m.response = editor.Response{}
		m.viewport.SetContent("")
		return nil
	}
	cfg := m.editor.Config()
	gutter := m.lineNumberWidth(doc)

	resp := m.editor.Frame(doc.Buffer, doc.State, editor.FrameInput{
		Focused:        m.isFocused,
		Hovered:        true,
		Events:         events,
		ScrollDelta:    scrollDelta,
		Time:           now,
		DeltaTime:      dt,
		WrapWidth:      float32(max(1, m.viewport.Width-gutter)),
		ViewportHeight: float32(m.viewport.Height) * cfg.LineHeight,
	})
	if err := m.session.Apply(doc.ID, resp); err != nil {
		m.logger.Error().Err(err).Msg("failed to apply frame")
	}
	m.response = resp
	m.renderVisibleSlice(doc)

	if doc.State.Scroll.Settled() || m.animating {
		return nil
	}
	m.animating = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.FocusMsg:
		m.Focus()

	case tea.BlurMsg:
		m.Blur()

	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case frameMsg:
		m.animating = false
		cmds = append(cmds, m.frame(nil, 0))

	case messageMsg:
		cmds = append(cmds, m.DispatchMessage(string(msg), 3*time.Second))

	case ErrorMsg:
		cmds = append(cmds, m.DispatchError(msg.Error, 3*time.Second))

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil
	}

	cmds = append(cmds, m.listenForEditorUpdate())

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.keyMap.Matches(msg, m.keyMap.Save):
		m.editor.Save(m.current())
		return nil

	case m.keyMap.Matches(msg, m.keyMap.Reload):
		doc := m.current()
		if doc.IsScratch() {
			return m.DispatchError(fmt.Errorf("%s has no file to reload", doc.Name()), 3*time.Second)
		}
		reload := ReloadMsg{ID: doc.ID, Path: doc.Path}
		return func() tea.Msg { return reload }

	case m.keyMap.Matches(msg, m.keyMap.Quit):
		m.editor.Quit()
		return nil

	case m.keyMap.Matches(msg, m.keyMap.NextDocument):
		m.session.Next()
		return m.frame(nil, 0)

	case m.keyMap.Matches(msg, m.keyMap.NewDocument):
		m.session.OpenScratch("")
		return m.frame(nil, 0)

	case m.keyMap.Matches(msg, m.keyMap.CloseDocument):
		if err := m.session.Close(m.current().ID); err != nil {
			m.editor.DispatchError(editor.ErrUnknownDocumentId, err)
			return nil
		}
		return m.frame(nil, 0)

	case m.keyMap.Matches(msg, m.keyMap.Copy):
		return m.frame([]editor.Event{editor.CopyEvent{}}, 0)

	case m.keyMap.Matches(msg, m.keyMap.Cut):
		return m.frame([]editor.Event{editor.CutEvent{}}, 0)

	case m.keyMap.Matches(msg, m.keyMap.Paste):
		text, err := m.clipboard.Read()
		if err != nil {
			return m.DispatchError(fmt.Errorf("failed to read clipboard: %w", err), 3*time.Second)
		}
		return m.frame([]editor.Event{editor.PasteEvent{Text: text}}, 0)
	}

	m.current()
	return m.frame(convertBubbleKey(msg, m.editor.Platform()), 0)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	lh := m.editor.Config().LineHeight

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.frame(nil, wheelLines*lh)
	case msg.Button == tea.MouseButtonWheelDown:
		return m.frame(nil, -wheelLines*lh)
	}

	if msg.Button != tea.MouseButtonLeft && !(m.dragging && msg.Action == tea.MouseActionMotion) {
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		m.dragging = true
		if !m.isFocused {
			m.isFocused = true
		}
		return m.frame([]editor.Event{m.pointerEvent(msg, editor.PointerPress)}, 0)
	case tea.MouseActionMotion:
		if !m.dragging {
			return nil
		}
		return m.frame([]editor.Event{m.pointerEvent(msg, editor.PointerDrag)}, 0)
	case tea.MouseActionRelease:
		m.dragging = false
	}
	return nil
}

// pointerEvent maps a terminal cell to a point in layout space.
func (m *Model) pointerEvent(msg tea.MouseMsg, kind editor.PointerKind) editor.PointerEvent {
	lh := m.editor.Config().LineHeight
	row := m.response.Window.FirstLine + msg.Y
	col := msg.X - m.lineNumberWidth(m.current())

	var mods editor.KeyModifiers
	if msg.Shift {
		mods |= editor.ModShift
	}

	return editor.PointerEvent{
		Kind:      kind,
		Pos:       editor.Point{X: float32(max(0, col)), Y: float32(row)*lh + lh/2},
		Modifiers: mods,
	}
}

func (m Model) View() string {
	content := m.viewport.View()

	if !m.showStatusLine {
		return content
	}

	var commandLine string

	if m.message != "" {
		commandLine = m.theme.MessageStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.message)
	}

	if m.err != nil {
		commandLine = m.theme.ErrorStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.err.Error())
	}

	statusLine := m.getStatusLine()

	paddingWidth := m.width - lipgloss.Width(statusLine)
	if paddingWidth > 0 {
		statusLine += m.theme.StatusLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	paddingWidth = m.width - lipgloss.Width(commandLine)
	if paddingWidth > 0 {
		commandLine += m.theme.CommandLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusLine,
		commandLine,
	)
}

func (m *Model) getStatusLine() string {
	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	doc := m.session.Current()
	if doc == nil {
		return ""
	}

	statusLine := m.theme.StatusLineStyle.Render(" " + doc.Name() + " ")
	if doc.Dirty() {
		statusLine += m.theme.DirtyStyle.Render(" + ")
	}

	cursor := m.response.Cursor
	cursorInfo := fmt.Sprintf("%d/%d  %s ",
		cursor.Row+1, cursor.Column+1, m.editor.Platform())
	if docs := len(m.session.Documents()); docs > 1 {
		cursorInfo = fmt.Sprintf("[%d docs] ", docs) + cursorInfo
	}

	width := m.width - (lipgloss.Width(cursorInfo) + lipgloss.Width(statusLine))
	gap := strings.Repeat(" ", max(0, width))

	statusLine += m.theme.StatusLineStyle.Render(
		gap + cursorInfo,
	)

	return statusLine
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	return func() tea.Msg {
		editorChan := m.editor.GetUpdateSignalChan()
		signal := <-editorChan

		switch signal := signal.(type) {
		case editor.MessageSignal:
			_, message := signal.Value()
			return messageMsg(message)

		case editor.ErrorSignal:
			id, err := signal.Value()
			return ErrorMsg{ID: id, Error: err}

		case editor.CopySignal:
			text, cut := signal.Value()
			return CopyMsg{Content: text, Cut: cut}

		case editor.SaveSignal:
			id, path, content := signal.Value()
			msg := SaveMsg{ID: id, Content: content}
			if path != "" {
				msg.Path = &path
			}
			return msg

		case editor.QuitSignal:
			return QuitMsg{}

		case editor.UndoSignal:
			return UndoMsg{}

		case editor.RedoSignal:
			return RedoMsg{}
		}

		return nil
	}
}
