package adapter_bubbletea

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	editor "github.com/ionut-t/eta/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	content string
}

func (c *fakeClipboard) Write(text string) error {
	c.content = text
	return nil
}

func (c *fakeClipboard) Read() (string, error) { return c.content, nil }

func newTestModel(t *testing.T, cb *fakeClipboard) Model {
	t.Helper()
	cfg := editor.DefaultConfig()
	cfg.ScrollSmoothing = 0

	m := NewWithClipboard(40, 12, cfg, cb,
		editor.WithPlatform(editor.PlatformLinux),
		editor.WithLogger(zerolog.Nop()),
	)
	m.SetLogger(zerolog.Nop())
	return m
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestModel_NoDocumentUntilOpened(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	require.Empty(t, m.Session().Documents())

	m.Open("a.txt", []byte("alpha"))
	require.Len(t, m.Session().Documents(), 1)
	require.Equal(t, "alpha", m.GetCurrentContent())
}

func TestModel_TypingMarksDocumentDirty(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.OpenScratch("")
	m.Focus()

	m = update(t, m, typeText("hi"), tea.KeyMsg{Type: tea.KeyEnter}, typeText("there"))
	require.Equal(t, "hi\nthere", m.GetCurrentContent())
	require.True(t, m.HasChanges())

	doc := m.Session().Current()
	require.NoError(t, m.MarkSaved(doc.ID, "hi\nthere"))
	require.False(t, m.HasChanges())
}

func TestModel_KeysIgnoredWhileBlurred(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.OpenScratch("abc")

	m = update(t, m, typeText("x"))
	require.Equal(t, "abc", m.GetCurrentContent())

	m = update(t, m, tea.FocusMsg{}, typeText("x"))
	require.Equal(t, "xabc", m.GetCurrentContent())

	m = update(t, m, tea.BlurMsg{}, typeText("y"))
	require.Equal(t, "xabc", m.GetCurrentContent())
	require.False(t, m.IsFocused())
}

func TestModel_SaveEmitsSaveMsg(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.Open("notes.txt", nil)
	m.Focus()

	m = update(t, m, typeText("draft"), tea.KeyMsg{Type: tea.KeyCtrlS})

	msg := m.listenForEditorUpdate()()
	save, ok := msg.(SaveMsg)
	require.True(t, ok, "got %T", msg)
	require.Equal(t, editor.DocID("notes.txt"), save.ID)
	require.NotNil(t, save.Path)
	require.Equal(t, "notes.txt", *save.Path)
	require.Equal(t, "draft", save.Content)
}

func TestModel_EditsDuringSaveStayDirty(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.Open("notes.txt", nil)
	m.Focus()

	m = update(t, m, typeText("a"), tea.KeyMsg{Type: tea.KeyCtrlS})
	save, ok := m.listenForEditorUpdate()().(SaveMsg)
	require.True(t, ok)

	m = update(t, m, typeText("b"))
	require.NoError(t, m.MarkSaved(save.ID, save.Content))
	require.Equal(t, "ab", m.GetCurrentContent())
	require.True(t, m.HasChanges(), "b was typed after the save was requested")
}

func TestModel_SetContentAndReload(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	doc := m.Open("notes.txt", []byte("disk"))
	m.Focus()

	m = update(t, m, typeText("x"))
	require.True(t, m.HasChanges())

	m.SetContent("replaced")
	require.Equal(t, "replaced", m.GetCurrentContent())
	require.False(t, m.HasChanges())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, "replaced", m.GetCurrentContent(), "the replacement is not an undoable edit")

	require.NoError(t, m.Reload(doc.ID, []byte("fresh")))
	require.Equal(t, "fresh", m.GetCurrentContent())
	require.ErrorIs(t, m.Reload("missing", nil), editor.ErrUnknownDocument)
}

func TestModel_ReloadKeyAsksHost(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	doc := m.Open("notes.txt", []byte("disk"))
	m.Focus()

	reload := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, reload)
	require.Equal(t, ReloadMsg{ID: doc.ID, Path: "notes.txt"}, reload())
	require.Equal(t, "disk", m.GetCurrentContent(), "the host does the reading")
}

func TestModel_SaveScratchHasNoPath(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	doc := m.OpenScratch("")
	m.Focus()

	m = update(t, m, typeText("x"), tea.KeyMsg{Type: tea.KeyCtrlS})

	save, ok := m.listenForEditorUpdate()().(SaveMsg)
	require.True(t, ok)
	require.Nil(t, save.Path)
	require.Equal(t, doc.ID, save.ID)

	require.NoError(t, m.SetPath(doc.ID, "kept.txt"))
	require.Equal(t, "kept.txt", m.Session().Current().Name())

	other := m.OpenScratch("")
	require.ErrorIs(t, m.SetPath(other.ID, "kept.txt"), editor.ErrDocumentOpen)
}

func TestModel_CopyAndPaste(t *testing.T) {
	cb := &fakeClipboard{}
	m := newTestModel(t, cb)
	m.OpenScratch("hello")
	m.Focus()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlA}, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, "hello", cb.content)
	require.Equal(t, "hello", m.GetCurrentContent())

	copied, ok := m.listenForEditorUpdate()().(CopyMsg)
	require.True(t, ok)
	require.Equal(t, CopyMsg{Content: "hello", Cut: false}, copied)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnd}, tea.KeyMsg{Type: tea.KeyCtrlV})
	require.Equal(t, "hellohello", m.GetCurrentContent())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlA}, tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Equal(t, "", m.GetCurrentContent())
	require.Equal(t, "hellohello", cb.content)
}

func TestModel_UndoThroughKeys(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.OpenScratch("")
	m.Focus()

	m = update(t, m, typeText("abc"), tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, "", m.GetCurrentContent())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.Equal(t, "abc", m.GetCurrentContent())
}

func TestModel_WheelScrolls(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.OpenScratch(strings.Repeat("line\n", 99) + "line")

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	doc := m.Session().Current()
	require.Equal(t, float32(wheelLines), doc.State.Scroll.Target)
	require.Equal(t, wheelLines, m.response.Window.FirstLine)

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	require.Equal(t, float32(0), doc.State.Scroll.Target)
}

func TestModel_ClickAndDragSelect(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.OpenScratch("hello\nworld")
	gutter := m.lineNumberWidth(m.Session().Current())

	m = update(t, m, tea.MouseMsg{X: gutter + 2, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.True(t, m.IsFocused(), "clicking focuses the editor")
	sel := m.Session().Current().State.Selection
	require.Equal(t, 8, sel.Primary.Index)
	require.True(t, sel.IsEmpty())

	m = update(t, m, tea.MouseMsg{X: gutter + 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	sel = m.Session().Current().State.Selection
	require.Equal(t, 8, sel.Secondary.Index)
	require.Equal(t, 1, sel.Primary.Index)

	m = update(t, m,
		tea.MouseMsg{X: gutter, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease},
		tea.MouseMsg{X: gutter, Y: 0, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion},
	)
	require.Equal(t, 1, m.Session().Current().State.Selection.Primary.Index, "motion after release is ignored")
}

func TestModel_DocumentSwitching(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.Open("a.txt", []byte("alpha"))
	m.Open("b.txt", []byte("beta"))
	m.Focus()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Equal(t, "alpha", m.GetCurrentContent())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Len(t, m.Session().Documents(), 3)
	require.Equal(t, "", m.GetCurrentContent())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.Len(t, m.Session().Documents(), 2)
	require.Equal(t, "beta", m.GetCurrentContent())
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.Open("dir/readme.md", []byte("one\ntwo"))
	m.Focus()

	m = update(t, m, typeText("x"))
	view := m.View()
	assert.Contains(t, view, "readme.md")
	assert.Contains(t, view, "+")
	assert.Contains(t, view, "2")

	m.HideStatusLine(true)
	assert.NotContains(t, m.View(), "readme.md")
}

func TestModel_PlaceholderWhenBlurredAndEmpty(t *testing.T) {
	m := newTestModel(t, &fakeClipboard{})
	m.SetPlaceholder("Start typing...")
	m.OpenScratch("")

	assert.Contains(t, m.View(), "Start typing...")

	m.Focus()
	assert.NotContains(t, m.View(), "Start typing...")
}
