package adapter_bubbletea

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	editor "github.com/ionut-t/eta/core"
)

// KeyMap holds the bindings the host handles itself. Everything else is
// translated by convertBubbleKey and handed to the editor.
type KeyMap struct {
	Save          key.Binding
	Reload        key.Binding
	Quit          key.Binding
	Copy          key.Binding
	Cut           key.Binding
	Paste         key.Binding
	NextDocument  key.Binding
	NewDocument   key.Binding
	CloseDocument key.Binding
}

var DefaultKeyMap = KeyMap{
	Save:          key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Reload:        key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
	Quit:          key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	Copy:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
	Cut:           key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
	Paste:         key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	NextDocument:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next document")),
	NewDocument:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new document")),
	CloseDocument: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "close document")),
}

// Matches reports whether msg triggers binding.
func (k KeyMap) Matches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

// ShortHelp lists the bindings shown in a help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Copy, k.Cut, k.Paste, k.NextDocument, k.Quit}
}

// Convert Bubbletea key to editor events. Terminals cannot send the mac
// command key, so chords that use it on mac (undo, redo, select all) are
// read from Ctrl; Alt and Ctrl arrows both mean word motion.
func convertBubbleKey(msg tea.KeyMsg, platform editor.Platform) []editor.Event {
	command := commandModifier(platform)
	word := wordModifier(platform)

	var mods editor.KeyModifiers
	if msg.Alt {
		mods |= word
	}

	if msg.Paste {
		return []editor.Event{editor.PasteEvent{Text: string(msg.Runes)}}
	}

	press := func(code editor.KeyCode, extra editor.KeyModifiers) []editor.Event {
		return []editor.Event{editor.Key(code, mods|extra)}
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			// Alt+letter has no binding and must not type the letter.
			return nil
		}
		return []editor.Event{editor.TextEvent{Text: string(msg.Runes)}}
	case tea.KeySpace:
		if msg.Alt {
			return nil
		}
		return []editor.Event{editor.TextEvent{Text: " "}}

	case tea.KeyEnter:
		return press(editor.KeyEnter, 0)
	case tea.KeyTab:
		return press(editor.KeyTab, 0)
	case tea.KeyShiftTab:
		return press(editor.KeyTab, editor.ModShift)
	case tea.KeyEsc:
		return press(editor.KeyEscape, 0)
	case tea.KeyBackspace:
		return press(editor.KeyBackspace, 0)
	case tea.KeyDelete:
		return press(editor.KeyDelete, 0)

	case tea.KeyCtrlH:
		return press(editor.KeyH, editor.ModCtrl)
	case tea.KeyCtrlK:
		return press(editor.KeyK, editor.ModCtrl)
	case tea.KeyCtrlU:
		return press(editor.KeyU, editor.ModCtrl)
	case tea.KeyCtrlW:
		return press(editor.KeyW, editor.ModCtrl)
	case tea.KeyCtrlZ:
		return press(editor.KeyZ, command)
	case tea.KeyCtrlY:
		return press(editor.KeyY, command)
	case tea.KeyCtrlA:
		return press(editor.KeyA, command)

	case tea.KeyUp:
		return press(editor.KeyUp, 0)
	case tea.KeyDown:
		return press(editor.KeyDown, 0)
	case tea.KeyLeft:
		return press(editor.KeyLeft, 0)
	case tea.KeyRight:
		return press(editor.KeyRight, 0)
	case tea.KeyShiftUp:
		return press(editor.KeyUp, editor.ModShift)
	case tea.KeyShiftDown:
		return press(editor.KeyDown, editor.ModShift)
	case tea.KeyShiftLeft:
		return press(editor.KeyLeft, editor.ModShift)
	case tea.KeyShiftRight:
		return press(editor.KeyRight, editor.ModShift)
	case tea.KeyCtrlLeft:
		return press(editor.KeyLeft, word)
	case tea.KeyCtrlRight:
		return press(editor.KeyRight, word)
	case tea.KeyCtrlShiftLeft:
		return press(editor.KeyLeft, word|editor.ModShift)
	case tea.KeyCtrlShiftRight:
		return press(editor.KeyRight, word|editor.ModShift)

	case tea.KeyHome:
		return press(editor.KeyHome, 0)
	case tea.KeyEnd:
		return press(editor.KeyEnd, 0)
	case tea.KeyShiftHome:
		return press(editor.KeyHome, editor.ModShift)
	case tea.KeyShiftEnd:
		return press(editor.KeyEnd, editor.ModShift)
	case tea.KeyCtrlHome:
		return press(editor.KeyHome, command)
	case tea.KeyCtrlEnd:
		return press(editor.KeyEnd, command)
	case tea.KeyCtrlShiftHome:
		return press(editor.KeyHome, command|editor.ModShift)
	case tea.KeyCtrlShiftEnd:
		return press(editor.KeyEnd, command|editor.ModShift)
	case tea.KeyPgUp:
		return press(editor.KeyPageUp, 0)
	case tea.KeyPgDown:
		return press(editor.KeyPageDown, 0)
	}

	return nil
}

func commandModifier(p editor.Platform) editor.KeyModifiers {
	if p == editor.PlatformMac {
		return editor.ModCmd
	}
	return editor.ModCtrl
}

func wordModifier(p editor.Platform) editor.KeyModifiers {
	if p == editor.PlatformMac {
		return editor.ModAlt
	}
	return editor.ModCtrl
}
