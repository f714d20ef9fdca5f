package core

import (
	"fmt"
	"runtime"
	"strings"
)

// --- Platform ---

// Platform is the host operating system. It decides which modifier plays the
// word-motion role and which one acts as the command key.
type Platform int

const (
	PlatformUnknown Platform = iota
	PlatformMac
	PlatformWindows
	PlatformLinux
)

// DetectPlatform maps runtime.GOOS to a Platform.
func DetectPlatform() Platform {
	p, _ := ParsePlatform(runtime.GOOS)
	return p
}

// ParsePlatform accepts a GOOS value or one of "mac", "windows", "linux".
// An empty name and "auto" resolve to the running platform.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mac", "macos", "darwin", "ios":
		return PlatformMac, nil
	case "windows", "win":
		return PlatformWindows, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "android":
		return PlatformLinux, nil
	case "", "auto":
		return DetectPlatform(), nil
	default:
		return PlatformUnknown, fmt.Errorf("unknown platform %q", name)
	}
}

func (p Platform) String() string {
	switch p {
	case PlatformMac:
		return "mac"
	case PlatformWindows:
		return "windows"
	case PlatformLinux:
		return "linux"
	default:
		return "unknown"
	}
}

// --- KeyCode, KeyModifiers, Key ---

// KeyCode represents non-character keys and the letter keys used by chords
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Editing keys
	KeyDelete
	KeyInsert

	// Letter keys that take part in chords (Ctrl+H, Cmd+Z, ...)
	KeyA
	KeyH
	KeyK
	KeyU
	KeyW
	KeyY
	KeyZ
)

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
	ModCmd // The mac command key. Never set on other platforms.
)

func (m KeyModifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m KeyModifiers) Alt() bool   { return m&ModAlt != 0 }
func (m KeyModifiers) Shift() bool { return m&ModShift != 0 }
func (m KeyModifiers) Cmd() bool   { return m&ModCmd != 0 }

// IsNone reports whether no modifier at all is held.
func (m KeyModifiers) IsNone() bool { return m == ModNone }

// Command reports whether the platform command modifier is held:
// Cmd on mac, Ctrl everywhere else.
func (m KeyModifiers) Command(p Platform) bool {
	if p == PlatformMac {
		return m.Cmd()
	}
	return m.Ctrl()
}

// WordModifier reports whether the platform word-motion modifier is held:
// Alt on mac, Ctrl everywhere else.
func (m KeyModifiers) WordModifier(p Platform) bool {
	if p == PlatformMac {
		return m.Alt()
	}
	return m.Ctrl()
}

// KeyEvent represents a keyboard input event
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

var keyNames = map[KeyCode]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyA:         "A",
	KeyH:         "H",
	KeyK:         "K",
	KeyU:         "U",
	KeyW:         "W",
	KeyY:         "Y",
	KeyZ:         "Z",
	KeyUnknown:   "Unknown",
}

// String returns a string representation of a Key, modifiers first
func (k KeyEvent) String() string {
	var parts []string

	if k.Modifiers.Cmd() {
		parts = append(parts, "Cmd")
	}
	if k.Modifiers.Ctrl() {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers.Alt() {
		parts = append(parts, "Alt")
	}
	if k.Modifiers.Shift() {
		parts = append(parts, "Shift")
	}

	if k.Rune != 0 && k.Key == KeyUnknown {
		parts = append(parts, string(k.Rune))
	} else if name, ok := keyNames[k.Key]; ok {
		parts = append(parts, name)
	} else {
		parts = append(parts, fmt.Sprintf("SpecialKey(%d)", k.Key))
	}

	return strings.Join(parts, "+")
}
