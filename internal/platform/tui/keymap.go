package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-pong/internal/pong"
)

// holdWindow is how long a key press keeps its direction held.
// Terminals report presses and auto-repeats but never releases, so a
// direction counts as held until its repeats stop arriving.
const holdWindow = 150 * time.Millisecond

// KeyMap defines the key bindings for a game session.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Restart, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
			key.WithDisabled(),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// heldKeys tracks when each direction was last pressed.
type heldKeys struct {
	left  time.Time
	right time.Time
}

// pressLeft marks left as held and releases right.
func (h *heldKeys) pressLeft(now time.Time) {
	h.left = now
	h.right = time.Time{}
}

// pressRight marks right as held and releases left.
func (h *heldKeys) pressRight(now time.Time) {
	h.right = now
	h.left = time.Time{}
}

func (h *heldKeys) release() {
	*h = heldKeys{}
}

// input converts the held directions into the simulator's intent record.
func (h heldKeys) input(now time.Time) pong.Input {
	return pong.Input{
		MoveLeft:  isHeld(h.left, now),
		MoveRight: isHeld(h.right, now),
	}
}

func isHeld(pressed, now time.Time) bool {
	if pressed.IsZero() {
		return false
	}
	since := now.Sub(pressed)
	return since >= 0 && since <= holdWindow
}
