package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyflap/internal/core"
)

// KeyMap defines the key bindings of the play screen.
type KeyMap struct {
	Activate key.Binding
	Back     key.Binding
	NextSkin key.Binding
	PrevSkin key.Binding
	Sound    key.Binding
	Pause    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Back, k.Sound, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Activate, k.Back, k.Pause},
		{k.PrevSkin, k.NextSkin, k.Sound},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Activate: key.NewBinding(
			key.WithKeys(" ", "up", "w", "enter"),
			key.WithHelp("space/click", "flap / start"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "title"),
		),
		NextSkin: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right", "next character"),
		),
		PrevSkin: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left", "prev character"),
		),
		Sound: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sound"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a semantic action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Activate):
		return core.ActionActivate
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.NextSkin):
		return core.ActionNextSkin
	case key.Matches(msg, k.PrevSkin):
		return core.ActionPrevSkin
	case key.Matches(msg, k.Sound):
		return core.ActionSound
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// MouseAction translates a mouse event. Any button press activates.
func MouseAction(msg tea.MouseMsg) core.Action {
	if msg.Action == tea.MouseActionPress && msg.Button != tea.MouseButtonNone &&
		msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
		return core.ActionActivate
	}
	return core.ActionNone
}
