package core

// Action represents a semantic input, abstracted from physical key presses,
// pointer or touch events.
type Action int

const (
	ActionNone     Action = iota
	ActionActivate        // Space, Up, mouse press - flap while running, start otherwise
	ActionBack            // B, Escape - return to the title screen
	ActionNextSkin        // Right arrow on the title screen
	ActionPrevSkin        // Left arrow on the title screen
	ActionSound           // M - toggle sound effects
	ActionPause           // P - freeze the clock
	ActionHelp            // ? - toggle the full help
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionActivate:
		return "Activate"
	case ActionBack:
		return "Back"
	case ActionNextSkin:
		return "NextSkin"
	case ActionPrevSkin:
		return "PrevSkin"
	case ActionSound:
		return "Sound"
	case ActionPause:
		return "Pause"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two simulation ticks.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone {
		return
	}
	f.bits |= 1 << uint(a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone {
		return false
	}
	return f.bits&(1<<uint(a)) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Merge adds every action of other into this frame.
func (f *InputFrame) Merge(other InputFrame) {
	f.bits |= other.bits
}
