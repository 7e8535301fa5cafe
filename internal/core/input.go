package core

// Action represents a semantic game action, abstracted from physical key presses.
// Terminals only report key presses, so every action is a press; games that
// need held keys derive them from repeated presses.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up - jump (runners)
	ActionUp             // W, Up - move up (dodger)
	ActionDown           // S, Down - move down (dodger)
	ActionLeft           // A, Left - move left (dodger)
	ActionRight          // D, Right - move right (dodger)
	ActionConfirm        // Enter - start a run / confirm menu selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart the run
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionToggle         // J - toggle the game's boolean preference (double jump)
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionJump:    "Jump",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionToggle:  "Toggle",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsDirection reports whether the action moves the actor in free mode.
func (a Action) IsDirection() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

// InputFrame collects the actions pressed since the previous tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
