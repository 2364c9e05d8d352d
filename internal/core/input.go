package core

// Action is a semantic frontend command, abstracted from physical keys.
// Movement and firing are not actions: they are held intents carried in Input.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - back to the previous screen
	ActionRestart        // N on the game-over screen
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Esc during a run
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Input is the intent vector the simulation reads each tick.
// Forward is -Z on the ground plane, Right is +X.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Reload   bool
	Sprint   bool
	Fire     bool

	// Aim is the world point the player is looking at.
	Aim Vec2
}

// MoveDir returns the normalized movement direction for the held keys, or
// the zero vector when nothing is held or opposite keys cancel out.
func (in Input) MoveDir() Vec2 {
	var d Vec2
	if in.Forward {
		d.Z--
	}
	if in.Backward {
		d.Z++
	}
	if in.Right {
		d.X++
	}
	if in.Left {
		d.X--
	}
	return d.Normalize()
}
