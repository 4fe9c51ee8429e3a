package core

// Action represents a semantic input action, abstracted from physical key presses.
// Hosts map keys and clicks to actions so the game loop never sees raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // Up arrow, k - move the cursor up
	ActionDown                // Down arrow, j - move the cursor down
	ActionLeft                // Left arrow, h - move the cursor left
	ActionRight               // Right arrow, l - move the cursor right
	ActionSelect              // Space, Enter - click the cell under the cursor
	ActionNewGame             // n - start an untimed game
	ActionNewTimedGame        // t - start a timed game
	ActionHelp                // ? - toggle the full help
	ActionScreenshot          // Ctrl+S - dump the screen to a text file
	ActionQuit                // q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionNewGame:
		return "NewGame"
	case ActionNewTimedGame:
		return "NewTimedGame"
	case ActionHelp:
		return "Help"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the cursor movement of a direction action.
func (a Action) Delta() (dx, dy int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	default:
		return 0, 0
	}
}
