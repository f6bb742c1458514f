package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionStart                     // S - start a round when idle or ended
	ActionPause                     // P - pause/resume a running round
	ActionRestart                   // R - reset and start again when not running
	ActionBadges                    // A - show/hide the achievements overlay
	ActionMute                      // M - toggle sound
	ActionHelp                      // ? - toggle full help
	ActionLevelEasy                 // 1 - select easy difficulty
	ActionLevelNormal               // 2 - select normal difficulty
	ActionLevelHard                 // 3 - select hard difficulty
	ActionDismiss                   // Esc/Enter - close overlays
	ActionQuit                      // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBadges:
		return "Badges"
	case ActionMute:
		return "Mute"
	case ActionHelp:
		return "Help"
	case ActionLevelEasy:
		return "Easy"
	case ActionLevelNormal:
		return "Normal"
	case ActionLevelHard:
		return "Hard"
	case ActionDismiss:
		return "Dismiss"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the input that arrived between two simulation ticks.
// Actions are applied first, then clicks in arrival order.
type InputFrame struct {
	Actions map[Action]bool
	Clicks  []Point // Clicks in play-field units
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
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Click records a click at the given play-field position.
func (f *InputFrame) Click(p Point) {
	f.Clicks = append(f.Clicks, p)
}

// Clear resets all actions and clicks for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Clicks = f.Clicks[:0]
}
