package remote

import "fmt"

// Actions a remote client may request.
const (
	ActionNext  = "next"
	ActionPrev  = "prev"
	ActionInc   = "inc"
	ActionWake  = "wake"
	ActionSleep = "sleep"
)

// Command is one remote menu action, received as JSON.
type Command struct {
	// Action is one of the Action constants.
	Action string `json:"action"`
	// Steps is the adjustment for ActionInc; ignored otherwise. Zero is
	// treated as a single step so bare {"action":"inc"} does something.
	Steps float64 `json:"steps,omitempty"`
}

// Validate checks that the command is well-formed.
func (c Command) Validate() error {
	switch c.Action {
	case ActionNext, ActionPrev, ActionWake, ActionSleep:
		return nil
	case ActionInc:
		return nil
	case "":
		return fmt.Errorf("missing action")
	default:
		return fmt.Errorf("unknown action %q", c.Action)
	}
}

// StepCount returns the effective step count for ActionInc commands.
func (c Command) StepCount() float64 {
	if c.Steps == 0 {
		return 1
	}
	return c.Steps
}
