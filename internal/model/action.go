// Package model defines the core domain models used throughout the application.
package model

// Action names the destination a capture is routed to.
type Action string

// The four routing actions. Every Classification carries exactly one.
const (
	ActionSaveLink        Action = "save_link"
	ActionNewIdea         Action = "new_idea"
	ActionAppendToProject Action = "append_to_project"
	ActionInbox           Action = "inbox"
)

// Actions lists every valid action in prompt order.
var Actions = []Action{ActionSaveLink, ActionNewIdea, ActionAppendToProject, ActionInbox}

// Valid reports whether a is one of the four routing actions.
func (a Action) Valid() bool {
	switch a {
	case ActionSaveLink, ActionNewIdea, ActionAppendToProject, ActionInbox:
		return true
	default:
		return false
	}
}

func (a Action) String() string {
	return string(a)
}
