// Package tui provides the terminal Kanban board for eqboard.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal      Mode = iota // Default navigation mode
	ModeInputTitle              // Title input for a new task
	ModeRenameTask              // Title input for the selected task
	ModeInputBucket             // Name input for a new bucket
	ModeConfirm                 // Confirmation dialog mode
	ModeHelp                    // Help overlay mode
	ModeDetail                  // Task detail view mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInputTitle:
		return "input_title"
	case ModeRenameTask:
		return "rename_task"
	case ModeInputBucket:
		return "input_bucket"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	case ModeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeInputTitle, ModeRenameTask, ModeInputBucket:
		return true
	case ModeNormal, ModeConfirm, ModeHelp, ModeDetail:
		return false
	}
	return false
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone         ConfirmAction = iota
	ConfirmDeleteTask                 // Delete the selected task
	ConfirmDeleteBucket               // Delete the focused bucket
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmNone:
		return ""
	case ConfirmDeleteTask:
		return "delete task"
	case ConfirmDeleteBucket:
		return "delete bucket"
	}
	return ""
}
