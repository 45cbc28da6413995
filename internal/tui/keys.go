package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding // Previous bucket
	Right key.Binding // Next bucket

	// Arranging
	MoveUp      key.Binding // Move task up within its bucket
	MoveDown    key.Binding // Move task down within its bucket
	MoveLeft    key.Binding // Move task to the previous bucket
	MoveRight   key.Binding // Move task to the next bucket
	BucketLeft  key.Binding // Move bucket left
	BucketRight key.Binding // Move bucket right

	// Task management
	New        key.Binding // Create task in the focused bucket
	Rename     key.Binding // Rename task
	Delete     key.Binding // Delete task
	WeightUp   key.Binding // Increase weight
	WeightDown key.Binding // Decrease weight
	LinkBranch key.Binding // Link the checked-out git branch

	// Bucket management
	NewBucket    key.Binding
	DeleteBucket key.Binding

	// View
	Detail  key.Binding // Toggle detail view
	Refresh key.Binding // Reload the board
	Help    key.Binding // Show help

	// General
	Quit    key.Binding // Quit application
	Escape  key.Binding // Cancel/back
	Enter   key.Binding // Submit input
	Confirm key.Binding // Confirm action (in confirm mode)
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev bucket"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next bucket"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "move to prev bucket"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "move to next bucket"),
		),
		BucketLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "bucket left"),
		),
		BucketRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "bucket right"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		WeightUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "weight up"),
		),
		WeightDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "weight down"),
		),
		LinkBranch: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "link branch"),
		),
		NewBucket: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new bucket"),
		),
		DeleteBucket: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete bucket"),
		),
		Detail: key.NewBinding(
			key.WithKeys("v", "enter"),
			key.WithHelp("v", "detail"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.New, k.MoveRight, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Detail},                           // Navigation
		{k.MoveUp, k.MoveDown, k.MoveLeft, k.MoveRight},                     // Arranging tasks
		{k.New, k.Rename, k.Delete, k.WeightUp, k.WeightDown, k.LinkBranch}, // Task management
		{k.NewBucket, k.DeleteBucket, k.BucketLeft, k.BucketRight},          // Buckets
		{k.Refresh, k.Help, k.Quit},                                         // View & general
	}
}
