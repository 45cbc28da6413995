package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/equilibra/eqboard/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color
	DescSelected  lipgloss.Color

	// Bucket state colors
	Draft     lipgloss.Color
	Pending   lipgloss.Color
	Todo      lipgloss.Color
	Ongoing   lipgloss.Color
	OnReview  lipgloss.Color
	Completed lipgloss.Color

	// Column border
	ColumnLine lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray
	DescSelected:  lipgloss.Color("#B2BEC3"), // Light gray

	Draft:     lipgloss.Color("#B2BEC3"), // Light gray
	Pending:   lipgloss.Color("#81ECEC"), // Cyan
	Todo:      lipgloss.Color("#74B9FF"), // Light blue
	Ongoing:   lipgloss.Color("#FDCB6E"), // Yellow
	OnReview:  lipgloss.Color("#A29BFE"), // Lavender
	Completed: lipgloss.Color("#00B894"), // Green

	ColumnLine: lipgloss.Color("#636E72"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	Pending    lipgloss.Style

	// Columns
	Column        lipgloss.Style
	ColumnFocused lipgloss.Style
	ColumnTitle   lipgloss.Style
	ColumnCount   lipgloss.Style
	ColumnEmpty   lipgloss.Style

	// Task cards
	Card              lipgloss.Style
	CardSelected      lipgloss.Style
	TaskID            lipgloss.Style
	TaskTitle         lipgloss.Style
	TaskTitleSelected lipgloss.Style
	TaskMeta          lipgloss.Style
	TaskMetaSelected  lipgloss.Style
	Stagnant          lipgloss.Style

	// Help
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Input
	Input       lipgloss.Style
	InputPrompt lipgloss.Style

	// Notices
	ErrorMsg   lipgloss.Style
	SuccessMsg lipgloss.Style

	// Detail view
	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style
	DetailDesc  lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		Pending: lipgloss.NewStyle().
			Foreground(Colors.Warning),

		Column: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.ColumnLine),

		ColumnFocused: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		ColumnTitle: lipgloss.NewStyle().
			Bold(true),

		ColumnCount: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		ColumnEmpty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Card: lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.HiddenBorder(), false, false, false, true),

		CardSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Colors.TitleSelected),

		TaskID: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskTitleSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Colors.DescNormal),

		TaskMetaSelected: lipgloss.NewStyle().
			Foreground(Colors.DescSelected),

		Stagnant: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			Bold(true),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle(),

		Input: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		SuccessMsg: lipgloss.NewStyle().
			Foreground(Colors.Success),

		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		DetailLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(12),

		DetailValue: lipgloss.NewStyle(),

		DetailDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),
	}
}

// StateColor returns the accent color for a bucket state.
func StateColor(state domain.BucketState) lipgloss.Color {
	switch state {
	case domain.BucketDraft:
		return Colors.Draft
	case domain.BucketPending:
		return Colors.Pending
	case domain.BucketTodo:
		return Colors.Todo
	case domain.BucketOngoing:
		return Colors.Ongoing
	case domain.BucketOnReview:
		return Colors.OnReview
	case domain.BucketCompleted:
		return Colors.Completed
	default:
		return Colors.Muted
	}
}

// StateIcon returns an icon for a bucket state.
func StateIcon(state domain.BucketState) string {
	switch state {
	case domain.BucketDraft:
		return "◌"
	case domain.BucketPending:
		return "○"
	case domain.BucketTodo:
		return "◎"
	case domain.BucketOngoing:
		return "●"
	case domain.BucketOnReview:
		return "◉"
	case domain.BucketCompleted:
		return "✓"
	default:
		return "?"
	}
}

// ColumnTitleStyle returns the title style for a bucket column.
func (s Styles) ColumnTitleStyle(state domain.BucketState) lipgloss.Style {
	return s.ColumnTitle.Foreground(StateColor(state))
}
