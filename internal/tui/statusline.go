package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Sync     string // Right-aligned sync state (e.g. "2 pending")
	KeyHints []KeyHint
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders a unified status line at the bottom of the screen.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	keyStyle := s.styles.FooterKey

	hints := make([]string, 0, len(info.KeyHints))
	for _, h := range info.KeyHints {
		hints = append(hints, keyStyle.Render(h.Key)+" "+h.Desc)
	}
	content := strings.Join(hints, "  ")

	rightContent := s.styles.Pending.Render(info.Sync)
	rightLen := lipgloss.Width(rightContent)
	contentLen := lipgloss.Width(content)

	contentWidth := s.width - 2
	maxContentWidth := contentWidth - rightLen - 2
	if contentLen > maxContentWidth {
		if maxContentWidth <= 3 {
			content = "..."
		} else {
			truncateStyle := lipgloss.NewStyle().MaxWidth(maxContentWidth - 3)
			content = truncateStyle.Render(content) + "..."
		}
		contentLen = lipgloss.Width(content)
	}

	spacing := max(contentWidth-contentLen-rightLen, 1)
	return s.styles.Footer.Render(content + strings.Repeat(" ", spacing) + rightContent)
}

// GetStatusInfo returns status line info for the TUI model.
func (m *Model) GetStatusInfo() StatusLineInfo {
	var info StatusLineInfo
	switch n := m.snap.Pending(); {
	case m.snap.Loading:
		info.Sync = "loading..."
	case n > 0:
		info.Sync = fmt.Sprintf("%d pending", n)
	}

	switch m.mode {
	case ModeNormal:
		info.KeyHints = []KeyHint{
			{Key: "hjkl", Desc: "nav"},
			{Key: "HJKL", Desc: "move"},
			{Key: "n", Desc: "new"},
			{Key: "e", Desc: "rename"},
			{Key: "d", Desc: "delete"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeInputTitle, ModeRenameTask, ModeInputBucket:
		info.KeyHints = []KeyHint{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeConfirm:
		info.KeyHints = []KeyHint{
			{Key: "y", Desc: "confirm"},
			{Key: "any", Desc: "cancel"},
		}
	case ModeDetail:
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "prev/next"},
			{Key: "esc", Desc: "back"},
		}
	case ModeHelp:
		// Help overlay lists every key
		info.KeyHints = nil
	}
	return info
}
