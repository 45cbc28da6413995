package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/equilibra/eqboard/internal/domain"
)

// cardHeight is the rendered height of one card, border included.
const cardHeight = 2

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeDetail:
		content = m.viewDetail()
	case ModeNormal, ModeConfirm, ModeInputTitle, ModeRenameTask, ModeInputBucket:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the board with any open dialog.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	}

	b.WriteString(m.viewBoard())
	b.WriteString("\n")

	switch m.mode {
	case ModeNormal, ModeHelp, ModeDetail:
		// No overlay
	case ModeConfirm:
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
	case ModeInputTitle, ModeRenameTask, ModeInputBucket:
		b.WriteString("\n")
		b.WriteString(m.viewInputDialog())
	}

	b.WriteString("\n")
	b.WriteString(m.viewNotice())
	b.WriteString(NewStatusLine(m.width-4, &m.styles).Render(m.GetStatusInfo()))

	return b.String()
}

// viewHeader renders the project line with board counts.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("eqboard")
	if !m.snap.ProjectID.IsZero() {
		title += "  " + m.projectLabel()
	}

	board := &m.snap.Board
	counts := fmt.Sprintf("%d buckets, %d tasks", len(board.Buckets), len(board.Tasks))
	if n := len(board.UnbucketedTasks()); n > 0 {
		counts += fmt.Sprintf(" (%d unsorted)", n)
	}
	if !m.snap.LoadedAt.IsZero() {
		counts += " · " + m.snap.LoadedAt.Format("15:04:05")
	}
	rightText := lipgloss.NewStyle().Foreground(Colors.Muted).Render(counts)

	headerWidth := max(m.width-6, 40)
	spacing := max(headerWidth-lipgloss.Width(title)-lipgloss.Width(rightText), 1)

	return m.styles.Header.Render(title + strings.Repeat(" ", spacing) + rightText)
}

// viewBoard renders the visible bucket columns side by side.
func (m *Model) viewBoard() string {
	if len(m.snap.Board.Buckets) == 0 {
		return m.viewEmptyState()
	}

	first, last := m.visibleColumns()
	columns := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		columns = append(columns, m.renderColumn(i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// visibleColumns returns the range of bucket indexes that fit the window,
// keeping the focused bucket in view.
func (m *Model) visibleColumns() (int, int) {
	n := len(m.snap.Board.Buckets)
	// Column width plus border and padding
	fit := max((m.width-4)/(m.columnWidth+4), 1)
	if fit >= n {
		return 0, n
	}
	first := max(m.col-fit+1, 0)
	return first, first + fit
}

// viewEmptyState renders a hint for a board without buckets.
func (m *Model) viewEmptyState() string {
	var b strings.Builder
	b.WriteString("\n")
	if m.snap.Err != nil && !m.snap.Loaded {
		b.WriteString(m.styles.ErrorMsg.Render("  Failed to load board: " + m.snap.Err.Error()))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Footer.Render("  Press "))
		b.WriteString(m.styles.FooterKey.Render("r"))
		b.WriteString(m.styles.Footer.Render(" to retry"))
		b.WriteString("\n")
		return b.String()
	}
	if m.snap.Loading {
		b.WriteString(m.styles.Footer.Render("  Loading board..."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.styles.Footer.Render("  No buckets yet\n\n"))
	b.WriteString(m.styles.Footer.Render("  Press "))
	b.WriteString(m.styles.FooterKey.Render("N"))
	b.WriteString(m.styles.Footer.Render(" to create the first bucket"))
	b.WriteString("\n")
	return b.String()
}

// maxCards returns how many cards fit in a column.
func (m *Model) maxCards() int {
	if m.height == 0 {
		return 1 << 10
	}
	// Header, title, footer and borders
	return max((m.height-12)/cardHeight, 1)
}

// renderColumn renders bucket i with its cards.
func (m *Model) renderColumn(i int) string {
	bucket := &m.snap.Board.Buckets[i]
	focused := i == m.col
	tasks := m.snap.Board.TasksInBucket(bucket.ID)

	var b strings.Builder
	title := m.styles.ColumnTitleStyle(bucket.State).
		Render(StateIcon(bucket.State) + " " + truncate(bucket.Label(), m.columnWidth-8))
	b.WriteString(title + " " + m.styles.ColumnCount.Render(fmt.Sprintf("%d", len(tasks))))
	b.WriteString("\n\n")

	if len(tasks) == 0 {
		b.WriteString(m.styles.ColumnEmpty.Render("(empty)"))
	}

	// Scroll so the cursor row stays visible.
	limit := m.maxCards()
	start := 0
	if focused && m.row >= limit {
		start = m.row - limit + 1
	}
	end := min(start+limit, len(tasks))
	for j := start; j < end; j++ {
		b.WriteString(m.renderCard(&tasks[j], focused && j == m.row))
		if j < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(tasks) {
		b.WriteString("\n" + m.styles.ColumnCount.Render(fmt.Sprintf("+%d more", len(tasks)-end)))
	}

	style := m.styles.Column
	if focused {
		style = m.styles.ColumnFocused
	}
	return style.Width(m.columnWidth).Render(b.String())
}

// renderCard renders a task as two lines: "#id title" and its metadata.
func (m *Model) renderCard(task *domain.Task, selected bool) string {
	inner := m.columnWidth - 3

	id := "#" + task.ID.String()
	marker := ""
	if task.Stagnant {
		marker = m.styles.Stagnant.Render("! ")
	}
	titleWidth := inner - runewidth.StringWidth(id) - lipgloss.Width(marker) - 1
	title := truncate(task.Title, titleWidth)

	meta := truncate(taskMeta(task), inner)

	titleStyle, metaStyle, cardStyle := m.styles.TaskTitle, m.styles.TaskMeta, m.styles.Card
	if selected {
		titleStyle, metaStyle, cardStyle = m.styles.TaskTitleSelected, m.styles.TaskMetaSelected, m.styles.CardSelected
	}

	line := m.styles.TaskID.Render(id) + " " + marker + titleStyle.Render(title)
	return cardStyle.Render(line + "\n" + metaStyle.Render(meta))
}

// taskMeta formats the secondary card line: type, weight, assignee, branch.
func taskMeta(task *domain.Task) string {
	parts := []string{string(task.Type), fmt.Sprintf("w%d", task.Weight)}
	if task.IsAssigned() {
		parts = append(parts, "@"+task.LeadAssigneeID.String())
	}
	if task.BranchName != "" {
		parts = append(parts, "⎇ "+task.BranchName)
	}
	return strings.Join(parts, " · ")
}

// truncate shortens s to width cells with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// viewNotice renders the latest notifier message, if any.
func (m *Model) viewNotice() string {
	if m.notice.Message == "" {
		return ""
	}
	style := m.styles.SuccessMsg
	if m.notice.Level == domain.NoticeFailure {
		style = m.styles.ErrorMsg
	}
	return style.Render(m.notice.Message) + "\n"
}

// viewConfirmDialog renders the confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	var target string
	switch m.confirmAction {
	case ConfirmNone:
		return ""
	case ConfirmDeleteTask:
		task := m.SelectedTask()
		if task == nil {
			return ""
		}
		target = fmt.Sprintf("task #%s %q", task.ID, task.Title)
	case ConfirmDeleteBucket:
		bucket := m.FocusedBucket()
		if bucket == nil {
			return ""
		}
		target = fmt.Sprintf("bucket %q", bucket.Label())
	}

	title := m.styles.DialogTitle.Foreground(Colors.Error).Render("Delete " + target + "?")
	prompt := m.styles.DialogPrompt.Render("This action cannot be undone.")
	if m.confirmAction == ConfirmDeleteBucket {
		prompt = m.styles.DialogPrompt.Render("Only empty buckets can be deleted.")
	}

	yesBtn := m.styles.HelpKey.Render("[ y ] Confirm")
	noBtn := m.styles.Footer.Render("[ n ] Cancel")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yesBtn, "  ", noBtn)

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", prompt, "", buttons)
	return m.styles.Dialog.BorderForeground(Colors.Error).Render(content)
}

// viewInputDialog renders the text field of the current input mode.
func (m *Model) viewInputDialog() string {
	var heading string
	switch m.mode {
	case ModeInputTitle:
		heading = "◆ New Task"
		if bucket := m.FocusedBucket(); bucket != nil {
			heading += " in " + bucket.Label()
		}
	case ModeRenameTask:
		heading = "◆ Rename Task"
		if task := m.SelectedTask(); task != nil {
			heading += " #" + task.ID.String()
		}
	case ModeInputBucket:
		heading = "◆ New Bucket"
	case ModeNormal, ModeConfirm, ModeHelp, ModeDetail:
		return ""
	}

	hint := m.styles.FooterKey.Render("enter") + m.styles.Footer.Render(" save  ") +
		m.styles.FooterKey.Render("esc") + m.styles.Footer.Render(" cancel")

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.DialogTitle.Render(heading),
		"",
		m.styles.Input.Render(m.input.View()),
		"",
		hint,
	)
	return m.styles.Dialog.Render(content)
}

// viewHelp renders the help overlay.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	m.help.ShowAll = true
	content := m.help.View(m.keys)
	return m.styles.Help.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", content, "",
		m.styles.Footer.Render("press any key to close")))
}

// viewDetail renders the selected task in full.
func (m *Model) viewDetail() string {
	task := m.SelectedTask()
	if task == nil {
		return "No task selected"
	}

	var b strings.Builder
	labelStyle := m.styles.DetailLabel
	valueStyle := m.styles.DetailValue

	b.WriteString(m.styles.DetailTitle.Render(fmt.Sprintf("Task #%s", task.ID)))
	b.WriteString("\n")
	b.WriteString(m.styles.TaskTitleSelected.Render(task.Title))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	if bucket := m.FocusedBucket(); bucket != nil {
		row("Bucket", bucket.Label())
	}
	row("Type", string(task.Type))
	row("Weight", fmt.Sprintf("%d", task.Weight))
	if task.IsAssigned() {
		row("Assignee", task.LeadAssigneeID.String())
	} else {
		row("Assignee", "unassigned")
	}
	row("Branch", task.BranchName)
	row("PR", task.PRURL)
	if !task.CreatedAt.IsZero() {
		row("Created", task.CreatedAt.Format("2006-01-02 15:04"))
	}
	if activity := task.ActivityTime(); !activity.IsZero() {
		row("Activity", activity.Format("2006-01-02 15:04"))
	}
	if task.Stagnant {
		b.WriteString(m.styles.Stagnant.Render("No recent activity"))
		b.WriteString("\n")
	}

	if task.Description != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Description"))
		b.WriteString("\n")
		b.WriteString(m.styles.DetailDesc.Render(task.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("[esc] back  [j/k] prev/next"))

	return m.styles.Dialog.
		Width(max(m.width-4, 20)).
		BorderForeground(Colors.Muted).
		Render(b.String())
}
