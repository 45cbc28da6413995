package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/equilibra/eqboard/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgBoardChanged:
		m.snap = m.container.Store.Snapshot()
		m.anchorCursor()
		return m, m.waitForChange()

	case MsgStoreClosed:
		return m, nil

	case MsgBoardLoaded:
		m.snap = m.container.Store.Snapshot()
		m.anchorCursor()
		if msg.Err != nil {
			m.err = msg.Err
		}
		return m, nil

	case MsgMutationDone:
		if isLocalError(msg.Err) {
			m.err = msg.Err
		}
		return m, nil

	case MsgTaskCreated:
		m.selected = msg.TaskID
		m.snap = m.container.Store.Snapshot()
		m.anchorCursor()
		return m, m.setNotice(domain.NoticeSuccess, fmt.Sprintf("Created task #%s", msg.TaskID))

	case MsgNotice:
		return m, tea.Batch(m.setNotice(msg.Level, msg.Message), m.waitForNotice())

	case MsgClearNotice:
		if msg.Seq == m.noticeSeq {
			m.notice = MsgNotice{}
		}
		return m, nil

	case MsgError:
		m.err = msg.Err
		return m, nil
	}

	if m.mode.IsInputMode() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeInputTitle, ModeRenameTask, ModeInputBucket:
		return m.handleInputMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeDetail:
		return m.handleDetailMode(msg)
	}
	return m, nil
}

// handleNormalMode handles keys on the board.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key press dismisses the last error.
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.setCursor(m.col, m.row-1)
	case key.Matches(msg, m.keys.Down):
		m.setCursor(m.col, m.row+1)
	case key.Matches(msg, m.keys.Left):
		m.setCursor(m.col-1, m.row)
	case key.Matches(msg, m.keys.Right):
		m.setCursor(m.col+1, m.row)

	case key.Matches(msg, m.keys.MoveUp):
		return m, m.moveWithinBucket(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m, m.moveWithinBucket(1)
	case key.Matches(msg, m.keys.MoveLeft):
		return m, m.moveAcrossBuckets(-1)
	case key.Matches(msg, m.keys.MoveRight):
		return m, m.moveAcrossBuckets(1)
	case key.Matches(msg, m.keys.BucketLeft):
		return m, m.shiftBucket(-1)
	case key.Matches(msg, m.keys.BucketRight):
		return m, m.shiftBucket(1)

	case key.Matches(msg, m.keys.New):
		if m.FocusedBucket() == nil {
			return m, nil
		}
		return m, m.startInput(ModeInputTitle, "Task title", "")
	case key.Matches(msg, m.keys.Rename):
		if task := m.SelectedTask(); task != nil {
			return m, m.startInput(ModeRenameTask, "Task title", task.Title)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.SelectedTask() != nil {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteTask
		}
	case key.Matches(msg, m.keys.WeightUp):
		return m, m.adjustWeight(1)
	case key.Matches(msg, m.keys.WeightDown):
		return m, m.adjustWeight(-1)
	case key.Matches(msg, m.keys.LinkBranch):
		if task := m.SelectedTask(); task != nil {
			return m, m.updateTask(task.ID, domain.TaskPatch{}, true)
		}

	case key.Matches(msg, m.keys.NewBucket):
		return m, m.startInput(ModeInputBucket, "Bucket name", "")
	case key.Matches(msg, m.keys.DeleteBucket):
		if m.FocusedBucket() != nil {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDeleteBucket
		}

	case key.Matches(msg, m.keys.Detail):
		if m.SelectedTask() != nil {
			m.mode = ModeDetail
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadBoard(false)
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	}
	return m, nil
}

// startInput switches to an input mode with a fresh text field.
func (m *Model) startInput(mode Mode, placeholder, value string) tea.Cmd {
	m.mode = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

// handleInputMode handles keys while a text field is open.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeInput()
		return m, nil
	case msg.Type == tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.closeInput()
		if value == "" {
			return m, nil
		}
		return m, m.submitInput(mode, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.Reset()
}

// submitInput runs the mutation behind an input mode.
func (m *Model) submitInput(mode Mode, value string) tea.Cmd {
	switch mode {
	case ModeInputTitle:
		if bucket := m.FocusedBucket(); bucket != nil {
			return m.createTask(bucket.ID, value)
		}
	case ModeRenameTask:
		if task := m.SelectedTask(); task != nil && task.Title != value {
			return m.updateTask(task.ID, domain.TaskPatch{Title: &value}, false)
		}
	case ModeInputBucket:
		return m.createBucket(value)
	}
	return nil
}

// handleConfirmMode handles keys in the confirmation dialog.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.confirmAction
	m.mode = ModeNormal
	m.confirmAction = ConfirmNone

	if !key.Matches(msg, m.keys.Confirm) {
		return m, nil
	}

	switch action {
	case ConfirmDeleteTask:
		if task := m.SelectedTask(); task != nil {
			return m, m.deleteTask(task.ID)
		}
	case ConfirmDeleteBucket:
		if bucket := m.FocusedBucket(); bucket != nil {
			return m, m.deleteBucket(bucket.ID)
		}
	case ConfirmNone:
	}
	return m, nil
}

// handleHelpMode handles keys in the help overlay.
func (m *Model) handleHelpMode(_ tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	return m, nil
}

// handleDetailMode handles keys in the task detail view.
func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Detail), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
	case key.Matches(msg, m.keys.Up):
		m.setCursor(m.col, m.row-1)
	case key.Matches(msg, m.keys.Down):
		m.setCursor(m.col, m.row+1)
	}
	return m, nil
}

// moveWithinBucket moves the selected task delta positions inside its bucket.
func (m *Model) moveWithinBucket(delta int) tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	tasks := m.columnTasks()
	var before domain.EntityID
	switch {
	case delta < 0 && m.row > 0:
		before = tasks[m.row-1].ID
	case delta > 0 && m.row < len(tasks)-1:
		if m.row+2 < len(tasks) {
			before = tasks[m.row+2].ID
		}
	default:
		return nil
	}
	return m.moveTask(task.ID, task.BucketID, before)
}

// moveAcrossBuckets drops the selected task into the neighbouring bucket at
// the cursor row. The cursor follows the task.
func (m *Model) moveAcrossBuckets(delta int) tea.Cmd {
	task := m.SelectedTask()
	dest := m.col + delta
	if task == nil || dest < 0 || dest >= len(m.snap.Board.Buckets) {
		return nil
	}
	bucketID := m.snap.Board.Buckets[dest].ID
	var before domain.EntityID
	if tasks := m.snap.Board.TasksInBucket(bucketID); m.row < len(tasks) {
		before = tasks[m.row].ID
	}
	return m.moveTask(task.ID, bucketID, before)
}

// shiftBucket swaps the focused bucket with its neighbour.
func (m *Model) shiftBucket(delta int) tea.Cmd {
	buckets := m.snap.Board.Buckets
	dest := m.col + delta
	if m.FocusedBucket() == nil || dest < 0 || dest >= len(buckets) {
		return nil
	}
	ids := make([]domain.EntityID, len(buckets))
	for i, b := range buckets {
		ids[i] = b.ID
	}
	ids[m.col], ids[dest] = ids[dest], ids[m.col]
	m.col = dest
	return m.reorderBuckets(ids)
}

// adjustWeight changes the selected task's weight within the allowed range.
func (m *Model) adjustWeight(delta int) tea.Cmd {
	task := m.SelectedTask()
	if task == nil {
		return nil
	}
	weight := min(max(task.Weight+delta, domain.MinWeight), domain.MaxWeight)
	if weight == task.Weight {
		return nil
	}
	return m.updateTask(task.ID, domain.TaskPatch{Weight: &weight}, false)
}
