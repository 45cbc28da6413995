package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase"
)

// noticeTTL is how long a notice stays in the status line.
const noticeTTL = 5 * time.Second

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	notifier  *channelNotifier
	changes   <-chan struct{}
	err       error

	// Board state
	snap     domain.BoardSnapshot
	selected domain.EntityID // Task the cursor follows across board changes

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model
	input  textinput.Model

	notice MsgNotice

	// Numeric state (smaller types last)
	mode          Mode
	confirmAction ConfirmAction
	width         int
	height        int
	col           int // Focused bucket
	row           int // Focused task within the bucket
	columnWidth   int
	noticeSeq     int
}

// New creates a new TUI Model with the given container. Mutation failures
// reported by the container's use cases are shown in the status line.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.CharLimit = 200

	notifier := newChannelNotifier()
	c.Notifier = notifier

	width := c.AppConfig.TUI.ColumnWidth
	if width <= 0 {
		width = domain.DefaultColumnWidth
	}

	return &Model{
		container:   c,
		notifier:    notifier,
		changes:     c.Store.Changes(),
		snap:        c.Store.Snapshot(),
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		help:        help.New(),
		input:       ti,
		mode:        ModeNormal,
		columnWidth: width,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadBoard(false),
		m.waitForChange(),
		m.waitForNotice(),
	)
}

// waitForChange blocks until the store reports a change.
func (m *Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return MsgStoreClosed{}
		}
		return MsgBoardChanged{}
	}
}

// waitForNotice blocks until a use case reports a notice.
func (m *Model) waitForNotice() tea.Cmd {
	ch := m.notifier.ch
	return func() tea.Msg {
		return <-ch
	}
}

// clearNoticeAfter clears notice seq once it has been shown for noticeTTL.
func clearNoticeAfter(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return MsgClearNotice{Seq: seq}
	})
}

// loadBoard returns a command that refreshes the board.
func (m *Model) loadBoard(silent bool) tea.Cmd {
	uc := m.container.LoadBoardUseCase()
	return func() tea.Msg {
		_, err := uc.Execute(context.Background(), usecase.LoadBoardInput{Silent: silent})
		return MsgBoardLoaded{Err: err}
	}
}

// mutate wraps a use case call whose result only matters as an error.
func mutate(kind domain.MutationKind, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return MsgMutationDone{Kind: kind, Err: fn(context.Background())}
	}
}

// createTask returns a command that creates a task in bucketID.
func (m *Model) createTask(bucketID domain.EntityID, title string) tea.Cmd {
	uc := m.container.CreateTaskUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.CreateTaskInput{BucketID: bucketID, Title: title})
		if err != nil {
			return MsgMutationDone{Kind: domain.MutationCreateTask, Err: err}
		}
		return MsgTaskCreated{TaskID: out.Task.ID}
	}
}

// updateTask returns a command that applies patch to taskID.
func (m *Model) updateTask(taskID domain.EntityID, patch domain.TaskPatch, branchFromGit bool) tea.Cmd {
	uc := m.container.UpdateTaskUseCase()
	return mutate(domain.MutationUpdateTask, func(ctx context.Context) error {
		_, err := uc.Execute(ctx, usecase.UpdateTaskInput{TaskID: taskID, Patch: patch, BranchFromGit: branchFromGit})
		return err
	})
}

// deleteTask returns a command that deletes taskID.
func (m *Model) deleteTask(taskID domain.EntityID) tea.Cmd {
	uc := m.container.DeleteTaskUseCase()
	return mutate(domain.MutationDeleteTask, func(ctx context.Context) error {
		_, err := uc.Execute(ctx, usecase.DeleteTaskInput{TaskID: taskID})
		return err
	})
}

// moveTask returns a command that drops taskID into bucketID before beforeID.
func (m *Model) moveTask(taskID, bucketID, beforeID domain.EntityID) tea.Cmd {
	uc := m.container.MoveTaskUseCase()
	return mutate(domain.MutationReorderTasks, func(ctx context.Context) error {
		_, err := uc.Execute(ctx, usecase.MoveTaskInput{TaskID: taskID, BucketID: bucketID, BeforeTaskID: beforeID})
		return err
	})
}

// createBucket returns a command that creates a bucket.
func (m *Model) createBucket(name string) tea.Cmd {
	uc := m.container.CreateBucketUseCase()
	return mutate(domain.MutationCreateBucket, func(ctx context.Context) error {
		_, err := uc.Execute(ctx, usecase.CreateBucketInput{Name: name})
		return err
	})
}

// reorderBuckets returns a command that sets the bucket order.
func (m *Model) reorderBuckets(ids []domain.EntityID) tea.Cmd {
	uc := m.container.ReorderBucketsUseCase()
	return mutate(domain.MutationReorderBuckets, func(ctx context.Context) error {
		_, err := uc.Execute(ctx, usecase.ReorderBucketsInput{BucketIDs: ids})
		return err
	})
}

// deleteBucket returns a command that deletes bucketID.
func (m *Model) deleteBucket(bucketID domain.EntityID) tea.Cmd {
	uc := m.container.DeleteBucketUseCase()
	return mutate(domain.MutationDeleteBucket, func(ctx context.Context) error {
		_, err := uc.Execute(ctx, usecase.DeleteBucketInput{BucketID: bucketID})
		return err
	})
}

// FocusedBucket returns the focused bucket, or nil if the board is empty.
func (m *Model) FocusedBucket() *domain.Bucket {
	if m.col < 0 || m.col >= len(m.snap.Board.Buckets) {
		return nil
	}
	return &m.snap.Board.Buckets[m.col]
}

// columnTasks returns the tasks of the focused bucket.
func (m *Model) columnTasks() []domain.Task {
	bucket := m.FocusedBucket()
	if bucket == nil {
		return nil
	}
	return m.snap.Board.TasksInBucket(bucket.ID)
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	tasks := m.columnTasks()
	if m.row < 0 || m.row >= len(tasks) {
		return nil
	}
	return &tasks[m.row]
}

// setCursor moves the cursor and remembers the task under it.
func (m *Model) setCursor(col, row int) {
	m.col, m.row = col, row
	m.clampCursor()
	if task := m.SelectedTask(); task != nil {
		m.selected = task.ID
	} else {
		m.selected = ""
	}
}

// clampCursor keeps the cursor inside the board.
func (m *Model) clampCursor() {
	if n := len(m.snap.Board.Buckets); m.col >= n {
		m.col = n - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	if n := len(m.columnTasks()); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// anchorCursor follows the selected task after the board changed, e.g.
// after a move or a refresh that reordered it.
func (m *Model) anchorCursor() {
	if !m.selected.IsZero() {
		board := &m.snap.Board
		if i := board.FindTask(m.selected); i >= 0 {
			task := board.Tasks[i]
			if col := board.FindBucket(task.BucketID); col >= 0 {
				for row, t := range board.TasksInBucket(task.BucketID) {
					if t.ID == task.ID {
						m.col, m.row = col, row
						return
					}
				}
			}
		}
	}
	m.setCursor(m.col, m.row)
}

// setNotice shows a message in the status line and schedules its removal.
func (m *Model) setNotice(level domain.NoticeLevel, message string) tea.Cmd {
	m.noticeSeq++
	m.notice = MsgNotice{Level: level, Message: message}
	return clearNoticeAfter(m.noticeSeq)
}

// isLocalError reports whether err was raised before anything reached the
// backend. Remote failures are already reported by the notifier.
func isLocalError(err error) bool {
	return err != nil && !errors.Is(err, domain.ErrRemote)
}

func (m *Model) projectLabel() string {
	return fmt.Sprintf("Project %s", m.snap.ProjectID)
}
