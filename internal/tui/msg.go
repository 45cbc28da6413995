package tui

import "github.com/equilibra/eqboard/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgBoardChanged is sent when the board store reports a change.
type MsgBoardChanged struct{}

func (MsgBoardChanged) sealed() {}

// MsgStoreClosed is sent when the board store stops delivering changes.
type MsgStoreClosed struct{}

func (MsgStoreClosed) sealed() {}

// MsgBoardLoaded is sent when a refresh requested by the TUI completes.
type MsgBoardLoaded struct {
	Err error
}

func (MsgBoardLoaded) sealed() {}

// MsgMutationDone is sent when a board mutation returns. Failures have
// already been reported through the notifier and the board reconciled.
type MsgMutationDone struct {
	Err  error
	Kind domain.MutationKind
}

func (MsgMutationDone) sealed() {}

// MsgTaskCreated is sent when a new task is created.
type MsgTaskCreated struct {
	TaskID domain.EntityID
}

func (MsgTaskCreated) sealed() {}

// MsgNotice carries a notifier message to the status line.
type MsgNotice struct {
	Message string
	Level   domain.NoticeLevel
}

func (MsgNotice) sealed() {}

// MsgClearNotice is sent to clear the current notice. Seq guards against
// clearing a newer notice.
type MsgClearNotice struct {
	Seq int
}

func (MsgClearNotice) sealed() {}

// MsgError is sent when an operation fails before reaching the board.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
