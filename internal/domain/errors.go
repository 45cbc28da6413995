package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAlertNotFound      = errors.New("alert not found")
	ErrNoProject          = errors.New("no project selected (use --project or set board.project)")
	ErrProjectNotOpen     = errors.New("board for project is not open")
	ErrInvalidID          = errors.New("invalid identifier")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrInvalidTransition  = errors.New("invalid mutation phase transition")
	ErrInvalidTaskType    = errors.New("invalid task type")
	ErrInvalidWeight      = errors.New("weight must be between 1 and 8")
	ErrInvalidBucketState = errors.New("invalid bucket state")
	ErrInvalidRole        = errors.New("invalid member role")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrEmptyFile          = errors.New("file is empty")
	ErrNoTasksInFile      = errors.New("no tasks found in file")
	ErrConfigExists       = errors.New("config file already exists")
	ErrNotGitRepository   = errors.New("not a git repository (or any of the parent directories)")
	ErrDetachedHead       = errors.New("HEAD is detached; no branch to link")
	ErrRemote             = errors.New("remote request failed")
)
