// Package usecase contains application use cases.
package usecase

import (
	"context"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// MoveTaskInput describes a drop: TaskID lands in BucketID immediately
// before BeforeTaskID, or at the end when BeforeTaskID is zero or not in
// that bucket.
type MoveTaskInput struct {
	TaskID       domain.EntityID
	BucketID     domain.EntityID
	BeforeTaskID domain.EntityID
}

// MoveTaskOutput contains the destination bucket's new order.
type MoveTaskOutput struct {
	TaskIDs []domain.EntityID
}

// MoveTask turns a drop into a reorder of the destination bucket.
type MoveTask struct {
	store   domain.BoardStore
	reorder *ReorderTasks
}

// NewMoveTask creates a new MoveTask use case.
func NewMoveTask(store domain.BoardStore, reorder *ReorderTasks) *MoveTask {
	return &MoveTask{store: store, reorder: reorder}
}

// Execute moves the task.
func (uc *MoveTask) Execute(ctx context.Context, in MoveTaskInput) (*MoveTaskOutput, error) {
	if _, err := shared.RequireProject(uc.store); err != nil {
		return nil, err
	}
	snap := uc.store.Snapshot()
	ids, err := snap.Board.PlanDrop(in.TaskID, in.BucketID, in.BeforeTaskID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.reorder.Execute(ctx, ReorderTasksInput{BucketID: in.BucketID, TaskIDs: ids}); err != nil {
		return nil, err
	}
	return &MoveTaskOutput{TaskIDs: ids}, nil
}
