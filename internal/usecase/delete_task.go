// Package usecase contains application use cases.
package usecase

import (
	"context"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID domain.EntityID
}

// DeleteTaskOutput is empty on success.
type DeleteTaskOutput struct{}

// DeleteTask removes a task locally, then soft-deletes it on the backend.
type DeleteTask struct {
	mutator *shared.Mutator
	gateway domain.BoardGateway
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(mutator *shared.Mutator, gateway domain.BoardGateway) *DeleteTask {
	return &DeleteTask{mutator: mutator, gateway: gateway}
}

// Execute deletes the task.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if _, err := shared.RequireProject(uc.mutator.Store()); err != nil {
		return nil, err
	}
	id := in.TaskID.Canonical()
	err := uc.mutator.Run(ctx, shared.Mutation{
		Kind:    domain.MutationDeleteTask,
		Subject: "task " + id.String(),
		Patch: func(b *domain.Board) error {
			return b.RemoveTask(id)
		},
		Remote: func(ctx context.Context) error {
			return uc.gateway.DeleteTask(ctx, id)
		},
	})
	if err != nil {
		return nil, err
	}
	return &DeleteTaskOutput{}, nil
}
