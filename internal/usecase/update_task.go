// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// UpdateTaskInput contains the parameters for updating a task.
// Fields are ordered to minimize memory padding.
type UpdateTaskInput struct {
	TaskID        domain.EntityID
	Patch         domain.TaskPatch
	BranchFromGit bool // Set the branch link from the checked-out branch
}

// UpdateTaskOutput contains the task as stored by the backend.
type UpdateTaskOutput struct {
	Task domain.Task
}

// UpdateTask applies a partial update: merged locally first, then sent.
type UpdateTask struct {
	mutator *shared.Mutator
	gateway domain.BoardGateway
	git     domain.BranchResolver
}

// NewUpdateTask creates a new UpdateTask use case. git may be nil.
func NewUpdateTask(mutator *shared.Mutator, gateway domain.BoardGateway, git domain.BranchResolver) *UpdateTask {
	return &UpdateTask{mutator: mutator, gateway: gateway, git: git}
}

// Execute updates the task.
func (uc *UpdateTask) Execute(ctx context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	if _, err := shared.RequireProject(uc.mutator.Store()); err != nil {
		return nil, err
	}

	patch := in.Patch
	if in.BranchFromGit {
		branch, err := shared.ResolveBranch(uc.git)
		if err != nil {
			return nil, err
		}
		patch.BranchName = &branch
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.BucketID != nil {
		if err := requireBucket(uc.mutator.Store(), *patch.BucketID); err != nil {
			return nil, err
		}
	}

	id := in.TaskID.Canonical()
	var updated *domain.Task
	err := uc.mutator.Run(ctx, shared.Mutation{
		Kind:    domain.MutationUpdateTask,
		Subject: "task " + id.String(),
		Patch: func(b *domain.Board) error {
			return b.PatchTask(id, patch)
		},
		Remote: func(ctx context.Context) error {
			var rerr error
			updated, rerr = uc.gateway.UpdateTask(ctx, id, patch)
			return rerr
		},
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("update task %s: empty response", id)
	}
	return &UpdateTaskOutput{Task: *updated}, nil
}
