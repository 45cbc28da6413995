// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// CreateTaskInput contains the parameters for creating a task.
// Fields are ordered to minimize memory padding.
type CreateTaskInput struct {
	BucketID      domain.EntityID // Optional, zero = backend default bucket
	AssigneeID    domain.EntityID // Optional
	Title         string          // Required
	Description   string
	Type          domain.TaskType // Empty = OTHER
	BranchName    string
	Weight        int  // 0 = minimum weight
	BranchFromGit bool // Fill BranchName from the checked-out branch
}

// CreateTaskOutput contains the created task.
type CreateTaskOutput struct {
	Task domain.Task
}

// CreateTask creates a task. The backend assigns the ID, so there is no
// optimistic patch; the board is refreshed silently afterwards.
type CreateTask struct {
	mutator *shared.Mutator
	gateway domain.BoardGateway
	git     domain.BranchResolver
}

// NewCreateTask creates a new CreateTask use case. git may be nil.
func NewCreateTask(mutator *shared.Mutator, gateway domain.BoardGateway, git domain.BranchResolver) *CreateTask {
	return &CreateTask{mutator: mutator, gateway: gateway, git: git}
}

// Execute creates the task.
func (uc *CreateTask) Execute(ctx context.Context, in CreateTaskInput) (*CreateTaskOutput, error) {
	projectID, err := shared.RequireProject(uc.mutator.Store())
	if err != nil {
		return nil, err
	}

	req := domain.TaskCreate{
		ProjectID:      projectID,
		BucketID:       in.BucketID.Canonical(),
		LeadAssigneeID: in.AssigneeID.Canonical(),
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		BranchName:     in.BranchName,
		Weight:         in.Weight,
	}
	if req.Type == "" {
		req.Type = domain.TaskTypeOther
	}
	if req.Weight == 0 {
		req.Weight = domain.MinWeight
	}
	if in.BranchFromGit {
		if req.BranchName, err = shared.ResolveBranch(uc.git); err != nil {
			return nil, err
		}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireBucket(uc.mutator.Store(), req.BucketID); err != nil {
		return nil, err
	}

	var created *domain.Task
	err = uc.mutator.Run(ctx, shared.Mutation{
		Kind:    domain.MutationCreateTask,
		Subject: fmt.Sprintf("%q", req.Title),
		Remote: func(ctx context.Context) error {
			var rerr error
			created, rerr = uc.gateway.CreateTask(ctx, req)
			return rerr
		},
		Reconcile: true,
	})
	if err != nil {
		return nil, err
	}
	return &CreateTaskOutput{Task: *created}, nil
}

// requireBucket rejects a non-zero bucket the loaded board does not know.
// Boards that were never loaded are not checked.
func requireBucket(store domain.BoardStore, bucketID domain.EntityID) error {
	if bucketID.IsZero() {
		return nil
	}
	snap := store.Snapshot()
	if snap.Loaded && snap.Board.FindBucket(bucketID) < 0 {
		return fmt.Errorf("%w: %s", domain.ErrBucketNotFound, bucketID)
	}
	return nil
}
