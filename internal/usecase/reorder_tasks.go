// Package usecase contains application use cases.
package usecase

import (
	"context"
	"slices"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// ReorderTasksInput contains the target bucket and its ordered task IDs.
// Tasks listed from other buckets move into BucketID.
type ReorderTasksInput struct {
	BucketID domain.EntityID
	TaskIDs  []domain.EntityID
}

// ReorderTasksOutput is empty on success.
type ReorderTasksOutput struct{}

// ReorderTasks renumbers a bucket's tasks 0..n-1 in list order.
type ReorderTasks struct {
	mutator *shared.Mutator
	gateway domain.BoardGateway
}

// NewReorderTasks creates a new ReorderTasks use case.
func NewReorderTasks(mutator *shared.Mutator, gateway domain.BoardGateway) *ReorderTasks {
	return &ReorderTasks{mutator: mutator, gateway: gateway}
}

// Execute reorders the bucket.
func (uc *ReorderTasks) Execute(ctx context.Context, in ReorderTasksInput) (*ReorderTasksOutput, error) {
	projectID, err := shared.RequireProject(uc.mutator.Store())
	if err != nil {
		return nil, err
	}
	bucketID := in.BucketID.Canonical()
	ids := make([]domain.EntityID, 0, len(in.TaskIDs))
	for _, id := range in.TaskIDs {
		ids = append(ids, id.Canonical())
	}

	err = uc.mutator.Run(ctx, shared.Mutation{
		Kind:    domain.MutationReorderTasks,
		Subject: "bucket " + bucketID.String(),
		Patch: func(b *domain.Board) error {
			return b.ReorderTasks(bucketID, ids)
		},
		Remote: func(ctx context.Context) error {
			return uc.gateway.ReorderTasks(ctx, projectID, bucketID, slices.Clone(ids))
		},
	})
	if err != nil {
		return nil, err
	}
	return &ReorderTasksOutput{}, nil
}
