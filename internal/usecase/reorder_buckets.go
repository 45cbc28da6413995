// Package usecase contains application use cases.
package usecase

import (
	"context"
	"slices"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// ReorderBucketsInput contains the ordered bucket IDs.
type ReorderBucketsInput struct {
	BucketIDs []domain.EntityID
}

// ReorderBucketsOutput is empty on success.
type ReorderBucketsOutput struct{}

// ReorderBuckets renumbers the project's buckets 0..n-1 in list order.
type ReorderBuckets struct {
	mutator *shared.Mutator
	gateway domain.BoardGateway
}

// NewReorderBuckets creates a new ReorderBuckets use case.
func NewReorderBuckets(mutator *shared.Mutator, gateway domain.BoardGateway) *ReorderBuckets {
	return &ReorderBuckets{mutator: mutator, gateway: gateway}
}

// Execute reorders the buckets.
func (uc *ReorderBuckets) Execute(ctx context.Context, in ReorderBucketsInput) (*ReorderBucketsOutput, error) {
	projectID, err := shared.RequireProject(uc.mutator.Store())
	if err != nil {
		return nil, err
	}
	ids := make([]domain.EntityID, 0, len(in.BucketIDs))
	for _, id := range in.BucketIDs {
		ids = append(ids, id.Canonical())
	}

	err = uc.mutator.Run(ctx, shared.Mutation{
		Kind:    domain.MutationReorderBuckets,
		Subject: "project " + projectID.String(),
		Patch: func(b *domain.Board) error {
			return b.ReorderBuckets(ids)
		},
		Remote: func(ctx context.Context) error {
			return uc.gateway.ReorderBuckets(ctx, projectID, slices.Clone(ids))
		},
	})
	if err != nil {
		return nil, err
	}
	return &ReorderBucketsOutput{}, nil
}
