// Package usecase contains application use cases.
package usecase

import (
	"context"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// DeleteBucketInput contains the parameters for deleting a bucket.
type DeleteBucketInput struct {
	BucketID domain.EntityID
}

// DeleteBucketOutput is empty on success.
type DeleteBucketOutput struct{}

// DeleteBucket removes a bucket locally, then on the backend. The backend
// refuses buckets that still hold tasks; the refresh that follows the
// refusal brings the bucket back.
type DeleteBucket struct {
	mutator *shared.Mutator
	gateway domain.BoardGateway
}

// NewDeleteBucket creates a new DeleteBucket use case.
func NewDeleteBucket(mutator *shared.Mutator, gateway domain.BoardGateway) *DeleteBucket {
	return &DeleteBucket{mutator: mutator, gateway: gateway}
}

// Execute deletes the bucket.
func (uc *DeleteBucket) Execute(ctx context.Context, in DeleteBucketInput) (*DeleteBucketOutput, error) {
	projectID, err := shared.RequireProject(uc.mutator.Store())
	if err != nil {
		return nil, err
	}
	id := in.BucketID.Canonical()
	err = uc.mutator.Run(ctx, shared.Mutation{
		Kind:    domain.MutationDeleteBucket,
		Subject: "bucket " + id.String(),
		Patch: func(b *domain.Board) error {
			return b.RemoveBucket(id)
		},
		Remote: func(ctx context.Context) error {
			return uc.gateway.DeleteBucket(ctx, projectID, id)
		},
	})
	if err != nil {
		return nil, err
	}
	return &DeleteBucketOutput{}, nil
}
