// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// CreateBucketInput contains the parameters for creating a bucket.
type CreateBucketInput struct {
	Name  string
	State domain.BucketState // Empty = TODO
}

// CreateBucketOutput contains the created bucket.
type CreateBucketOutput struct {
	Bucket domain.Bucket
}

// CreateBucket creates a bucket and appends the stored version locally.
type CreateBucket struct {
	mutator *shared.Mutator
	gateway domain.BoardGateway
}

// NewCreateBucket creates a new CreateBucket use case.
func NewCreateBucket(mutator *shared.Mutator, gateway domain.BoardGateway) *CreateBucket {
	return &CreateBucket{mutator: mutator, gateway: gateway}
}

// Execute creates the bucket.
func (uc *CreateBucket) Execute(ctx context.Context, in CreateBucketInput) (*CreateBucketOutput, error) {
	projectID, err := shared.RequireProject(uc.mutator.Store())
	if err != nil {
		return nil, err
	}
	req := domain.BucketCreate{ProjectID: projectID, Name: in.Name, State: in.State}
	if req.State == "" {
		req.State = domain.BucketTodo
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Bucket
	err = uc.mutator.Run(ctx, shared.Mutation{
		Kind:    domain.MutationCreateBucket,
		Subject: fmt.Sprintf("%q", req.Name),
		Remote: func(ctx context.Context) error {
			var rerr error
			created, rerr = uc.gateway.CreateBucket(ctx, req)
			return rerr
		},
		Settle: func(b *domain.Board) error {
			if b.FindBucket(created.ID) < 0 {
				b.AppendBucket(*created)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return &CreateBucketOutput{Bucket: *created}, nil
}
