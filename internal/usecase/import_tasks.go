// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// ImportTasksInput contains the drafts file and the alert it answers.
type ImportTasksInput struct {
	AlertID domain.EntityID
	Content string // Markdown with frontmatter blocks, see domain.ParseTaskDrafts
	DryRun  bool   // Parse and validate only
}

// ImportTasksOutput contains the parsed drafts and the backend's count.
type ImportTasksOutput struct {
	Drafts  []domain.TaskDraft
	Created int
}

// ImportTasks commits reviewed drafts through the batch-review endpoint.
type ImportTasks struct {
	mutator *shared.Mutator
	gateway domain.BoardGateway
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(mutator *shared.Mutator, gateway domain.BoardGateway) *ImportTasks {
	return &ImportTasks{mutator: mutator, gateway: gateway}
}

// Execute imports the drafts.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	projectID, err := shared.RequireProject(uc.mutator.Store())
	if err != nil {
		return nil, err
	}
	drafts, err := domain.ParseTaskDrafts(in.Content)
	if err != nil {
		return nil, fmt.Errorf("parse drafts: %w", err)
	}
	req := domain.NewBatchReview(projectID, in.AlertID.Canonical(), drafts)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if in.DryRun {
		return &ImportTasksOutput{Drafts: drafts}, nil
	}

	var result *domain.BatchReviewResult
	err = uc.mutator.Run(ctx, shared.Mutation{
		Kind:    domain.MutationImportTasks,
		Subject: fmt.Sprintf("%d draft(s) for alert %s", len(drafts), req.AlertID),
		Remote: func(ctx context.Context) error {
			var rerr error
			result, rerr = uc.gateway.BatchReview(ctx, req)
			return rerr
		},
		Reconcile: true,
	})
	if err != nil {
		return nil, err
	}
	return &ImportTasksOutput{Drafts: drafts, Created: result.TasksCreated}, nil
}
