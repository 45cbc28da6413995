// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/equilibra/eqboard/internal/domain"
)

// ListProjectsInput is empty: the token decides which projects are listed.
type ListProjectsInput struct{}

// ListProjectsOutput contains the projects and the one currently open.
type ListProjectsOutput struct {
	Current  domain.EntityID
	Projects []domain.Project
}

// ListProjects lists the projects the caller can open.
type ListProjects struct {
	projects domain.ProjectGateway
	store    domain.BoardStore
}

// NewListProjects creates a new ListProjects use case.
func NewListProjects(projects domain.ProjectGateway, store domain.BoardStore) *ListProjects {
	return &ListProjects{projects: projects, store: store}
}

// Execute lists the projects.
func (uc *ListProjects) Execute(ctx context.Context, _ ListProjectsInput) (*ListProjectsOutput, error) {
	projects, err := uc.projects.ListMyProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return &ListProjectsOutput{Current: uc.store.ProjectID(), Projects: projects}, nil
}

// ListActivityInput contains the parameters for reading the feed.
// Fields are ordered to minimize memory padding.
type ListActivityInput struct {
	Since     time.Time // Zero = no lower bound
	ProjectID domain.EntityID
	Limit     int // <= 0 = everything
}

// ListActivityOutput contains feed entries, newest first.
type ListActivityOutput struct {
	Activities []domain.Activity
	Truncated  bool // More entries matched than Limit allowed
}

// ListActivity reads a project's activity feed.
type ListActivity struct {
	activities domain.ActivityGateway
}

// NewListActivity creates a new ListActivity use case.
func NewListActivity(activities domain.ActivityGateway) *ListActivity {
	return &ListActivity{activities: activities}
}

// Execute reads the feed, keeping entries at or after Since and at most
// Limit of them.
func (uc *ListActivity) Execute(ctx context.Context, in ListActivityInput) (*ListActivityOutput, error) {
	if in.ProjectID.IsZero() {
		return nil, domain.ErrNoProject
	}
	all, err := uc.activities.ListActivities(ctx, in.ProjectID.Canonical())
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	out := &ListActivityOutput{Activities: make([]domain.Activity, 0, len(all))}
	for _, a := range all {
		if !in.Since.IsZero() && a.CreatedAt.Before(in.Since) {
			continue
		}
		if in.Limit > 0 && len(out.Activities) == in.Limit {
			out.Truncated = true
			break
		}
		out.Activities = append(out.Activities, a)
	}
	return out, nil
}
