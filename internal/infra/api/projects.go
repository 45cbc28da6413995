package api

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/equilibra/eqboard/internal/domain"
)

// ListMyProjects returns the caller's live projects.
func (c *Client) ListMyProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.Do(ctx, http.MethodGet, "/projects/mine", nil, &projects); err != nil {
		return nil, err
	}
	return slices.DeleteFunc(projects, func(p domain.Project) bool { return p.IsDeleted }), nil
}

// ListActivities returns a project's activity feed, newest first.
func (c *Client) ListActivities(ctx context.Context, projectID domain.EntityID) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/activities", projectID), nil, &activities); err != nil {
		return nil, err
	}
	slices.SortStableFunc(activities, func(a, b domain.Activity) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return activities, nil
}
