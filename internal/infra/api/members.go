package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/equilibra/eqboard/internal/domain"
)

// ListMembers returns the members of a project.
func (c *Client) ListMembers(ctx context.Context, projectID domain.EntityID) ([]domain.ProjectMember, error) {
	var members []domain.ProjectMember
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/members", projectID), nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember adds a user to a project.
func (c *Client) AddMember(ctx context.Context, projectID domain.EntityID, in domain.MemberCreate) (*domain.ProjectMember, error) {
	var member domain.ProjectMember
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/projects/%s/members", projectID), in, &member); err != nil {
		return nil, err
	}
	return &member, nil
}
