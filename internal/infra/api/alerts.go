package api

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/equilibra/eqboard/internal/domain"
)

// ListAlerts returns a project's alerts, most severe first, newest first
// within a severity.
func (c *Client) ListAlerts(ctx context.Context, projectID domain.EntityID) ([]domain.Alert, error) {
	var alerts []domain.Alert
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/alerts", projectID), nil, &alerts); err != nil {
		return nil, err
	}
	slices.SortStableFunc(alerts, func(a, b domain.Alert) int {
		if d := cmp.Compare(a.Severity.Rank(), b.Severity.Rank()); d != 0 {
			return d
		}
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	return alerts, nil
}

// ResolveAlert marks an alert as handled.
func (c *Client) ResolveAlert(ctx context.Context, id domain.EntityID) (*domain.Alert, error) {
	var alert domain.Alert
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/alerts/%s/resolve", id), nil, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}
