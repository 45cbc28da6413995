// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/equilibra/eqboard/internal/domain"
)

// ListAlertsInput contains the parameters for listing alerts.
type ListAlertsInput struct {
	ProjectID       domain.EntityID
	IncludeResolved bool
}

// ListAlertsOutput contains the alerts in backend order.
type ListAlertsOutput struct {
	Alerts []domain.Alert
}

// ListAlerts lists a project's alerts.
type ListAlerts struct {
	alerts domain.AlertGateway
}

// NewListAlerts creates a new ListAlerts use case.
func NewListAlerts(alerts domain.AlertGateway) *ListAlerts {
	return &ListAlerts{alerts: alerts}
}

// Execute lists the alerts, hiding resolved ones unless asked.
func (uc *ListAlerts) Execute(ctx context.Context, in ListAlertsInput) (*ListAlertsOutput, error) {
	if in.ProjectID.IsZero() {
		return nil, domain.ErrNoProject
	}
	all, err := uc.alerts.ListAlerts(ctx, in.ProjectID.Canonical())
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	out := make([]domain.Alert, 0, len(all))
	for _, a := range all {
		if a.IsResolved && !in.IncludeResolved {
			continue
		}
		out = append(out, a)
	}
	return &ListAlertsOutput{Alerts: out}, nil
}

// ResolveAlertInput contains the alert to resolve.
type ResolveAlertInput struct {
	AlertID domain.EntityID
}

// ResolveAlertOutput contains the resolved alert.
type ResolveAlertOutput struct {
	Alert domain.Alert
}

// ResolveAlert marks an alert as handled.
type ResolveAlert struct {
	alerts domain.AlertGateway
}

// NewResolveAlert creates a new ResolveAlert use case.
func NewResolveAlert(alerts domain.AlertGateway) *ResolveAlert {
	return &ResolveAlert{alerts: alerts}
}

// Execute resolves the alert.
func (uc *ResolveAlert) Execute(ctx context.Context, in ResolveAlertInput) (*ResolveAlertOutput, error) {
	if in.AlertID.IsZero() {
		return nil, fmt.Errorf("%w: alert id is required", domain.ErrInvalidID)
	}
	alert, err := uc.alerts.ResolveAlert(ctx, in.AlertID.Canonical())
	if err != nil {
		return nil, fmt.Errorf("resolve alert %s: %w", in.AlertID, err)
	}
	return &ResolveAlertOutput{Alert: *alert}, nil
}
