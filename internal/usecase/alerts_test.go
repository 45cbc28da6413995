package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/testutil"
)

func newTestAlerts() *testutil.MockAlertGateway {
	return &testutil.MockAlertGateway{Alerts: []domain.Alert{
		{ID: "1", Title: "open", Severity: domain.SeverityWarning},
		{ID: "2", Title: "done", Severity: domain.SeverityInfo, IsResolved: true},
	}}
}

func TestListAlerts_Execute(t *testing.T) {
	tests := []struct {
		name            string
		includeResolved bool
		want            []string
	}{
		{name: "open only", want: []string{"open"}},
		{name: "all", includeResolved: true, want: []string{"open", "done"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewListAlerts(newTestAlerts()).Execute(context.Background(), ListAlertsInput{
				ProjectID:       "1",
				IncludeResolved: tt.includeResolved,
			})

			require.NoError(t, err)
			var titles []string
			for _, a := range out.Alerts {
				titles = append(titles, a.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestListAlerts_Execute_Errors(t *testing.T) {
	_, err := NewListAlerts(newTestAlerts()).Execute(context.Background(), ListAlertsInput{})
	assert.ErrorIs(t, err, domain.ErrNoProject)

	_, err = NewListAlerts(&testutil.MockAlertGateway{ListErr: assert.AnError}).Execute(context.Background(), ListAlertsInput{ProjectID: "1"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestResolveAlert_Execute(t *testing.T) {
	gw := newTestAlerts()

	out, err := NewResolveAlert(gw).Execute(context.Background(), ResolveAlertInput{AlertID: "01"})

	require.NoError(t, err)
	assert.True(t, out.Alert.IsResolved)
	assert.Equal(t, []domain.EntityID{"1"}, gw.Resolved)
}

func TestResolveAlert_Execute_Errors(t *testing.T) {
	_, err := NewResolveAlert(newTestAlerts()).Execute(context.Background(), ResolveAlertInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = NewResolveAlert(newTestAlerts()).Execute(context.Background(), ResolveAlertInput{AlertID: "9"})
	assert.ErrorIs(t, err, domain.ErrAlertNotFound)
	assert.Contains(t, err.Error(), "resolve alert 9")
}
