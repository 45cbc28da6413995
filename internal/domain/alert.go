package domain

// AlertType classifies an alert raised by the backend's analysis jobs.
type AlertType string

const (
	AlertStagnation    AlertType = "STAGNATION"
	AlertReallocation  AlertType = "REALLOCATION"
	AlertDraftApproval AlertType = "DRAFT_APPROVAL"
)

// AlertSeverity is how urgently an alert should be surfaced.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityInfo     AlertSeverity = "info"
)

// Rank orders severities, most urgent first.
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Alert is a notice about the project, e.g. a stagnating task.
// Fields are ordered to minimize memory padding.
type Alert struct {
	CreatedAt        Timestamp     `json:"created_at,omitzero"`
	ID               EntityID      `json:"id"`
	UserID           EntityID      `json:"user_id"`
	ProjectID        EntityID      `json:"project_id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Type             AlertType     `json:"type"`
	Severity         AlertSeverity `json:"severity"`
	SuggestedActions []string      `json:"suggested_actions,omitempty"`
	IsResolved       bool          `json:"is_resolved"`
}
