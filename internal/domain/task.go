// Package domain contains core business entities and interfaces.
package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TaskType is the category of work a task represents.
type TaskType string

const (
	TaskTypeCode        TaskType = "CODE"
	TaskTypeRequirement TaskType = "REQUIREMENT"
	TaskTypeDesign      TaskType = "DESIGN"
	TaskTypeOther       TaskType = "OTHER"
	TaskTypeNonCode     TaskType = "NON-CODE"
)

// Weight bounds accepted by the backend.
const (
	MinWeight = 1
	MaxWeight = 8
)

// AllTaskTypes returns all valid task types.
func AllTaskTypes() []TaskType {
	return []TaskType{TaskTypeCode, TaskTypeRequirement, TaskTypeDesign, TaskTypeOther, TaskTypeNonCode}
}

// IsValid returns true if the type is a known value.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeCode, TaskTypeRequirement, TaskTypeDesign, TaskTypeOther, TaskTypeNonCode:
		return true
	default:
		return false
	}
}

// Task is a card on the board.
// Fields are ordered to minimize memory padding.
type Task struct {
	LastActivityAt Timestamp `json:"last_activity_at,omitzero"`
	CreatedAt      Timestamp `json:"created_at,omitzero"`
	UpdatedAt      Timestamp `json:"updated_at,omitzero"`
	ID             EntityID  `json:"id"`
	ProjectID      EntityID  `json:"project_id"`
	BucketID       EntityID  `json:"bucket_id"`        // Zero before triage
	LeadAssigneeID EntityID  `json:"lead_assignee_id"` // Zero = unassigned
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Type           TaskType  `json:"type"`
	BranchName     string    `json:"branch_name,omitempty"`
	PRURL          string    `json:"pr_url,omitempty"`
	OrderIdx       int       `json:"order_idx"` // Meaningful only within BucketID
	Weight         int       `json:"weight"`
	IsDeleted      bool      `json:"is_deleted,omitempty"`
	Stagnant       bool      `json:"-"` // Derived on the client, see Board.MarkStagnant
}

// ActivityTime returns the most recent known activity on the task.
func (t Task) ActivityTime() time.Time {
	switch {
	case !t.LastActivityAt.IsZero():
		return t.LastActivityAt.Time
	case !t.UpdatedAt.IsZero():
		return t.UpdatedAt.Time
	default:
		return t.CreatedAt.Time
	}
}

// IsAssigned returns true if the task has a lead assignee.
func (t Task) IsAssigned() bool {
	return !t.LeadAssigneeID.IsZero()
}

// TaskCreate is the request body for creating a task.
// Fields are ordered to minimize memory padding.
type TaskCreate struct {
	ProjectID      EntityID `json:"project_id"`
	BucketID       EntityID `json:"bucket_id,omitzero"` // Zero = backend default bucket
	LeadAssigneeID EntityID `json:"lead_assignee_id,omitzero"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Type           TaskType `json:"type"`
	BranchName     string   `json:"branch_name,omitempty"`
	Weight         int      `json:"weight"`
}

// Validate checks the request before it is sent.
func (in TaskCreate) Validate() error {
	if in.ProjectID.IsZero() {
		return ErrNoProject
	}
	if in.Title == "" {
		return ErrEmptyTitle
	}
	return validateTypeAndWeight(in.Type, in.Weight)
}

// TaskPatch is a partial update. Nil fields are left untouched; a non-nil
// pointer to a zero EntityID clears the reference (sent as null).
type TaskPatch struct {
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Type           *TaskType `json:"type,omitempty"`
	Weight         *int      `json:"weight,omitempty"`
	BucketID       *EntityID `json:"bucket_id,omitempty"`
	LeadAssigneeID *EntityID `json:"lead_assignee_id,omitempty"`
	BranchName     *string   `json:"branch_name,omitempty"`
	OrderIdx       *int      `json:"order_idx,omitempty"`
}

// UnmarshalJSON keeps an explicit null for bucket_id or lead_assignee_id as
// a pointer to the zero ID, so a clear survives the trip through the wire.
func (p *TaskPatch) UnmarshalJSON(data []byte) error {
	type plain TaskPatch
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	clearable := map[string]**EntityID{
		"bucket_id":        &v.BucketID,
		"lead_assignee_id": &v.LeadAssigneeID,
	}
	for key, field := range clearable {
		if msg, ok := raw[key]; ok && *field == nil && strings.TrimSpace(string(msg)) == "null" {
			*field = new(EntityID)
		}
	}
	*p = TaskPatch(v)
	return nil
}

// IsEmpty returns true if the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Type == nil && p.Weight == nil &&
		p.BucketID == nil && p.LeadAssigneeID == nil && p.BranchName == nil && p.OrderIdx == nil
}

// Validate checks the supplied fields.
func (p TaskPatch) Validate() error {
	if p.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if p.Title != nil && *p.Title == "" {
		return ErrEmptyTitle
	}
	if p.Type != nil && !p.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskType, *p.Type)
	}
	if p.Weight != nil && (*p.Weight < MinWeight || *p.Weight > MaxWeight) {
		return fmt.Errorf("%w: %d", ErrInvalidWeight, *p.Weight)
	}
	return nil
}

// ApplyTo merges the supplied fields into t.
func (p TaskPatch) ApplyTo(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Weight != nil {
		t.Weight = *p.Weight
	}
	if p.BucketID != nil {
		t.BucketID = p.BucketID.Canonical()
	}
	if p.LeadAssigneeID != nil {
		t.LeadAssigneeID = p.LeadAssigneeID.Canonical()
	}
	if p.BranchName != nil {
		t.BranchName = *p.BranchName
	}
	if p.OrderIdx != nil {
		t.OrderIdx = *p.OrderIdx
	}
}

func validateTypeAndWeight(typ TaskType, weight int) error {
	if !typ.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskType, typ)
	}
	if weight < MinWeight || weight > MaxWeight {
		return fmt.Errorf("%w: %d", ErrInvalidWeight, weight)
	}
	return nil
}
