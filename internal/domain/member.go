package domain

import "fmt"

// MemberRole is a member's role within a project.
type MemberRole string

const (
	RoleOwner      MemberRole = "OWNER"
	RoleManager    MemberRole = "MANAGER"
	RoleProgrammer MemberRole = "PROGRAMMER"
	RoleDesigner   MemberRole = "DESIGNER"
	RoleAnalyst    MemberRole = "ANALYST"
)

// AllMemberRoles returns all valid roles.
func AllMemberRoles() []MemberRole {
	return []MemberRole{RoleOwner, RoleManager, RoleProgrammer, RoleDesigner, RoleAnalyst}
}

// IsValid returns true if the role is a known value.
func (r MemberRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleProgrammer, RoleDesigner, RoleAnalyst:
		return true
	default:
		return false
	}
}

// ProjectMember links a user to a project.
// Fields are ordered to minimize memory padding.
type ProjectMember struct {
	ID          EntityID   `json:"id"`
	UserID      EntityID   `json:"user_id"`
	ProjectID   EntityID   `json:"project_id"`
	Role        MemberRole `json:"role"`
	GHUsername  string     `json:"gh_username,omitempty"`
	KPIScore    float64    `json:"kpi_score"`
	MaxCapacity int        `json:"max_capacity"`
	CurrentLoad int        `json:"current_load"`
}

// Utilisation returns current load as a fraction of capacity.
func (m ProjectMember) Utilisation() float64 {
	if m.MaxCapacity <= 0 {
		return 0
	}
	return float64(m.CurrentLoad) / float64(m.MaxCapacity)
}

// MemberCreate is the request body for adding a member.
type MemberCreate struct {
	UserID EntityID   `json:"user_id"`
	Role   MemberRole `json:"role"`
}

// Validate checks the request before it is sent.
func (in MemberCreate) Validate() error {
	if in.UserID.IsZero() {
		return fmt.Errorf("%w: user id is required", ErrInvalidID)
	}
	if !in.Role.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, in.Role)
	}
	return nil
}
