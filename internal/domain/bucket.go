package domain

import "fmt"

// BucketState is the workflow stage a bucket represents.
type BucketState string

const (
	BucketDraft     BucketState = "DRAFT"     // AI-suggested tasks awaiting approval
	BucketPending   BucketState = "PENDING"   // Accepted, not scheduled
	BucketTodo      BucketState = "TODO"      // Scheduled
	BucketOngoing   BucketState = "ONGOING"   // In progress
	BucketOnReview  BucketState = "ON_REVIEW" // Pull request open
	BucketCompleted BucketState = "COMPLETED" // Done
)

// AllBucketStates returns all valid bucket states in workflow order.
func AllBucketStates() []BucketState {
	return []BucketState{
		BucketDraft,
		BucketPending,
		BucketTodo,
		BucketOngoing,
		BucketOnReview,
		BucketCompleted,
	}
}

// IsValid returns true if the state is a known value.
func (s BucketState) IsValid() bool {
	switch s {
	case BucketDraft, BucketPending, BucketTodo, BucketOngoing, BucketOnReview, BucketCompleted:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the state.
func (s BucketState) Display() string {
	switch s {
	case BucketDraft:
		return "Draft"
	case BucketPending:
		return "Pending"
	case BucketTodo:
		return "To Do"
	case BucketOngoing:
		return "Ongoing"
	case BucketOnReview:
		return "On Review"
	case BucketCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Bucket is a Kanban column.
// Fields are ordered to minimize memory padding.
type Bucket struct {
	CreatedAt      Timestamp   `json:"created_at,omitzero"`
	UpdatedAt      Timestamp   `json:"updated_at,omitzero"`
	ID             EntityID    `json:"id"`
	ProjectID      EntityID    `json:"project_id"`
	Name           string      `json:"name,omitempty"`
	State          BucketState `json:"state"`
	OrderIdx       int         `json:"order_idx"`
	IsSystemLocked bool        `json:"is_system_locked,omitempty"`
	IsDeleted      bool        `json:"is_deleted,omitempty"`
}

// Label returns the column heading: the name, or the state when unnamed.
func (b Bucket) Label() string {
	if b.Name != "" {
		return b.Name
	}
	return b.State.Display()
}

// BucketCreate is the request body for creating a bucket.
type BucketCreate struct {
	ProjectID EntityID    `json:"project_id"`
	Name      string      `json:"name"`
	State     BucketState `json:"state"`
}

// Validate checks the request before it is sent.
func (in BucketCreate) Validate() error {
	if in.ProjectID.IsZero() {
		return ErrNoProject
	}
	if in.Name == "" {
		return ErrEmptyName
	}
	if !in.State.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidBucketState, in.State)
	}
	return nil
}
