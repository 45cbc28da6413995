package domain

import (
	"fmt"
	"time"
)

// MutationKind names an intent operation on the board.
type MutationKind string

const (
	MutationCreateTask     MutationKind = "create_task"
	MutationUpdateTask     MutationKind = "update_task"
	MutationDeleteTask     MutationKind = "delete_task"
	MutationReorderTasks   MutationKind = "reorder_tasks"
	MutationCreateBucket   MutationKind = "create_bucket"
	MutationReorderBuckets MutationKind = "reorder_buckets"
	MutationDeleteBucket   MutationKind = "delete_bucket"
	MutationImportTasks    MutationKind = "import_tasks"
)

// Display returns a human-readable representation of the kind.
func (k MutationKind) Display() string {
	switch k {
	case MutationCreateTask:
		return "create task"
	case MutationUpdateTask:
		return "update task"
	case MutationDeleteTask:
		return "delete task"
	case MutationReorderTasks:
		return "reorder tasks"
	case MutationCreateBucket:
		return "create bucket"
	case MutationReorderBuckets:
		return "reorder buckets"
	case MutationDeleteBucket:
		return "delete bucket"
	case MutationImportTasks:
		return "import tasks"
	default:
		return string(k)
	}
}

// MutationPhase is the lifecycle position of one mutation call.
type MutationPhase string

const (
	PhaseIdle              MutationPhase = "idle"
	PhaseOptimisticApplied MutationPhase = "optimistic_applied" // Local patch visible
	PhaseRemotePending     MutationPhase = "remote_pending"     // Request on the wire
	PhaseRemoteSucceeded   MutationPhase = "remote_succeeded"
	PhaseRemoteFailed      MutationPhase = "remote_failed"
	PhaseSilentRefresh     MutationPhase = "silent_refresh" // Reconciling with the backend
)

// phaseTransitions defines the allowed phase transitions.
// Flow: idle → optimistic_applied → remote_pending → remote_succeeded → idle
//
//	                                        ↓                ↓
//	                                  remote_failed → silent_refresh → idle
var phaseTransitions = map[MutationPhase][]MutationPhase{
	PhaseIdle:              {PhaseOptimisticApplied},
	PhaseOptimisticApplied: {PhaseRemotePending},
	PhaseRemotePending:     {PhaseRemoteSucceeded, PhaseRemoteFailed},
	PhaseRemoteSucceeded:   {PhaseIdle, PhaseSilentRefresh},
	PhaseRemoteFailed:      {PhaseSilentRefresh},
	PhaseSilentRefresh:     {PhaseIdle},
}

// CanTransitionTo returns true if the phase can move to target.
func (p MutationPhase) CanTransitionTo(target MutationPhase) bool {
	for _, t := range phaseTransitions[p] {
		if t == target {
			return true
		}
	}
	return false
}

// IsSettled returns true when no remote work is outstanding.
func (p MutationPhase) IsSettled() bool {
	return p == PhaseIdle
}

// MutationState tracks one in-flight mutation.
// Fields are ordered to minimize memory padding.
type MutationState struct {
	Started time.Time
	Err     error // Remote failure, set on remote_failed
	ID      string
	Kind    MutationKind
	Phase   MutationPhase
}

// NewMutationState returns a state in the idle phase.
func NewMutationState(id string, kind MutationKind, started time.Time) *MutationState {
	return &MutationState{
		ID:      id,
		Kind:    kind,
		Phase:   PhaseIdle,
		Started: started,
	}
}

// Advance moves the mutation to the next phase.
func (m *MutationState) Advance(to MutationPhase) error {
	if !m.Phase.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, m.Phase, to)
	}
	m.Phase = to
	return nil
}

// Failed reports whether the remote call was rejected.
func (m MutationState) Failed() bool {
	return m.Err != nil
}
