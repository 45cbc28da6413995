// Package shared holds helpers used by several use cases.
package shared

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/equilibra/eqboard/internal/domain"
)

// Mutation describes one board write.
// Fields are ordered to minimize memory padding.
type Mutation struct {
	// Patch is the optimistic local change. It runs against a copy of the
	// board; an error rejects the mutation before anything is sent.
	Patch func(*domain.Board) error

	// Remote performs the backend call. ctx carries the mutation ID.
	Remote func(ctx context.Context) error

	// Settle runs against the board after a successful remote call, e.g. to
	// place an entity whose ID only the backend knows.
	Settle func(*domain.Board) error

	Kind    domain.MutationKind
	Subject string // Short description for logs and notices, e.g. "task 42"

	// Reconcile forces a silent refresh after success regardless of the
	// configured default.
	Reconcile bool
}

// Mutator runs mutations through the optimistic-patch state machine:
// local patch, remote call, and a silent refresh as the single path back
// to idle after a failure.
type Mutator struct {
	store              domain.BoardStore
	clock              domain.Clock
	logger             domain.Logger
	notifier           domain.Notifier
	newID              func() string
	reconcileOnSuccess bool
}

// NewMutator creates a Mutator. logger and notifier may be nil.
func NewMutator(store domain.BoardStore, clock domain.Clock, logger domain.Logger, notifier domain.Notifier, reconcileOnSuccess bool) *Mutator {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Mutator{
		store:              store,
		clock:              clock,
		logger:             logger,
		notifier:           notifier,
		newID:              uuid.NewString,
		reconcileOnSuccess: reconcileOnSuccess,
	}
}

// Store returns the board store the mutator patches.
func (m *Mutator) Store() domain.BoardStore {
	return m.store
}

// Run executes mut. A rejected patch is returned as is and nothing is sent.
// A remote failure triggers a silent refresh before the error is returned,
// so the board matches the backend again; a failing refresh is joined to
// the remote error.
func (m *Mutator) Run(ctx context.Context, mut Mutation) error {
	projectID := m.store.ProjectID()
	state := domain.NewMutationState(m.newID(), mut.Kind, m.clock.Now())

	patch := mut.Patch
	if patch == nil {
		patch = func(*domain.Board) error { return nil }
	}
	if err := m.store.Apply(patch); err != nil {
		return err
	}
	m.advance(projectID, state, domain.PhaseOptimisticApplied)
	m.advance(projectID, state, domain.PhaseRemotePending)

	m.logger.Debug(projectID, "mutation", fmt.Sprintf("%s %s: sending (id=%s)", mut.Kind, mut.Subject, state.ID))
	remoteErr := mut.Remote(domain.WithRequestID(ctx, state.ID))

	if remoteErr != nil {
		state.Err = remoteErr
		m.advance(projectID, state, domain.PhaseRemoteFailed)
		m.logger.Warn(projectID, "mutation", fmt.Sprintf("%s %s failed: %v", mut.Kind, mut.Subject, remoteErr))

		refreshErr := m.reconcile(ctx, projectID, state)
		err := fmt.Errorf("%s %s: %w", mut.Kind.Display(), mut.Subject, remoteErr)
		if refreshErr != nil {
			err = errors.Join(err, fmt.Errorf("reconcile board: %w", refreshErr))
		}
		m.notify(domain.NoticeFailure, fmt.Sprintf("Failed to %s: %v", mut.Kind.Display(), remoteErr))
		return err
	}

	m.advance(projectID, state, domain.PhaseRemoteSucceeded)
	if mut.Settle != nil {
		if err := m.store.Apply(mut.Settle); err != nil {
			m.logger.Warn(projectID, "mutation", fmt.Sprintf("%s %s: settle local board: %v", mut.Kind, mut.Subject, err))
		}
	}
	if mut.Reconcile || m.reconcileOnSuccess {
		if err := m.reconcile(ctx, projectID, state); err != nil {
			m.logger.Warn(projectID, "mutation", fmt.Sprintf("%s %s: refresh after success: %v", mut.Kind, mut.Subject, err))
		}
	} else {
		m.advance(projectID, state, domain.PhaseIdle)
	}
	m.logger.Info(projectID, "mutation", fmt.Sprintf("%s %s", mut.Kind.Display(), mut.Subject))
	return nil
}

// reconcile is the only way back to idle after a failure. The refresh
// outlives the caller's cancellation so the board is never left patched.
func (m *Mutator) reconcile(ctx context.Context, projectID domain.EntityID, state *domain.MutationState) error {
	m.advance(projectID, state, domain.PhaseSilentRefresh)
	_, err := m.store.Refresh(context.WithoutCancel(ctx), true)
	m.advance(projectID, state, domain.PhaseIdle)
	if errors.Is(err, domain.ErrProjectNotOpen) {
		return nil
	}
	return err
}

func (m *Mutator) advance(projectID domain.EntityID, state *domain.MutationState, to domain.MutationPhase) {
	if err := state.Advance(to); err != nil {
		m.logger.Error(projectID, "mutation", err.Error())
		return
	}
	m.store.Track(*state)
}

func (m *Mutator) notify(level domain.NoticeLevel, msg string) {
	if m.notifier != nil {
		m.notifier.Notify(level, msg)
	}
}
