// Package store holds the in-memory board of the open project.
//
// The board is replaced wholesale on every refresh and patched in place by
// optimistic mutations. Results that arrive after the project was switched
// or the store was closed are dropped.
package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/equilibra/eqboard/internal/domain"
)

// Ensure Store implements domain.BoardStore.
var _ domain.BoardStore = (*Store)(nil)

// Store is safe for concurrent use.
// Fields are ordered to minimize memory padding.
type Store struct {
	loadedAt      time.Time
	gateway       domain.BoardGateway
	clock         domain.Clock
	logger        domain.Logger
	lastErr       error
	changes       chan struct{}
	mutations     map[string]domain.MutationState
	projectID     domain.EntityID
	board         domain.Board
	stagnantAfter time.Duration
	epoch         uint64 // Bumped by Open and Close; stale fetches compare against it
	loading       int    // Visible refreshes in flight
	mu            sync.RWMutex
	loaded        bool
	closed        bool
}

// New creates a Store with no project open. stagnantAfter <= 0 disables
// stagnation flags.
func New(gateway domain.BoardGateway, clock domain.Clock, logger domain.Logger, stagnantAfter time.Duration) *Store {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Store{
		gateway:       gateway,
		clock:         clock,
		logger:        logger,
		stagnantAfter: stagnantAfter,
		changes:       make(chan struct{}, 1),
		mutations:     make(map[string]domain.MutationState),
	}
}

// Open switches the store to projectID and clears the board. In-flight
// refreshes for the previous project are discarded when they land.
func (s *Store) Open(projectID domain.EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.epoch++
	s.projectID = projectID.Canonical()
	s.board = domain.Board{}
	s.board.Normalize()
	s.loaded = false
	s.loading = 0
	s.lastErr = nil
	s.loadedAt = time.Time{}
	clear(s.mutations)
	s.notifyLocked()
}

// Close stops delivery of refresh results and change notifications.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.epoch++
	close(s.changes)
}

// Changes returns a channel that receives a value after state changes.
// Notifications coalesce; the channel is closed by Close.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// ProjectID returns the open project, or zero.
func (s *Store) ProjectID() domain.EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectID
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() domain.BoardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Refresh fetches the board of the open project and replaces the local
// copy. A silent refresh leaves the loading flag and the visible error
// untouched. A result that lands after Open or Close is discarded and
// domain.ErrProjectNotOpen is returned.
func (s *Store) Refresh(ctx context.Context, silent bool) (domain.BoardSnapshot, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.BoardSnapshot{}, domain.ErrProjectNotOpen
	}
	if s.projectID.IsZero() {
		s.mu.Unlock()
		return domain.BoardSnapshot{}, domain.ErrNoProject
	}
	epoch, projectID := s.epoch, s.projectID
	if !silent {
		s.loading++
		s.notifyLocked()
	}
	s.mu.Unlock()

	board, err := s.gateway.FetchBoard(ctx, projectID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.logger.Debug(projectID, "store", "discarded refresh result for a project that is no longer open")
		return s.snapshotLocked(), fmt.Errorf("refresh project %s: %w", projectID, domain.ErrProjectNotOpen)
	}
	if !silent {
		s.loading--
	}
	if err != nil {
		if !silent {
			s.lastErr = err
		}
		s.logger.Warn(projectID, "store", fmt.Sprintf("refresh failed (silent=%t): %v", silent, err))
		s.notifyLocked()
		return s.snapshotLocked(), fmt.Errorf("refresh board: %w", err)
	}

	board.Normalize()
	now := s.clock.Now()
	board.MarkStagnant(now, s.stagnantAfter)
	s.board = *board
	s.loaded = true
	s.loadedAt = now
	if !silent {
		s.lastErr = nil
	}
	s.logger.Debug(projectID, "store", fmt.Sprintf("board refreshed: %d buckets, %d tasks", len(board.Buckets), len(board.Tasks)))
	s.notifyLocked()
	return s.snapshotLocked(), nil
}

// Apply runs fn against a copy of the board. The copy replaces the board
// only when fn returns nil, so a rejected patch leaves no trace. Stagnation
// flags are recomputed on the patched copy.
func (s *Store) Apply(fn func(*domain.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.projectID.IsZero() {
		return domain.ErrProjectNotOpen
	}
	next := s.board.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.MarkStagnant(s.clock.Now(), s.stagnantAfter)
	s.board = next
	s.notifyLocked()
	return nil
}

// Track records a mutation's phase. Settled mutations are forgotten.
func (s *Store) Track(m domain.MutationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if m.Phase.IsSettled() {
		delete(s.mutations, m.ID)
	} else {
		s.mutations[m.ID] = m
	}
	s.notifyLocked()
}

func (s *Store) snapshotLocked() domain.BoardSnapshot {
	mutations := make([]domain.MutationState, 0, len(s.mutations))
	for _, m := range s.mutations {
		mutations = append(mutations, m)
	}
	slices.SortFunc(mutations, func(a, b domain.MutationState) int {
		if c := a.Started.Compare(b.Started); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return domain.BoardSnapshot{
		LoadedAt:  s.loadedAt,
		Err:       s.lastErr,
		ProjectID: s.projectID,
		Board:     s.board.Clone(),
		Mutations: mutations,
		Loading:   s.loading > 0,
		Loaded:    s.loaded,
	}
}

// notifyLocked signals a change without blocking. Callers must hold s.mu.
func (s *Store) notifyLocked() {
	if s.closed {
		return
	}
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
