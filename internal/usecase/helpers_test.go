package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/store"
	"github.com/equilibra/eqboard/internal/testutil"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// boardEnv wires a store and mutator over an in-memory gateway.
type boardEnv struct {
	store    *store.Store
	gateway  *testutil.MockBoardGateway
	notifier *testutil.MockNotifier
	mutator  *shared.Mutator
}

// newTestBoard returns project 1 with TODO (10: 101, 102, 103) and
// DOING (20: 201, 202).
func newTestBoard() domain.Board {
	return domain.Board{
		Buckets: []domain.Bucket{
			{ID: "10", ProjectID: "1", Name: "TODO", State: domain.BucketTodo, OrderIdx: 0},
			{ID: "20", ProjectID: "1", Name: "DOING", State: domain.BucketOngoing, OrderIdx: 1},
		},
		Tasks: []domain.Task{
			{ID: "101", ProjectID: "1", BucketID: "10", Title: "A", Type: domain.TaskTypeCode, Weight: 2, OrderIdx: 0},
			{ID: "102", ProjectID: "1", BucketID: "10", Title: "B", Type: domain.TaskTypeCode, Weight: 2, OrderIdx: 1},
			{ID: "103", ProjectID: "1", BucketID: "10", Title: "C", Type: domain.TaskTypeCode, Weight: 2, OrderIdx: 2},
			{ID: "201", ProjectID: "1", BucketID: "20", Title: "X", Type: domain.TaskTypeDesign, Weight: 3, OrderIdx: 0},
			{ID: "202", ProjectID: "1", BucketID: "20", Title: "Y", Type: domain.TaskTypeDesign, Weight: 3, OrderIdx: 1},
		},
	}
}

// newBoardEnv returns a loaded board. Reconciliation after success is off
// so tests observe the optimistic result.
func newBoardEnv(t *testing.T) *boardEnv {
	t.Helper()
	gw := testutil.NewMockBoardGateway(newTestBoard())
	clock := &testutil.MockClock{NowTime: testNow}
	s := store.New(gw, clock, nil, 0)
	s.Open("1")
	_, err := s.Refresh(context.Background(), false)
	require.NoError(t, err)
	notifier := &testutil.MockNotifier{}
	return &boardEnv{
		store:    s,
		gateway:  gw,
		notifier: notifier,
		mutator:  shared.NewMutator(s, clock, nil, notifier, false),
	}
}

func (e *boardEnv) board() domain.Board {
	return e.store.Snapshot().Board
}

// taskIDs returns the IDs of a bucket's tasks in display order.
func taskIDs(b domain.Board, bucketID domain.EntityID) []domain.EntityID {
	var ids []domain.EntityID
	for _, t := range b.TasksInBucket(bucketID) {
		ids = append(ids, t.ID)
	}
	return ids
}

// orderIdxs returns the order indices of a bucket's tasks in display order.
func orderIdxs(b domain.Board, bucketID domain.EntityID) []int {
	var idx []int
	for _, t := range b.TasksInBucket(bucketID) {
		idx = append(idx, t.OrderIdx)
	}
	return idx
}

func ptr[T any](v T) *T {
	return &v
}
