package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/infra/api"
	"github.com/equilibra/eqboard/internal/infra/fakeapi"
	"github.com/equilibra/eqboard/internal/store"
	"github.com/equilibra/eqboard/internal/testutil"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// backendEnv runs the use cases against the development backend over HTTP.
type backendEnv struct {
	backend  *fakeapi.Server
	client   *api.Client
	store    *store.Store
	notifier *testutil.MockNotifier
	mutator  *shared.Mutator
	project  domain.EntityID
	todo     domain.Bucket
	doing    domain.Bucket
	tasks    map[string]domain.Task
}

func newBackendEnv(t *testing.T) *backendEnv {
	t.Helper()
	backend := fakeapi.New()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	env := &backendEnv{backend: backend, tasks: make(map[string]domain.Task)}
	env.project = backend.AddProject("Integration")
	env.todo = backend.AddBucket(env.project, "TODO", domain.BucketTodo)
	env.doing = backend.AddBucket(env.project, "DOING", domain.BucketOngoing)
	for _, title := range []string{"A", "B", "C"} {
		env.tasks[title] = backend.AddTask(domain.Task{ProjectID: env.project, BucketID: env.todo.ID, Title: title})
	}
	for _, title := range []string{"X", "Y"} {
		env.tasks[title] = backend.AddTask(domain.Task{ProjectID: env.project, BucketID: env.doing.ID, Title: title})
	}

	env.client = api.New(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second, DedupWindow: 50 * time.Millisecond})
	env.store = store.New(env.client, domain.RealClock{}, nil, 0)
	env.store.Open(env.project)
	env.notifier = &testutil.MockNotifier{}
	env.mutator = shared.NewMutator(env.store, domain.RealClock{}, nil, env.notifier, true)

	_, err := NewLoadBoard(env.store).Execute(context.Background(), LoadBoardInput{})
	require.NoError(t, err)
	return env
}

func (e *backendEnv) titles(bucketID domain.EntityID) []string {
	var out []string
	for _, task := range e.store.Snapshot().Board.TasksInBucket(bucketID) {
		out = append(out, task.Title)
	}
	return out
}

// freshBoard loads the board through a separate store and client.
func (e *backendEnv) freshBoard(t *testing.T) domain.Board {
	t.Helper()
	s := store.New(e.client, domain.RealClock{}, nil, 0)
	s.Open(e.project)
	snap, err := s.Refresh(context.Background(), false)
	require.NoError(t, err)
	return snap.Board
}

func TestIntegration_MoveAcrossBucketsAndRollback(t *testing.T) {
	env := newBackendEnv(t)
	move := NewMoveTask(env.store, NewReorderTasks(env.mutator, env.client))

	// Move A into DOING before Y.
	_, err := move.Execute(context.Background(), MoveTaskInput{
		TaskID:       env.tasks["A"].ID,
		BucketID:     env.doing.ID,
		BeforeTaskID: env.tasks["Y"].ID,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C"}, env.titles(env.todo.ID))
	assert.Equal(t, []string{"X", "A", "Y"}, env.titles(env.doing.ID))
	b := env.store.Snapshot().Board
	assert.Equal(t, []int{0, 1}, orderIdxs(b, env.todo.ID))
	assert.Equal(t, []int{0, 1, 2}, orderIdxs(b, env.doing.ID))
	assert.Equal(t, []string{"X", "A", "Y"}, titlesOf(env.backend.Board(env.project), env.doing.ID))

	// The backend rejects the next reorder: the board returns to the backend's view.
	path := fmt.Sprintf("/projects/%s/buckets/%s/tasks/reorder", env.project, env.doing.ID)
	env.backend.FailNext(http.MethodPut, path, http.StatusInternalServerError, "database unavailable")

	_, err = move.Execute(context.Background(), MoveTaskInput{
		TaskID:   env.tasks["B"].ID,
		BucketID: env.doing.ID,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.Contains(t, err.Error(), "database unavailable")
	assert.Equal(t, env.freshBoard(t), env.store.Snapshot().Board)
	assert.Equal(t, []string{"B", "C"}, env.titles(env.todo.ID))
	assert.Equal(t, []string{"X", "A", "Y"}, env.titles(env.doing.ID))
	assert.Zero(t, env.store.Snapshot().Pending())

	failures := env.notifier.Failures()
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Message, "database unavailable")
}

func TestIntegration_LargeIdentifiersSurvive(t *testing.T) {
	env := newBackendEnv(t)
	task := env.tasks["A"]
	n, ok := task.ID.Int64()
	require.True(t, ok)
	require.Greater(t, n, int64(1)<<53, "snowflake IDs exceed float64 precision")

	out, err := NewUpdateTask(env.mutator, env.client, nil).Execute(context.Background(), UpdateTaskInput{
		TaskID: task.ID,
		Patch:  domain.TaskPatch{LeadAssigneeID: ptr(domain.EntityID("9223372036854775807"))},
	})

	require.NoError(t, err)
	assert.Equal(t, task.ID, out.Task.ID)
	assert.Equal(t, domain.EntityID("9223372036854775807"), out.Task.LeadAssigneeID)
	b := env.store.Snapshot().Board
	assert.Equal(t, domain.EntityID("9223372036854775807"), b.Tasks[b.FindTask(task.ID)].LeadAssigneeID)
}

func TestIntegration_DeleteNonEmptyBucketIsRestored(t *testing.T) {
	env := newBackendEnv(t)

	_, err := NewDeleteBucket(env.mutator, env.client).Execute(context.Background(), DeleteBucketInput{BucketID: env.todo.ID})

	require.ErrorIs(t, err, domain.ErrRemote)
	assert.Equal(t, http.StatusConflict, api.StatusCode(err))
	assert.Len(t, env.store.Snapshot().Board.Buckets, 2)
	assert.Equal(t, []string{"A", "B", "C"}, env.titles(env.todo.ID))
}

func TestIntegration_CreateTaskAppearsAfterRefresh(t *testing.T) {
	env := newBackendEnv(t)

	out, err := NewCreateTask(env.mutator, env.client, nil).Execute(context.Background(), CreateTaskInput{
		BucketID: env.doing.ID,
		Title:    "Z",
		Type:     domain.TaskTypeCode,
		Weight:   2,
	})

	require.NoError(t, err)
	assert.False(t, out.Task.ID.IsZero())
	assert.Equal(t, []string{"X", "Y", "Z"}, env.titles(env.doing.ID))
}

func titlesOf(b domain.Board, bucketID domain.EntityID) []string {
	var out []string
	for _, task := range b.TasksInBucket(bucketID) {
		out = append(out, task.Title)
	}
	return out
}
