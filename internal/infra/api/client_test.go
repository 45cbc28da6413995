package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/infra/fakeapi"
)

func newFakeBackend(t *testing.T) (*fakeapi.Server, *Client) {
	t.Helper()
	backend := fakeapi.New()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return backend, New(Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestClient_FetchBoard(t *testing.T) {
	backend, client := newFakeBackend(t)
	projectID := backend.Seed()

	board, err := client.FetchBoard(context.Background(), projectID)
	require.NoError(t, err)

	require.Len(t, board.Buckets, 4)
	assert.Equal(t, "To Do", board.Buckets[0].Name)
	assert.Len(t, board.Tasks, 5)
	for i := 1; i < len(board.Buckets); i++ {
		assert.LessOrEqual(t, board.Buckets[i-1].OrderIdx, board.Buckets[i].OrderIdx)
	}
}

func TestClient_LargeIdentifiersRoundTrip(t *testing.T) {
	backend, client := newFakeBackend(t)
	projectID := backend.Seed()
	ctx := context.Background()

	board, err := client.FetchBoard(ctx, projectID)
	require.NoError(t, err)
	task := board.Tasks[0]
	v, ok := task.ID.Int64()
	require.True(t, ok)
	require.Greater(t, v, int64(1)<<53, "seeded ids must exceed float64 precision")

	title := "renamed"
	updated, err := client.UpdateTask(ctx, task.ID, domain.TaskPatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, task.ID.String(), updated.ID.String())
	assert.Equal(t, task.BucketID.String(), updated.BucketID.String())
}

func TestClient_TaskLifecycle(t *testing.T) {
	backend, client := newFakeBackend(t)
	projectID := backend.AddProject("p")
	todo := backend.AddBucket(projectID, "To Do", domain.BucketTodo)
	doing := backend.AddBucket(projectID, "Doing", domain.BucketOngoing)
	ctx := context.Background()

	created, err := client.CreateTask(ctx, domain.TaskCreate{ProjectID: projectID, Title: "a", Type: domain.TaskTypeCode, Weight: 2})
	require.NoError(t, err)
	assert.True(t, created.BucketID.Equal(todo.ID))

	require.NoError(t, client.ReorderTasks(ctx, projectID, doing.ID, []domain.EntityID{created.ID}))
	board, err := client.FetchBoard(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, board.TasksInBucket(doing.ID), 1)

	require.NoError(t, client.DeleteTask(ctx, created.ID))
	board, err = client.FetchBoard(ctx, projectID)
	require.NoError(t, err)
	assert.Empty(t, board.Tasks)
}

func TestClient_BucketLifecycle(t *testing.T) {
	backend, client := newFakeBackend(t)
	projectID := backend.AddProject("p")
	first := backend.AddBucket(projectID, "To Do", domain.BucketTodo)
	ctx := context.Background()

	bucket, err := client.CreateBucket(ctx, domain.BucketCreate{ProjectID: projectID, Name: "Done", State: domain.BucketCompleted})
	require.NoError(t, err)

	require.NoError(t, client.ReorderBuckets(ctx, projectID, []domain.EntityID{bucket.ID, first.ID}))
	board, err := client.FetchBoard(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, "Done", board.Buckets[0].Name)

	require.NoError(t, client.DeleteBucket(ctx, projectID, bucket.ID))
	board, err = client.FetchBoard(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, board.Buckets, 1)
}

func TestClient_DeleteBucket_Conflict(t *testing.T) {
	backend, client := newFakeBackend(t)
	projectID := backend.AddProject("p")
	todo := backend.AddBucket(projectID, "To Do", domain.BucketTodo)
	backend.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "a"})

	err := client.DeleteBucket(context.Background(), projectID, todo.ID)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemote)
	assert.Equal(t, http.StatusConflict, StatusCode(err))
	assert.Equal(t, "Bucket still contains 1 task(s). Move or delete them first.", err.Error())
}

func TestClient_BatchReview(t *testing.T) {
	backend, client := newFakeBackend(t)
	projectID := backend.AddProject("p")
	backend.AddBucket(projectID, "To Do", domain.BucketTodo)
	alert := backend.AddAlert(domain.Alert{ProjectID: projectID, Type: domain.AlertDraftApproval})

	res, err := client.BatchReview(context.Background(), domain.BatchReview{
		AlertID:   alert.ID,
		ProjectID: projectID,
		Tasks:     []domain.BatchReviewItem{{Title: "x", Type: domain.TaskTypeOther, Weight: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TasksCreated)
}

func TestClient_MembersAndAlerts(t *testing.T) {
	backend, client := newFakeBackend(t)
	projectID := backend.Seed()
	ctx := context.Background()

	members, err := client.ListMembers(ctx, projectID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	added, err := client.AddMember(ctx, projectID, domain.MemberCreate{UserID: domain.IDFromInt64(77), Role: domain.RoleAnalyst})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAnalyst, added.Role)

	alerts, err := client.ListAlerts(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, domain.SeverityWarning, alerts[0].Severity)

	resolved, err := client.ResolveAlert(ctx, alerts[0].ID)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
}

func TestClient_ProjectsAndActivity(t *testing.T) {
	backend, client := newFakeBackend(t)
	projectID := backend.Seed()
	ctx := context.Background()

	projects, err := client.ListMyProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.True(t, projects[0].ID.Equal(projectID))

	feed, err := client.ListActivities(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "pushed", feed[0].Action, "newest first")

	_, err = client.ListActivities(ctx, "42")
	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestClient_ListMyProjects_SkipsDeleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/mine", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":7392648311298117632,"name":"live"},{"id":2,"name":"gone","is_deleted":true}]`))
	}))
	defer srv.Close()

	projects, err := New(Options{BaseURL: srv.URL}).ListMyProjects(context.Background())

	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, domain.EntityID("7392648311298117632"), projects[0].ID)
}

func TestClient_ListActivities_SortsNewestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"project_id":5,"user_name":"a","action":"created","target":"x","created_at":"2026-03-01T10:00:00"},
			{"id":2,"project_id":5,"user_name":"b","action":"moved","target":"x","created_at":"2026-03-01T12:00:00"}
		]`))
	}))
	defer srv.Close()

	feed, err := New(Options{BaseURL: srv.URL}).ListActivities(context.Background(), "5")

	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, domain.EntityID("2"), feed[0].ID)
	assert.Equal(t, "b", feed[0].UserName)
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		status int
	}{
		{name: "detail string", status: http.StatusNotFound, body: `{"detail":"Task not found."}`, want: "Task not found."},
		{name: "detail list", status: http.StatusUnprocessableEntity, body: `{"detail":[{"msg":"field required"},{"msg":"too long"}]}`, want: "field required; too long"},
		{name: "message", status: http.StatusBadRequest, body: `{"message":"bad input"}`, want: "bad input"},
		{name: "no body", status: http.StatusNotFound, body: "", want: "404 Not Found"},
		{name: "not json", status: http.StatusBadGateway, body: "<html>", want: "502 Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()
			client := New(Options{BaseURL: srv.URL})

			err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)

			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.status, StatusCode(err))
			assert.ErrorIs(t, err, domain.ErrRemote)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client := New(Options{BaseURL: url})

	err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Transport())
	assert.ErrorIs(t, err, domain.ErrRemote)
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"buckets": [`))
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})

	_, err := client.FetchBoard(context.Background(), domain.IDFromInt64(1))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed response")
}

func TestClient_MalformedResponse_KeepsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": `))
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})

	_, err := client.CreateTask(context.Background(), domain.TaskCreate{ProjectID: "1", Title: "t", Type: domain.TaskTypeCode, Weight: 1})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusCreated, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "malformed response")
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL + "/", Token: "secret"})
	ctx := domain.WithRequestID(context.Background(), "req-1")

	require.NoError(t, client.Do(ctx, http.MethodPost, "/tasks", map[string]string{"a": "b"}, nil))

	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.Equal(t, "req-1", got.Get("X-Request-ID"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestClient_ReorderSendsEmptyArray(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		_, _ = w.Write([]byte(`{"status":"ok","order":[]}`))
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})

	require.NoError(t, client.ReorderTasks(context.Background(), domain.IDFromInt64(1), domain.IDFromInt64(2), nil))

	assert.Equal(t, "[]", body)
}

func TestClient_RateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL, RateLimit: 1, Burst: 1})
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, client.Do(ctx, http.MethodPost, "/x", nil, nil))
	err := client.Do(ctx, http.MethodPost, "/x", nil, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemote))
	assert.Contains(t, err.Error(), "rate limit")
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := domain.APIConfig{BaseURL: "http://x", Token: "t", Timeout: time.Second, DedupWindow: time.Millisecond, RateLimit: 2, Burst: 3}

	opts := OptionsFromConfig(cfg, nil)

	assert.Equal(t, "http://x", opts.BaseURL)
	assert.Equal(t, "t", opts.Token)
	assert.Equal(t, time.Second, opts.Timeout)
	assert.Equal(t, time.Millisecond, opts.DedupWindow)
	assert.InDelta(t, 2.0, opts.RateLimit, 0)
	assert.Equal(t, 3, opts.Burst)
}
