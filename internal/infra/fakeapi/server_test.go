package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibra/eqboard/internal/domain"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServer() *Server {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func titles(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestServer_GetBoard(t *testing.T) {
	s := newTestServer()
	projectID := s.Seed()

	rec := do(t, s, http.MethodGet, "/projects/"+projectID.String()+"/board", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	board := decode[domain.Board](t, rec)
	require.Len(t, board.Buckets, 4)
	assert.Equal(t, domain.BucketTodo, board.Buckets[0].State)
	assert.Len(t, board.Tasks, 5)
	assert.Equal(t, 1, s.Hits(http.MethodGet, "/projects/"+projectID.String()+"/board"))
}

func TestServer_GetBoard_UnknownProject(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/projects/42/board", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Project not found."}`, rec.Body.String())
}

func TestServer_CreateTask(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "existing"})

	rec := do(t, s, http.MethodPost, "/tasks", domain.TaskCreate{
		ProjectID: projectID,
		Title:     "new",
		Type:      domain.TaskTypeCode,
		Weight:    3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	task := decode[domain.Task](t, rec)
	assert.True(t, task.BucketID.Equal(todo.ID), "defaults to first bucket")
	assert.Equal(t, 1, task.OrderIdx)
	assert.False(t, task.ID.IsZero())
	assert.True(t, task.CreatedAt.Equal(fixedNow))
}

func TestServer_CreateTask_Invalid(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")

	rec := do(t, s, http.MethodPost, "/tasks", domain.TaskCreate{ProjectID: projectID, Title: "x", Type: domain.TaskTypeCode, Weight: 9})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestServer_CreateTask_NoBuckets(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")

	rec := do(t, s, http.MethodPost, "/tasks", domain.TaskCreate{ProjectID: projectID, Title: "x", Type: domain.TaskTypeCode, Weight: 1})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_UpdateTask(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	task := s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "old"})

	title := "renamed"
	rec := do(t, s, http.MethodPut, "/tasks/"+task.ID.String(), domain.TaskPatch{Title: &title})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[domain.Task](t, rec)
	assert.Equal(t, "renamed", got.Title)
	assert.True(t, got.ID.Equal(task.ID))
}

func TestServer_UpdateTask_ClearsAssignee(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	task := s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "owned", LeadAssigneeID: "77"})

	rec := do(t, s, http.MethodPut, "/tasks/"+task.ID.String(), map[string]any{"lead_assignee_id": nil})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[domain.Task](t, rec)
	assert.False(t, got.IsAssigned())
	assert.False(t, s.Board(projectID).Tasks[0].IsAssigned())
}

func TestServer_UpdateTask_BucketChangeAppends(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	doing := s.AddBucket(projectID, "Doing", domain.BucketOngoing)
	moved := s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "A"})
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "B"})
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: doing.ID, Title: "C"})

	rec := do(t, s, http.MethodPut, "/tasks/"+moved.ID.String(), domain.TaskPatch{BucketID: &doing.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[domain.Task](t, rec)
	assert.Equal(t, 1, got.OrderIdx)
	board := s.Board(projectID)
	todoTasks := board.TasksInBucket(todo.ID)
	doingTasks := board.TasksInBucket(doing.ID)
	assert.Equal(t, []string{"B"}, titles(todoTasks))
	assert.Equal(t, 0, todoTasks[0].OrderIdx)
	assert.Equal(t, []string{"C", "A"}, titles(doingTasks))
	assert.Equal(t, []int{0, 1}, []int{doingTasks[0].OrderIdx, doingTasks[1].OrderIdx})
}

func TestServer_UpdateTask_NotFound(t *testing.T) {
	s := newTestServer()
	title := "x"

	rec := do(t, s, http.MethodPut, "/tasks/7", domain.TaskPatch{Title: &title})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_DeleteTask_SoftDeletes(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	task := s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "gone"})

	rec := do(t, s, http.MethodDelete, "/tasks/"+task.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Empty(t, s.Board(projectID).Tasks)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/tasks/"+task.ID.String(), nil).Code)
}

func TestServer_ReorderTasks_AcrossBuckets(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	doing := s.AddBucket(projectID, "Doing", domain.BucketOngoing)
	a := s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "a"})
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "b"})
	c := s.AddTask(domain.Task{ProjectID: projectID, BucketID: doing.ID, Title: "c"})

	path := "/projects/" + projectID.String() + "/buckets/" + doing.ID.String() + "/tasks/reorder"
	rec := do(t, s, http.MethodPut, path, []domain.EntityID{a.ID, c.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	board := s.Board(projectID)
	assert.Equal(t, []string{"b"}, titles(board.TasksInBucket(todo.ID)))
	assert.Equal(t, []string{"a", "c"}, titles(board.TasksInBucket(doing.ID)))
	assert.Equal(t, 0, board.TasksInBucket(todo.ID)[0].OrderIdx)
}

func TestServer_ReorderTasks_UnknownTask(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)

	path := "/projects/" + projectID.String() + "/buckets/" + todo.ID.String() + "/tasks/reorder"
	rec := do(t, s, http.MethodPut, path, []domain.EntityID{domain.IDFromInt64(99)})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Buckets(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	first := s.AddBucket(projectID, "To Do", domain.BucketTodo)

	rec := do(t, s, http.MethodPost, "/buckets", domain.BucketCreate{ProjectID: projectID, Name: "Review", State: domain.BucketOnReview})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[domain.Bucket](t, rec)
	assert.Equal(t, 1, created.OrderIdx)

	rec = do(t, s, http.MethodPut, "/projects/"+projectID.String()+"/buckets/reorder", []domain.EntityID{created.ID, first.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	board := s.Board(projectID)
	assert.Equal(t, "Review", board.Buckets[0].Name)

	rec = do(t, s, http.MethodDelete, "/projects/"+projectID.String()+"/buckets/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, s.Board(projectID).Buckets, 1)
}

func TestServer_DeleteBucket_NotEmpty(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "a"})

	rec := do(t, s, http.MethodDelete, "/projects/"+projectID.String()+"/buckets/"+todo.ID.String(), nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 task(s)")
}

func TestServer_FailNext(t *testing.T) {
	s := newTestServer()
	projectID := s.Seed()
	path := "/projects/" + projectID.String() + "/board"
	s.FailNext(http.MethodGet, path, http.StatusServiceUnavailable, "down for maintenance")

	rec := do(t, s, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"detail":"down for maintenance"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, s.Hits(http.MethodGet, path))
}

func TestServer_FailNext_EmptyBody(t *testing.T) {
	s := newTestServer()
	s.FailNext(http.MethodPost, "/tasks", http.StatusInternalServerError, "")

	rec := do(t, s, http.MethodPost, "/tasks", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestServer_BatchReview(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "existing"})
	alert := s.AddAlert(domain.Alert{ProjectID: projectID, Type: domain.AlertDraftApproval, Title: "drafts"})

	review := domain.BatchReview{
		AlertID:   alert.ID,
		ProjectID: projectID,
		Tasks: []domain.BatchReviewItem{
			{Title: "one", Type: domain.TaskTypeCode, Weight: 2},
			{Title: "two", Type: domain.TaskTypeDesign, Weight: 1},
		},
	}
	rec := do(t, s, http.MethodPost, "/tasks/batch-review", review)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","tasks_created":2}`, rec.Body.String())

	tasks := s.Board(projectID).TasksInBucket(todo.ID)
	assert.Equal(t, []string{"existing", "one", "two"}, titles(tasks))

	rec = do(t, s, http.MethodPost, "/tasks/batch-review", review)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_BatchReview_AllOrNothing(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	s.AddBucket(projectID, "To Do", domain.BucketTodo)
	alert := s.AddAlert(domain.Alert{ProjectID: projectID, Type: domain.AlertDraftApproval})

	rec := do(t, s, http.MethodPost, "/tasks/batch-review", domain.BatchReview{
		AlertID:   alert.ID,
		ProjectID: projectID,
		Tasks: []domain.BatchReviewItem{
			{Title: "ok", Type: domain.TaskTypeCode, Weight: 2},
			{Title: "bad", Type: domain.TaskTypeCode, Weight: 12},
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "tasks[1]")
	assert.Empty(t, s.Board(projectID).Tasks)
}

func TestServer_BatchReview_Errors(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	alert := s.AddAlert(domain.Alert{ProjectID: projectID, Type: domain.AlertDraftApproval})
	items := []domain.BatchReviewItem{{Title: "x", Type: domain.TaskTypeOther, Weight: 1}}

	rec := do(t, s, http.MethodPost, "/tasks/batch-review", domain.BatchReview{AlertID: domain.IDFromInt64(5), ProjectID: projectID, Tasks: items})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/tasks/batch-review", domain.BatchReview{AlertID: alert.ID, ProjectID: projectID, Tasks: items})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Members(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	userID := domain.IDFromInt64(7)

	rec := do(t, s, http.MethodPost, "/projects/"+projectID.String()+"/members", domain.MemberCreate{UserID: userID, Role: domain.RoleDesigner})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodPost, "/projects/"+projectID.String()+"/members", domain.MemberCreate{UserID: userID, Role: domain.RoleDesigner})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/projects/"+projectID.String()+"/members", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	members := decode[[]domain.ProjectMember](t, rec)
	require.Len(t, members, 1)
	assert.Equal(t, domain.RoleDesigner, members[0].Role)
}

func TestServer_Alerts(t *testing.T) {
	s := newTestServer()
	projectID := s.Seed()

	rec := do(t, s, http.MethodGet, "/projects/"+projectID.String()+"/alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	alerts := decode[[]domain.Alert](t, rec)
	require.Len(t, alerts, 2)

	rec = do(t, s, http.MethodPut, "/alerts/"+alerts[0].ID.String()+"/resolve", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[domain.Alert](t, rec).IsResolved)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodPut, "/alerts/1/resolve", nil).Code)
}

func TestServer_MyProjects(t *testing.T) {
	s := newTestServer()
	seeded := s.Seed()
	other := s.AddProject("Second")

	rec := do(t, s, http.MethodGet, "/projects/mine", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	projects := decode[[]domain.Project](t, rec)
	require.Len(t, projects, 2)
	assert.True(t, projects[0].ID.Equal(seeded))
	assert.Equal(t, "Equilibra Demo", projects[0].Name)
	assert.False(t, projects[0].CompletedBucketID.IsZero())
	assert.True(t, projects[1].ID.Equal(other))
}

func TestServer_Activities(t *testing.T) {
	s := newTestServer()
	projectID := s.AddProject("p")
	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	done := s.AddBucket(projectID, "Done", domain.BucketCompleted)
	task := s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "Login"})
	path := "/projects/" + projectID.String() + "/activities"

	rec := do(t, s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Activity](t, rec))

	rec = do(t, s, http.MethodPut, "/projects/"+projectID.String()+"/buckets/"+done.ID.String()+"/tasks/reorder", []domain.EntityID{task.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodDelete, "/tasks/"+task.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode[[]domain.Activity](t, rec)
	require.Len(t, feed, 2)
	assert.Equal(t, "deleted", feed[0].Action)
	assert.Equal(t, "moved", feed[1].Action)
	assert.Equal(t, "Login to Done", feed[1].Target)
	assert.Equal(t, devUser, feed[1].UserName)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/projects/42/activities", nil).Code)
}

func TestServer_CORSPreflight(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Zero(t, s.Hits(http.MethodOptions, "/tasks"))
}
