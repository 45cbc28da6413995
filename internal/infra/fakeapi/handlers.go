package fakeapi

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/equilibra/eqboard/internal/domain"
)

// Board returns the live buckets and tasks of a project, sorted.
func (s *Server) Board(projectID domain.EntityID) domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boardOf(projectID)
}

// boardOf collects a project's live data. Callers must hold s.mu.
func (s *Server) boardOf(projectID domain.EntityID) domain.Board {
	var b domain.Board
	for _, bk := range s.buckets {
		if bk.ProjectID.Equal(projectID) {
			b.Buckets = append(b.Buckets, bk)
		}
	}
	for _, t := range s.tasks {
		if t.ProjectID.Equal(projectID) {
			b.Tasks = append(b.Tasks, t)
		}
	}
	b.Normalize()
	return b
}

// storeOrder writes order indices and bucket placement from b back into
// the server state. Callers must hold s.mu.
func (s *Server) storeOrder(b domain.Board) {
	now := domain.NewTimestamp(s.now())
	for _, bk := range b.Buckets {
		if i := s.bucketIndex(bk.ID); i >= 0 {
			s.buckets[i].OrderIdx = bk.OrderIdx
		}
	}
	for _, t := range b.Tasks {
		i := s.taskIndex(t.ID)
		if i < 0 {
			continue
		}
		stored := &s.tasks[i]
		if stored.OrderIdx != t.OrderIdx || !stored.BucketID.Equal(t.BucketID) {
			stored.OrderIdx = t.OrderIdx
			stored.BucketID = t.BucketID
			stored.UpdatedAt = now
		}
	}
}

func (s *Server) taskIndex(id domain.EntityID) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool { return t.ID.Equal(id) && !t.IsDeleted })
}

func (s *Server) bucketIndex(id domain.EntityID) int {
	return slices.IndexFunc(s.buckets, func(b domain.Bucket) bool { return b.ID.Equal(id) })
}

// firstBucket returns the lowest-ordered bucket of a project.
// Callers must hold s.mu.
func (s *Server) firstBucket(projectID domain.EntityID) (domain.Bucket, bool) {
	b := s.boardOf(projectID)
	if len(b.Buckets) == 0 {
		return domain.Bucket{}, false
	}
	return b.Buckets[0], true
}

// nextTaskOrder returns max(order_idx)+1 within a bucket, 0 when empty.
// Callers must hold s.mu.
func (s *Server) nextTaskOrder(bucketID domain.EntityID) int {
	next := 0
	for _, t := range s.tasks {
		if !t.IsDeleted && t.BucketID.Equal(bucketID) && t.OrderIdx >= next {
			next = t.OrderIdx + 1
		}
	}
	return next
}

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r, "project")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		writeDetail(w, http.StatusNotFound, "Project not found.")
		return
	}
	writeJSON(w, http.StatusOK, s.boardOf(projectID))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in domain.TaskCreate
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[in.ProjectID.Canonical()]; !ok {
		writeDetail(w, http.StatusNotFound, "Project not found.")
		return
	}

	bucketID := in.BucketID.Canonical()
	if bucketID.IsZero() {
		first, ok := s.firstBucket(in.ProjectID)
		if !ok {
			writeDetail(w, http.StatusBadRequest, "Project has no buckets to insert tasks into.")
			return
		}
		bucketID = first.ID
	} else if i := s.bucketIndex(bucketID); i < 0 || !s.buckets[i].ProjectID.Equal(in.ProjectID) {
		writeDetail(w, http.StatusNotFound, "Bucket not found.")
		return
	}

	now := domain.NewTimestamp(s.now())
	task := domain.Task{
		ID:             s.ids.Next(),
		ProjectID:      in.ProjectID.Canonical(),
		BucketID:       bucketID,
		LeadAssigneeID: in.LeadAssigneeID.Canonical(),
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		BranchName:     in.BranchName,
		Weight:         in.Weight,
		OrderIdx:       s.nextTaskOrder(bucketID),
		CreatedAt:      now,
		UpdatedAt:      now,
		LastActivityAt: now,
	}
	s.tasks = append(s.tasks, task)
	s.recordLocked(task.ProjectID, "created", task.Title)
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "task")
	var patch domain.TaskPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := patch.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Task not found.")
		return
	}
	if patch.BucketID != nil && !patch.BucketID.IsZero() {
		bi := s.bucketIndex(*patch.BucketID)
		if bi < 0 || !s.buckets[bi].ProjectID.Equal(s.tasks[i].ProjectID) {
			writeDetail(w, http.StatusNotFound, "Bucket not found.")
			return
		}
	}

	before := s.tasks[i]
	b := s.boardOf(before.ProjectID)
	if err := b.PatchTask(id, patch); err != nil {
		writeDetail(w, http.StatusNotFound, "Task not found.")
		return
	}
	s.storeOrder(b)
	task := b.Tasks[b.FindTask(id)]
	now := domain.NewTimestamp(s.now())
	task.UpdatedAt = now
	task.LastActivityAt = now
	s.tasks[i] = task
	if !task.BucketID.Equal(before.BucketID) {
		s.recordLocked(task.ProjectID, "moved", moveTarget(task.Title, s.bucketNameLocked(task.BucketID)))
	} else {
		s.recordLocked(task.ProjectID, "updated", task.Title)
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "task")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Task not found.")
		return
	}
	s.tasks[i].IsDeleted = true
	s.tasks[i].UpdatedAt = domain.NewTimestamp(s.now())
	s.recordLocked(s.tasks[i].ProjectID, "deleted", s.tasks[i].Title)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) reorderTasks(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r, "project")
	bucketID := pathID(r, "bucket")
	var ids []domain.EntityID
	if !decodeBody(w, r, &ids) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.boardOf(projectID)
	if err := b.ReorderTasks(bucketID, ids); err != nil {
		writeDetail(w, reorderStatus(err), err.Error())
		return
	}
	for _, id := range ids {
		if i := s.taskIndex(id); i >= 0 && !s.tasks[i].BucketID.Equal(bucketID) {
			s.recordLocked(projectID, "moved", moveTarget(s.tasks[i].Title, s.bucketNameLocked(bucketID)))
		}
	}
	s.storeOrder(b)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "order": ids})
}

func (s *Server) createBucket(w http.ResponseWriter, r *http.Request) {
	var in domain.BucketCreate
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[in.ProjectID.Canonical()]; !ok {
		writeDetail(w, http.StatusNotFound, "Project not found.")
		return
	}

	bucket := s.addBucketLocked(in.ProjectID, in.Name, in.State)
	writeJSON(w, http.StatusCreated, bucket)
}

func (s *Server) reorderBuckets(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r, "project")
	var ids []domain.EntityID
	if !decodeBody(w, r, &ids) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.boardOf(projectID)
	if err := b.ReorderBuckets(ids); err != nil {
		writeDetail(w, reorderStatus(err), err.Error())
		return
	}
	s.storeOrder(b)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "order": ids})
}

func (s *Server) deleteBucket(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r, "project")
	bucketID := pathID(r, "bucket")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.bucketIndex(bucketID)
	if i < 0 || !s.buckets[i].ProjectID.Equal(projectID) {
		writeDetail(w, http.StatusNotFound, "Bucket not found.")
		return
	}
	if s.buckets[i].IsSystemLocked {
		writeDetail(w, http.StatusForbidden, "Bucket is locked and cannot be deleted.")
		return
	}
	if n := len(s.boardOf(projectID).TasksInBucket(bucketID)); n > 0 {
		writeDetail(w, http.StatusConflict, fmt.Sprintf("Bucket still contains %d task(s). Move or delete them first.", n))
		return
	}
	s.buckets = slices.Delete(s.buckets, i, i+1)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// reorderStatus maps a reorder validation error to an HTTP status.
func reorderStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound), errors.Is(err, domain.ErrBucketNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
