package fakeapi

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/equilibra/eqboard/internal/domain"
)

// batchReview commits reviewed tasks into the project's first bucket and
// resolves the alert. Nothing is stored unless every item is valid.
func (s *Server) batchReview(w http.ResponseWriter, r *http.Request) {
	var in domain.BatchReview
	if !decodeBody(w, r, &in) {
		return
	}
	if len(in.Tasks) == 0 {
		writeDetail(w, http.StatusUnprocessableEntity, "At least one task is required.")
		return
	}
	for i, item := range in.Tasks {
		if err := validateReviewItem(item); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("tasks[%d]: %v", i, err))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ai := slices.IndexFunc(s.alerts, func(a domain.Alert) bool { return a.ID.Equal(in.AlertID) })
	if ai < 0 {
		writeDetail(w, http.StatusNotFound, "Alert not found.")
		return
	}
	if s.alerts[ai].IsResolved {
		writeDetail(w, http.StatusConflict, "Alert is already resolved. Tasks have already been committed.")
		return
	}
	first, ok := s.firstBucket(in.ProjectID)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Project has no buckets to insert tasks into.")
		return
	}

	start := s.nextTaskOrder(first.ID)
	now := domain.NewTimestamp(s.now())
	for i, item := range in.Tasks {
		s.tasks = append(s.tasks, domain.Task{
			ID:             s.ids.Next(),
			ProjectID:      in.ProjectID.Canonical(),
			BucketID:       first.ID,
			LeadAssigneeID: item.AssigneeID.Canonical(),
			Title:          item.Title,
			Description:    item.Description,
			Type:           item.Type,
			Weight:         item.Weight,
			OrderIdx:       start + i,
			CreatedAt:      now,
			UpdatedAt:      now,
			LastActivityAt: now,
		})
	}
	s.alerts[ai].IsResolved = true
	writeJSON(w, http.StatusOK, domain.BatchReviewResult{Status: "ok", TasksCreated: len(in.Tasks)})
}

func validateReviewItem(item domain.BatchReviewItem) error {
	return domain.TaskDraft{
		Title:  item.Title,
		Type:   item.Type,
		Weight: item.Weight,
	}.Validate()
}

func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r, "project")

	s.mu.Lock()
	defer s.mu.Unlock()
	members := []domain.ProjectMember{}
	for _, m := range s.members {
		if m.ProjectID.Equal(projectID) {
			members = append(members, m)
		}
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r, "project")
	var in domain.MemberCreate
	if !decodeBody(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		writeDetail(w, http.StatusNotFound, "Project not found.")
		return
	}
	for _, m := range s.members {
		if m.ProjectID.Equal(projectID) && m.UserID.Equal(in.UserID) {
			writeDetail(w, http.StatusConflict, "User is already a member of this project.")
			return
		}
	}
	member := s.addMemberLocked(projectID, in.UserID, in.Role)
	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) listAlerts(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r, "project")

	s.mu.Lock()
	defer s.mu.Unlock()
	alerts := []domain.Alert{}
	for _, a := range s.alerts {
		if a.ProjectID.Equal(projectID) {
			alerts = append(alerts, a)
		}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) resolveAlert(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "alert")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.alerts, func(a domain.Alert) bool { return a.ID.Equal(id) })
	if i < 0 {
		writeDetail(w, http.StatusNotFound, "Alert not found.")
		return
	}
	s.alerts[i].IsResolved = true
	writeJSON(w, http.StatusOK, s.alerts[i])
}
