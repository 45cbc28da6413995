package fakeapi

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"

	"github.com/equilibra/eqboard/internal/domain"
)

// devUser is the name activity entries are recorded under. The server has
// no authentication, so every caller is the same user.
const devUser = "dev"

// recordLocked appends an activity entry. Callers must hold s.mu.
func (s *Server) recordLocked(projectID domain.EntityID, action, target string) {
	s.activities = append(s.activities, domain.Activity{
		ID:        s.ids.Next(),
		ProjectID: projectID.Canonical(),
		UserName:  devUser,
		Action:    action,
		Target:    target,
		CreatedAt: domain.NewTimestamp(s.now()),
	})
}

// bucketNameLocked returns a bucket's label for activity targets.
// Callers must hold s.mu.
func (s *Server) bucketNameLocked(id domain.EntityID) string {
	if i := s.bucketIndex(id); i >= 0 {
		return s.buckets[i].Label()
	}
	if id.IsZero() {
		return "triage"
	}
	return "bucket " + id.String()
}

// listMyProjects returns every live project: all callers are members.
func (s *Server) listMyProjects(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if !p.IsDeleted {
			projects = append(projects, p)
		}
	}
	slices.SortFunc(projects, func(a, b domain.Project) int {
		an, _ := a.ID.Int64()
		bn, _ := b.ID.Int64()
		return cmp.Compare(an, bn)
	})
	writeJSON(w, http.StatusOK, projects)
}

// listActivities returns a project's feed, newest first. Entries with the
// same timestamp are listed latest-recorded first.
func (s *Server) listActivities(w http.ResponseWriter, r *http.Request) {
	projectID := pathID(r, "project")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		writeDetail(w, http.StatusNotFound, "Project not found.")
		return
	}
	feed := make([]domain.Activity, 0)
	for i := len(s.activities) - 1; i >= 0; i-- {
		if a := s.activities[i]; a.ProjectID.Equal(projectID) {
			feed = append(feed, a)
		}
	}
	slices.SortStableFunc(feed, func(a, b domain.Activity) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
	writeJSON(w, http.StatusOK, feed)
}

// moveTarget describes a bucket change for the feed.
func moveTarget(title, bucket string) string {
	return fmt.Sprintf("%s to %s", title, bucket)
}
