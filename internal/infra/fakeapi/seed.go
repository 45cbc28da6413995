package fakeapi

import (
	"time"

	"github.com/equilibra/eqboard/internal/domain"
)

// AddProject registers a project and returns its identifier.
func (s *Server) AddProject(name string) domain.EntityID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.ids.Next()
	s.projects[id] = domain.Project{ID: id, Name: name, Status: "active"}
	return id
}

// AddActivity appends an entry to a project's feed.
func (s *Server) AddActivity(a domain.Activity) domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.ids.Next()
	a.ProjectID = a.ProjectID.Canonical()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = domain.NewTimestamp(s.now())
	}
	s.activities = append(s.activities, a)
	return a
}

// AddBucket appends a bucket to a project.
func (s *Server) AddBucket(projectID domain.EntityID, name string, state domain.BucketState) domain.Bucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBucketLocked(projectID, name, state)
}

// addBucketLocked places the bucket after the project's last one.
// Callers must hold s.mu.
func (s *Server) addBucketLocked(projectID domain.EntityID, name string, state domain.BucketState) domain.Bucket {
	next := 0
	for _, b := range s.buckets {
		if b.ProjectID.Equal(projectID) && b.OrderIdx >= next {
			next = b.OrderIdx + 1
		}
	}
	now := domain.NewTimestamp(s.now())
	bucket := domain.Bucket{
		ID:        s.ids.Next(),
		ProjectID: projectID.Canonical(),
		Name:      name,
		State:     state,
		OrderIdx:  next,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.buckets = append(s.buckets, bucket)
	return bucket
}

// AddTask appends a task to a bucket. Zero fields get the same defaults as
// the create endpoint; a non-zero LastActivityAt is kept.
func (s *Server) AddTask(task domain.Task) domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := domain.NewTimestamp(s.now())
	task.ID = s.ids.Next()
	task.ProjectID = task.ProjectID.Canonical()
	task.BucketID = task.BucketID.Canonical()
	task.OrderIdx = s.nextTaskOrder(task.BucketID)
	if task.Type == "" {
		task.Type = domain.TaskTypeOther
	}
	if task.Weight == 0 {
		task.Weight = domain.MinWeight
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}
	if task.LastActivityAt.IsZero() {
		task.LastActivityAt = task.UpdatedAt
	}
	s.tasks = append(s.tasks, task)
	return task
}

// AddMember adds a user to a project.
func (s *Server) AddMember(projectID, userID domain.EntityID, role domain.MemberRole) domain.ProjectMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addMemberLocked(projectID, userID, role)
}

// addMemberLocked stores a member. Callers must hold s.mu.
func (s *Server) addMemberLocked(projectID, userID domain.EntityID, role domain.MemberRole) domain.ProjectMember {
	m := domain.ProjectMember{
		ID:          s.ids.Next(),
		UserID:      userID.Canonical(),
		ProjectID:   projectID.Canonical(),
		Role:        role,
		MaxCapacity: 20,
	}
	s.members = append(s.members, m)
	return m
}

// AddAlert stores an alert for a project.
func (s *Server) AddAlert(alert domain.Alert) domain.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert.ID = s.ids.Next()
	alert.ProjectID = alert.ProjectID.Canonical()
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = domain.NewTimestamp(s.now())
	}
	s.alerts = append(s.alerts, alert)
	return alert
}

// Seed fills the server with a demo project and returns its identifier.
func (s *Server) Seed() domain.EntityID {
	projectID := s.AddProject("Equilibra Demo")

	todo := s.AddBucket(projectID, "To Do", domain.BucketTodo)
	ongoing := s.AddBucket(projectID, "Ongoing", domain.BucketOngoing)
	review := s.AddBucket(projectID, "On Review", domain.BucketOnReview)
	completed := s.AddBucket(projectID, "Completed", domain.BucketCompleted)

	s.mu.Lock()
	p := s.projects[projectID]
	p.Description = "Sample board served by eqboard dev-server"
	p.TodoBucketID, p.InReviewBucketID, p.CompletedBucketID = todo.ID, review.ID, completed.ID
	s.projects[projectID] = p
	s.mu.Unlock()

	lead := s.AddMember(projectID, s.nextID(), domain.RoleManager)
	dev := s.AddMember(projectID, s.nextID(), domain.RoleProgrammer)

	stale := domain.NewTimestamp(s.now().Add(-5 * 24 * time.Hour))
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "Define bucket workflow", Type: domain.TaskTypeRequirement, Weight: 2, LeadAssigneeID: lead.UserID})
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: todo.ID, Title: "Board wireframes", Type: domain.TaskTypeDesign, Weight: 3})
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: ongoing.ID, Title: "Snowflake identifiers", Type: domain.TaskTypeCode, Weight: 5, LeadAssigneeID: dev.UserID, BranchName: "feat/snowflake-ids"})
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: ongoing.ID, Title: "Migrate legacy tasks", Type: domain.TaskTypeCode, Weight: 8, LeadAssigneeID: dev.UserID, LastActivityAt: stale, UpdatedAt: stale, CreatedAt: stale})
	s.AddTask(domain.Task{ProjectID: projectID, BucketID: review.ID, Title: "Board endpoint", Type: domain.TaskTypeCode, Weight: 3, LeadAssigneeID: dev.UserID, BranchName: "feat/board-endpoint", PRURL: "https://github.com/equilibra/api/pull/12"})

	s.AddActivity(domain.Activity{ProjectID: projectID, UserName: "ana", Action: "moved", Target: "Board endpoint to On Review", CreatedAt: domain.NewTimestamp(s.now().Add(-2 * time.Hour))})
	s.AddActivity(domain.Activity{ProjectID: projectID, UserName: "rui", Action: "pushed", Target: "feat/snowflake-ids", CreatedAt: domain.NewTimestamp(s.now().Add(-30 * time.Minute))})

	s.AddAlert(domain.Alert{
		ProjectID:        projectID,
		UserID:           lead.UserID,
		Title:            "Migrate legacy tasks has been idle for 5 days",
		Type:             domain.AlertStagnation,
		Severity:         domain.SeverityWarning,
		SuggestedActions: []string{"Ping the assignee", "Split the task"},
	})
	s.AddAlert(domain.Alert{
		ProjectID: projectID,
		UserID:    lead.UserID,
		Title:     "3 tasks suggested from the planning meeting",
		Type:      domain.AlertDraftApproval,
		Severity:  domain.SeverityInfo,
	})
	return projectID
}

func (s *Server) nextID() domain.EntityID {
	return s.ids.Next()
}
