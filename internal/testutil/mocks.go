// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/equilibra/eqboard/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockBoardGateway is an in-memory domain.BoardGateway. Successful writes
// change Remote the way the backend would, so a refresh after a failure
// returns the server's view. Errors are returned before anything changes.
// Fields are ordered to minimize memory padding.
type MockBoardGateway struct {
	FetchErr          error
	CreateTaskErr     error
	UpdateTaskErr     error
	DeleteTaskErr     error
	ReorderTasksErr   error
	CreateBucketErr   error
	ReorderBucketsErr error
	DeleteBucketErr   error
	BatchReviewErr    error
	BeforeFetch       func() // Called outside the lock, e.g. to block a fetch
	Calls             []string
	Reviews           []domain.BatchReview
	Remote            domain.Board
	nextID            int64
	mu                sync.Mutex
}

// Ensure MockBoardGateway implements domain.BoardGateway interface.
var _ domain.BoardGateway = (*MockBoardGateway)(nil)

// NewMockBoardGateway creates a gateway serving remote.
func NewMockBoardGateway(remote domain.Board) *MockBoardGateway {
	remote.Normalize()
	return &MockBoardGateway{Remote: remote, nextID: 1000}
}

// CallCount returns how many times method was called.
func (m *MockBoardGateway) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == method {
			n++
		}
	}
	return n
}

// RemoteBoard returns a copy of the server-side board.
func (m *MockBoardGateway) RemoteBoard() domain.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Remote.Clone()
}

func (m *MockBoardGateway) record(method string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, method)
	m.mu.Unlock()
}

func (m *MockBoardGateway) newID() domain.EntityID {
	m.nextID++
	return domain.EntityID(strconv.FormatInt(m.nextID, 10))
}

// FetchBoard returns a copy of Remote.
func (m *MockBoardGateway) FetchBoard(_ context.Context, _ domain.EntityID) (*domain.Board, error) {
	m.record("FetchBoard")
	if m.BeforeFetch != nil {
		m.BeforeFetch()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	b := m.Remote.Clone()
	return &b, nil
}

// CreateTask appends a task to the requested or first bucket.
func (m *MockBoardGateway) CreateTask(_ context.Context, in domain.TaskCreate) (*domain.Task, error) {
	m.record("CreateTask")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateTaskErr != nil {
		return nil, m.CreateTaskErr
	}
	bucketID := in.BucketID
	if bucketID.IsZero() && len(m.Remote.Buckets) > 0 {
		bucketID = m.Remote.Buckets[0].ID
	}
	task := domain.Task{
		ID:             m.newID(),
		ProjectID:      in.ProjectID,
		BucketID:       bucketID,
		LeadAssigneeID: in.LeadAssigneeID,
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		BranchName:     in.BranchName,
		Weight:         in.Weight,
		OrderIdx:       len(m.Remote.TasksInBucket(bucketID)),
	}
	m.Remote.Tasks = append(m.Remote.Tasks, task)
	m.Remote.Normalize()
	return &task, nil
}

// UpdateTask merges patch into the remote task.
func (m *MockBoardGateway) UpdateTask(_ context.Context, id domain.EntityID, patch domain.TaskPatch) (*domain.Task, error) {
	m.record("UpdateTask")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateTaskErr != nil {
		return nil, m.UpdateTaskErr
	}
	if err := m.Remote.PatchTask(id, patch); err != nil {
		return nil, err
	}
	task := m.Remote.Tasks[m.Remote.FindTask(id)]
	return &task, nil
}

// DeleteTask removes the remote task.
func (m *MockBoardGateway) DeleteTask(_ context.Context, id domain.EntityID) error {
	m.record("DeleteTask")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteTaskErr != nil {
		return m.DeleteTaskErr
	}
	return m.Remote.RemoveTask(id)
}

// ReorderTasks reorders the remote bucket.
func (m *MockBoardGateway) ReorderTasks(_ context.Context, _, bucketID domain.EntityID, ids []domain.EntityID) error {
	m.record("ReorderTasks")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReorderTasksErr != nil {
		return m.ReorderTasksErr
	}
	return m.Remote.ReorderTasks(bucketID, ids)
}

// CreateBucket appends a remote bucket.
func (m *MockBoardGateway) CreateBucket(_ context.Context, in domain.BucketCreate) (*domain.Bucket, error) {
	m.record("CreateBucket")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateBucketErr != nil {
		return nil, m.CreateBucketErr
	}
	bucket := domain.Bucket{ID: m.newID(), ProjectID: in.ProjectID, Name: in.Name, State: in.State}
	m.Remote.AppendBucket(bucket)
	bucket = m.Remote.Buckets[len(m.Remote.Buckets)-1]
	return &bucket, nil
}

// ReorderBuckets reorders the remote buckets.
func (m *MockBoardGateway) ReorderBuckets(_ context.Context, _ domain.EntityID, ids []domain.EntityID) error {
	m.record("ReorderBuckets")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReorderBucketsErr != nil {
		return m.ReorderBucketsErr
	}
	return m.Remote.ReorderBuckets(ids)
}

// DeleteBucket removes the remote bucket.
func (m *MockBoardGateway) DeleteBucket(_ context.Context, _, bucketID domain.EntityID) error {
	m.record("DeleteBucket")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteBucketErr != nil {
		return m.DeleteBucketErr
	}
	if n := len(m.Remote.TasksInBucket(bucketID)); n > 0 {
		return fmt.Errorf("bucket still contains %d task(s)", n)
	}
	return m.Remote.RemoveBucket(bucketID)
}

// BatchReview records the review and appends its tasks to the first bucket.
func (m *MockBoardGateway) BatchReview(_ context.Context, in domain.BatchReview) (*domain.BatchReviewResult, error) {
	m.record("BatchReview")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BatchReviewErr != nil {
		return nil, m.BatchReviewErr
	}
	m.Reviews = append(m.Reviews, in)
	var bucketID domain.EntityID
	if len(m.Remote.Buckets) > 0 {
		bucketID = m.Remote.Buckets[0].ID
	}
	start := len(m.Remote.TasksInBucket(bucketID))
	for i, item := range in.Tasks {
		m.Remote.Tasks = append(m.Remote.Tasks, domain.Task{
			ID:             m.newID(),
			ProjectID:      in.ProjectID,
			BucketID:       bucketID,
			LeadAssigneeID: item.AssigneeID,
			Title:          item.Title,
			Description:    item.Description,
			Type:           item.Type,
			Weight:         item.Weight,
			OrderIdx:       start + i,
		})
	}
	m.Remote.Normalize()
	return &domain.BatchReviewResult{Status: "ok", TasksCreated: len(in.Tasks)}, nil
}

// MockMemberGateway is a test double for domain.MemberGateway.
// Fields are ordered to minimize memory padding.
type MockMemberGateway struct {
	ListErr error
	AddErr  error
	Members []domain.ProjectMember
	Added   []domain.MemberCreate
}

// Ensure MockMemberGateway implements domain.MemberGateway interface.
var _ domain.MemberGateway = (*MockMemberGateway)(nil)

// ListMembers returns the configured members or error.
func (m *MockMemberGateway) ListMembers(_ context.Context, _ domain.EntityID) ([]domain.ProjectMember, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Members, nil
}

// AddMember records the request and returns the new member.
func (m *MockMemberGateway) AddMember(_ context.Context, projectID domain.EntityID, in domain.MemberCreate) (*domain.ProjectMember, error) {
	if m.AddErr != nil {
		return nil, m.AddErr
	}
	m.Added = append(m.Added, in)
	member := domain.ProjectMember{
		ID:        domain.IDFromInt64(int64(len(m.Members) + 1)),
		UserID:    in.UserID,
		ProjectID: projectID,
		Role:      in.Role,
	}
	m.Members = append(m.Members, member)
	return &member, nil
}

// MockAlertGateway is a test double for domain.AlertGateway.
// Fields are ordered to minimize memory padding.
type MockAlertGateway struct {
	ListErr    error
	ResolveErr error
	Alerts     []domain.Alert
	Resolved   []domain.EntityID
}

// Ensure MockAlertGateway implements domain.AlertGateway interface.
var _ domain.AlertGateway = (*MockAlertGateway)(nil)

// ListAlerts returns the configured alerts or error.
func (m *MockAlertGateway) ListAlerts(_ context.Context, _ domain.EntityID) ([]domain.Alert, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Alerts, nil
}

// ResolveAlert marks a configured alert as resolved.
func (m *MockAlertGateway) ResolveAlert(_ context.Context, id domain.EntityID) (*domain.Alert, error) {
	if m.ResolveErr != nil {
		return nil, m.ResolveErr
	}
	for i := range m.Alerts {
		if m.Alerts[i].ID.Equal(id) {
			m.Alerts[i].IsResolved = true
			m.Resolved = append(m.Resolved, id)
			alert := m.Alerts[i]
			return &alert, nil
		}
	}
	return nil, domain.ErrAlertNotFound
}

// MockProjectGateway is a test double for domain.ProjectGateway.
type MockProjectGateway struct {
	ListErr  error
	Projects []domain.Project
}

// Ensure MockProjectGateway implements domain.ProjectGateway interface.
var _ domain.ProjectGateway = (*MockProjectGateway)(nil)

// ListMyProjects returns the configured projects or error.
func (m *MockProjectGateway) ListMyProjects(_ context.Context) ([]domain.Project, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Projects, nil
}

// MockActivityGateway is a test double for domain.ActivityGateway.
// Fields are ordered to minimize memory padding.
type MockActivityGateway struct {
	ListErr    error
	Requested  domain.EntityID
	Activities []domain.Activity
}

// Ensure MockActivityGateway implements domain.ActivityGateway interface.
var _ domain.ActivityGateway = (*MockActivityGateway)(nil)

// ListActivities records the project and returns the configured feed.
func (m *MockActivityGateway) ListActivities(_ context.Context, projectID domain.EntityID) ([]domain.Activity, error) {
	m.Requested = projectID
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Activities, nil
}

// MockNotifier records notices.
type MockNotifier struct {
	Notices []Notice
	mu      sync.Mutex
}

// Notice is one recorded notification.
type Notice struct {
	Level   domain.NoticeLevel
	Message string
}

// Ensure MockNotifier implements domain.Notifier interface.
var _ domain.Notifier = (*MockNotifier)(nil)

// Notify records the notice.
func (m *MockNotifier) Notify(level domain.NoticeLevel, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notices = append(m.Notices, Notice{Level: level, Message: message})
}

// Failures returns the failure notices.
func (m *MockNotifier) Failures() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Notice
	for _, n := range m.Notices {
		if n.Level == domain.NoticeFailure {
			out = append(out, n)
		}
	}
	return out
}

// MockGit is a test double for domain.BranchResolver.
type MockGit struct {
	CurrentBranchErr  error
	CurrentBranchName string
}

// Ensure MockGit implements domain.BranchResolver interface.
var _ domain.BranchResolver = (*MockGit)(nil)

// CurrentBranch returns the configured branch name or error.
func (m *MockGit) CurrentBranch() (string, error) {
	if m.CurrentBranchErr != nil {
		return "", m.CurrentBranchErr
	}
	return m.CurrentBranchName, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitLocalErr     error
	InitGlobalErr    error
	Written          *domain.Config // Last config passed to an Init call
	LocalConfigInfo  domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitLocalCalled  bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		LocalConfigInfo: domain.ConfigInfo{
			Path:   "/work/.eqboard.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/eqboard/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetLocalConfigInfo returns the configured local config info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.LocalConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitLocalConfig records the call and returns configured error.
func (m *MockConfigManager) InitLocalConfig(cfg *domain.Config) error {
	m.InitLocalCalled = true
	m.Written = cfg
	return m.InitLocalErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.Written = cfg
	return m.InitGlobalErr
}
