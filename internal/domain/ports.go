package domain

import (
	"context"
	"time"
)

// BoardGateway is the remote side of the board: one project's buckets and
// tasks plus the write endpoints the mutation layer drives.
type BoardGateway interface {
	// FetchBoard returns buckets and tasks of a project in one round trip.
	FetchBoard(ctx context.Context, projectID EntityID) (*Board, error)

	// CreateTask creates a task and returns the stored version.
	CreateTask(ctx context.Context, in TaskCreate) (*Task, error)

	// UpdateTask applies a partial update.
	UpdateTask(ctx context.Context, id EntityID, patch TaskPatch) (*Task, error)

	// DeleteTask soft-deletes a task.
	DeleteTask(ctx context.Context, id EntityID) error

	// ReorderTasks stores the full ordered task list of a bucket.
	ReorderTasks(ctx context.Context, projectID, bucketID EntityID, ids []EntityID) error

	// CreateBucket creates a bucket at the end of the project.
	CreateBucket(ctx context.Context, in BucketCreate) (*Bucket, error)

	// ReorderBuckets stores the full ordered bucket list of a project.
	ReorderBuckets(ctx context.Context, projectID EntityID, ids []EntityID) error

	// DeleteBucket deletes an empty bucket.
	DeleteBucket(ctx context.Context, projectID, bucketID EntityID) error

	// BatchReview commits reviewed drafts all-or-nothing.
	BatchReview(ctx context.Context, in BatchReview) (*BatchReviewResult, error)
}

// BoardStore holds the local board of the open project. Mutations patch it
// optimistically and reconcile it with Refresh.
type BoardStore interface {
	// ProjectID returns the open project, or zero.
	ProjectID() EntityID

	// Snapshot returns a copy of the current state.
	Snapshot() BoardSnapshot

	// Refresh replaces the board with a fresh fetch. A silent refresh does
	// not toggle the loading flag.
	Refresh(ctx context.Context, silent bool) (BoardSnapshot, error)

	// Apply runs fn against a copy of the board and publishes the copy only
	// if fn succeeds.
	Apply(fn func(*Board) error) error

	// Track records a mutation's phase. Settled mutations are forgotten.
	Track(m MutationState)
}

// ProjectGateway lists the projects visible to the caller.
type ProjectGateway interface {
	// ListMyProjects returns the projects the token's user belongs to.
	ListMyProjects(ctx context.Context) ([]Project, error)
}

// ActivityGateway reads a project's activity feed.
type ActivityGateway interface {
	// ListActivities returns the feed, newest first.
	ListActivities(ctx context.Context, projectID EntityID) ([]Activity, error)
}

// MemberGateway manages project membership.
type MemberGateway interface {
	ListMembers(ctx context.Context, projectID EntityID) ([]ProjectMember, error)
	AddMember(ctx context.Context, projectID EntityID, in MemberCreate) (*ProjectMember, error)
}

// AlertGateway reads and resolves project alerts.
type AlertGateway interface {
	ListAlerts(ctx context.Context, projectID EntityID) ([]Alert, error)
	ResolveAlert(ctx context.Context, id EntityID) (*Alert, error)
}

// NoticeLevel distinguishes user-facing notices.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeFailure NoticeLevel = "failure"
)

// Notifier shows short-lived messages to the user.
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

// Logger provides logging with project context.
// An empty projectID logs to the global log only.
type Logger interface {
	Debug(projectID EntityID, category, msg string)
	Info(projectID EntityID, category, msg string)
	Warn(projectID EntityID, category, msg string)
	Error(projectID EntityID, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(EntityID, string, string) {}
func (NopLogger) Info(EntityID, string, string)  {}
func (NopLogger) Warn(EntityID, string, string)  {}
func (NopLogger) Error(EntityID, string, string) {}

// BranchResolver reports the branch checked out in the working directory.
type BranchResolver interface {
	// CurrentBranch returns the short name of HEAD.
	CurrentBranch() (string, error)
}

// ConfigLoader loads configuration from files and the environment.
type ConfigLoader interface {
	// Load returns the merged configuration.
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration merged over defaults.
	LoadGlobal() (*Config, error)
}

// ConfigInfo contains information about a config file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	GetGlobalConfigInfo() ConfigInfo
	GetLocalConfigInfo() ConfigInfo
	InitGlobalConfig(cfg *Config) error
	InitLocalConfig(cfg *Config) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
