// Package app provides the dependency injection container for the application.
package app

import (
	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/infra/api"
	"github.com/equilibra/eqboard/internal/infra/config"
	"github.com/equilibra/eqboard/internal/infra/git"
	"github.com/equilibra/eqboard/internal/infra/logging"
	"github.com/equilibra/eqboard/internal/store"
	"github.com/equilibra/eqboard/internal/usecase"
	"github.com/equilibra/eqboard/internal/usecase/shared"
)

// Config holds the application paths.
type Config struct {
	WorkDir  string // Directory holding .eqboard.toml and .env
	RepoRoot string // Git repository root, empty outside a repository
	LogDir   string // Empty disables file logging
}

// Deps are the port implementations a Container is built from.
// Fields are ordered to minimize memory padding.
type Deps struct {
	Board         domain.BoardGateway
	Members       domain.MemberGateway
	Alerts        domain.AlertGateway
	Projects      domain.ProjectGateway
	Activities    domain.ActivityGateway
	Git           domain.BranchResolver // nil outside a repository
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Clock         domain.Clock
	Logger        domain.Logger
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Board         domain.BoardGateway
	Members       domain.MemberGateway
	Alerts        domain.AlertGateway
	Projects      domain.ProjectGateway
	Activities    domain.ActivityGateway
	Git           domain.BranchResolver
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Clock         domain.Clock
	Logger        domain.Logger
	Notifier      domain.Notifier // Set by the CLI or the terminal board

	// Pointer fields
	Store     *store.Store
	AppConfig *domain.Config
	closeLog  func() error

	// Configuration
	Config Config
}

// New creates a Container for the working directory dir. Configuration
// problems that still leave a usable config are reported in
// AppConfig.Warnings.
func New(dir string) (*Container, error) {
	configLoader := config.NewLoader(dir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	cfg := Config{WorkDir: dir, LogDir: logging.DefaultDir()}

	var branches domain.BranchResolver
	if gitClient, err := git.NewClient(dir); err == nil {
		branches = gitClient
		cfg.RepoRoot = gitClient.RepoRoot()
	}

	logger := logging.New(cfg.LogDir, logging.ParseLevel(appConfig.Log.Level))
	client := api.New(api.OptionsFromConfig(appConfig.API, logger))

	c := NewWithDeps(cfg, appConfig, Deps{
		Board:         client,
		Members:       client,
		Alerts:        client,
		Projects:      client,
		Activities:    client,
		Git:           branches,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dir),
		Clock:         domain.RealClock{},
		Logger:        logger,
	})
	c.closeLog = logger.Close
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// The store is opened on the configured project, if any.
func NewWithDeps(cfg Config, appConfig *domain.Config, deps Deps) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if deps.Clock == nil {
		deps.Clock = domain.RealClock{}
	}
	if deps.Logger == nil {
		deps.Logger = domain.NopLogger{}
	}
	c := &Container{
		Board:         deps.Board,
		Members:       deps.Members,
		Alerts:        deps.Alerts,
		Projects:      deps.Projects,
		Activities:    deps.Activities,
		Git:           deps.Git,
		ConfigLoader:  deps.ConfigLoader,
		ConfigManager: deps.ConfigManager,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
		Store:         store.New(deps.Board, deps.Clock, deps.Logger, appConfig.Board.StagnantAfter),
		AppConfig:     appConfig,
		Config:        cfg,
	}
	if !appConfig.Board.Project.IsZero() {
		c.Store.Open(appConfig.Board.Project)
	}
	return c
}

// OpenProject switches the board store to projectID.
func (c *Container) OpenProject(projectID domain.EntityID) {
	c.Store.Open(projectID)
}

// ProjectID returns the open project, or zero.
func (c *Container) ProjectID() domain.EntityID {
	return c.Store.ProjectID()
}

// Close releases the store and log files.
func (c *Container) Close() error {
	c.Store.Close()
	if c.closeLog != nil {
		return c.closeLog()
	}
	return nil
}

// Mutator returns the mutation runner bound to the store.
func (c *Container) Mutator() *shared.Mutator {
	return shared.NewMutator(c.Store, c.Clock, c.Logger, c.Notifier, c.AppConfig.Board.ReconcileOnSuccess)
}

// UseCase factory methods

// LoadBoardUseCase returns a new LoadBoard use case.
func (c *Container) LoadBoardUseCase() *usecase.LoadBoard {
	return usecase.NewLoadBoard(c.Store)
}

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase() *usecase.CreateTask {
	return usecase.NewCreateTask(c.Mutator(), c.Board, c.Git)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.Mutator(), c.Board, c.Git)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Mutator(), c.Board)
}

// ReorderTasksUseCase returns a new ReorderTasks use case.
func (c *Container) ReorderTasksUseCase() *usecase.ReorderTasks {
	return usecase.NewReorderTasks(c.Mutator(), c.Board)
}

// MoveTaskUseCase returns a new MoveTask use case.
func (c *Container) MoveTaskUseCase() *usecase.MoveTask {
	return usecase.NewMoveTask(c.Store, c.ReorderTasksUseCase())
}

// CreateBucketUseCase returns a new CreateBucket use case.
func (c *Container) CreateBucketUseCase() *usecase.CreateBucket {
	return usecase.NewCreateBucket(c.Mutator(), c.Board)
}

// ReorderBucketsUseCase returns a new ReorderBuckets use case.
func (c *Container) ReorderBucketsUseCase() *usecase.ReorderBuckets {
	return usecase.NewReorderBuckets(c.Mutator(), c.Board)
}

// DeleteBucketUseCase returns a new DeleteBucket use case.
func (c *Container) DeleteBucketUseCase() *usecase.DeleteBucket {
	return usecase.NewDeleteBucket(c.Mutator(), c.Board)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Mutator(), c.Board)
}

// ListMembersUseCase returns a new ListMembers use case.
func (c *Container) ListMembersUseCase() *usecase.ListMembers {
	return usecase.NewListMembers(c.Members)
}

// AddMemberUseCase returns a new AddMember use case.
func (c *Container) AddMemberUseCase() *usecase.AddMember {
	return usecase.NewAddMember(c.Members, c.Logger)
}

// ListAlertsUseCase returns a new ListAlerts use case.
func (c *Container) ListAlertsUseCase() *usecase.ListAlerts {
	return usecase.NewListAlerts(c.Alerts)
}

// ResolveAlertUseCase returns a new ResolveAlert use case.
func (c *Container) ResolveAlertUseCase() *usecase.ResolveAlert {
	return usecase.NewResolveAlert(c.Alerts)
}

// ListProjectsUseCase returns a new ListProjects use case.
func (c *Container) ListProjectsUseCase() *usecase.ListProjects {
	return usecase.NewListProjects(c.Projects, c.Store)
}

// ListActivityUseCase returns a new ListActivity use case.
func (c *Container) ListActivityUseCase() *usecase.ListActivity {
	return usecase.NewListActivity(c.Activities)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
