// Package cli provides the command-line interface for eqboard.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupBoard   = "board"
	groupProject = "project"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for eqboard.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var project string

	root := &cobra.Command{
		Use:   "eqboard",
		Short: "Kanban board client for Equilibra projects",
		Long: `eqboard keeps a local copy of a project's Kanban board in sync with
the Equilibra backend. Changes show up locally at once and are sent in the
background; when the backend rejects one, the board is reloaded so it
matches the backend again.

Running eqboard without a command opens the terminal board.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			if project != "" {
				id := domain.ParseEntityID(project)
				if !id.IsInteger() {
					return fmt.Errorf("%w: --project %q", domain.ErrInvalidID, project)
				}
				c.OpenProject(id)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.PersistentFlags().StringVarP(&project, "project", "p", "", "Project ID (overrides board.project and EQBOARD_PROJECT)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupBoard, Title: "Board:"},
		&cobra.Group{ID: groupProject, Title: "Project:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Board commands
	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupBoard

	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupBoard

	bucketCmd := newBucketCommand(c)
	bucketCmd.GroupID = groupBoard

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupBoard

	// Project commands
	membersCmd := newMembersCommand(c)
	membersCmd.GroupID = groupProject

	alertsCmd := newAlertsCommand(c)
	alertsCmd.GroupID = groupProject

	projectsCmd := newProjectsCommand(c)
	projectsCmd.GroupID = groupProject

	activityCmd := newActivityCommand(c)
	activityCmd.GroupID = groupProject

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	devServerCmd := newDevServerCommand(c)
	devServerCmd.GroupID = groupSetup

	// Add subcommands
	root.AddCommand(
		boardCmd,
		taskCmd,
		bucketCmd,
		tuiCmd,
		membersCmd,
		alertsCmd,
		projectsCmd,
		activityCmd,
		configCmd,
		devServerCmd,
	)

	return root
}

// requireProject returns the open project or domain.ErrNoProject.
func requireProject(c *app.Container) (domain.EntityID, error) {
	id := c.ProjectID()
	if id.IsZero() {
		return "", domain.ErrNoProject
	}
	return id, nil
}

// loadBoard fetches the board so mutations are validated against it and
// applied optimistically.
func loadBoard(cmd *cobra.Command, c *app.Container) (domain.BoardSnapshot, error) {
	if _, err := requireProject(c); err != nil {
		return domain.BoardSnapshot{}, err
	}
	out, err := c.LoadBoardUseCase().Execute(cmd.Context(), usecase.LoadBoardInput{})
	if err != nil {
		return domain.BoardSnapshot{}, err
	}
	return out.Snapshot, nil
}
