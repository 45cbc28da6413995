package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/tui"
)

// newTUICommand creates the tui command for launching the interactive board.
// It is the same as running `eqboard` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive board",
		Long:  `Launch the interactive terminal board for the open project.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

// launchTUI runs the board until the user quits.
func launchTUI(c *app.Container) error {
	if c == nil {
		return errors.New("configuration could not be loaded; run `eqboard config show` for details")
	}
	if _, err := requireProject(c); err != nil {
		return err
	}
	model := tui.New(c)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
