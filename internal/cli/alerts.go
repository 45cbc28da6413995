package cli

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase"
)

// newAlertsCommand creates the alerts command. Without a subcommand it
// lists open alerts.
func newAlertsCommand(c *app.Container) *cobra.Command {
	list := newAlertsListCommand(c)

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List or resolve project alerts",
		Args:  cobra.NoArgs,
		RunE:  list.RunE,
	}
	cmd.Flags().AddFlagSet(list.Flags())
	cmd.AddCommand(list, newAlertsResolveCommand(c))
	return cmd
}

// newAlertsListCommand creates the alerts list subcommand.
func newAlertsListCommand(c *app.Container) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List alerts, most severe first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := requireProject(c)
			if err != nil {
				return err
			}
			out, err := c.ListAlertsUseCase().Execute(cmd.Context(), usecase.ListAlertsInput{
				ProjectID:       projectID,
				IncludeResolved: all,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Alerts) == 0 {
				_, _ = fmt.Fprintln(w, "No alerts.")
				return nil
			}
			slices.SortStableFunc(out.Alerts, func(a, b domain.Alert) int {
				return a.Severity.Rank() - b.Severity.Rank()
			})
			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tSEVERITY\tTYPE\tTITLE\tSTATE")
			for i := range out.Alerts {
				a := &out.Alerts[i]
				state := "open"
				if a.IsResolved {
					state = "resolved"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Severity, a.Type, a.Title, state)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include resolved alerts")

	return cmd
}

// newAlertsResolveCommand creates the alerts resolve subcommand.
func newAlertsResolveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Mark an alert as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alertID, err := parseID("alert", args[0])
			if err != nil {
				return err
			}
			out, err := c.ResolveAlertUseCase().Execute(cmd.Context(), usecase.ResolveAlertInput{AlertID: alertID})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Resolved alert #%s: %s\n", out.Alert.ID, out.Alert.Title)
			return nil
		},
	}
}
