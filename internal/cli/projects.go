package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/usecase"
)

// activityTimeLayout is how feed timestamps are printed.
const activityTimeLayout = "2006-01-02 15:04"

// newProjectsCommand creates the projects command.
func newProjectsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects you belong to",
		Long: `List the projects the API token's user belongs to.

The open project, if any, is marked with "*". Pass an ID to --project or
set board.project to open one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListProjectsUseCase().Execute(cmd.Context(), usecase.ListProjectsInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Projects) == 0 {
				_, _ = fmt.Fprintln(w, "No projects.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "\tID\tNAME\tSTATUS\tTAGS")
			for i := range out.Projects {
				p := &out.Projects[i]
				mark := ""
				if p.ID.Equal(out.Current) {
					mark = "*"
				}
				status := p.Status
				if status == "" {
					status = "-"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, p.ID, p.Name, status, strings.Join(p.Tags, ","))
			}
			return tw.Flush()
		},
	}
}

// newActivityCommand creates the activity command.
func newActivityCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Since time.Duration
		Limit int
	}

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the project's activity feed",
		Example: `  # The last 10 entries
  eqboard activity --limit 10

  # Everything from the past two days
  eqboard activity --since 48h --limit 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := requireProject(c)
			if err != nil {
				return err
			}
			in := usecase.ListActivityInput{ProjectID: projectID, Limit: opts.Limit}
			if opts.Since > 0 {
				in.Since = c.Clock.Now().Add(-opts.Since)
			}
			out, err := c.ListActivityUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Activities) == 0 {
				_, _ = fmt.Fprintln(w, "No activity.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "TIME\tUSER\tACTION\tTARGET")
			for i := range out.Activities {
				a := &out.Activities[i]
				when := "-"
				if !a.CreatedAt.IsZero() {
					when = a.CreatedAt.Local().Format(activityTimeLayout)
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", when, a.UserName, a.Action, a.Target)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if out.Truncated {
				_, _ = fmt.Fprintf(w, "(showing the latest %d, use --limit 0 for all)\n", opts.Limit)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum entries to show, 0 for all")
	cmd.Flags().DurationVar(&opts.Since, "since", 0, "Only show entries newer than this, e.g. 24h")

	return cmd
}
