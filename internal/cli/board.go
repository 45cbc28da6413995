package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/domain"
)

// newBoardCommand creates the board command with its subcommands.
func newBoardCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Inspect the project board",
	}
	cmd.AddCommand(newBoardShowCommand(c))
	return cmd
}

// boardShowOptions holds options for the board show command.
type boardShowOptions struct {
	JSON bool
}

// newBoardShowCommand creates the board show subcommand.
func newBoardShowCommand(c *app.Container) *cobra.Command {
	var opts boardShowOptions

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board",
		Long: `Print every bucket of the open project with its tasks in board order.

Tasks with no activity for board.stagnant_after are marked with "!".`,
		Example: `  # Print the configured project's board
  eqboard board show

  # Print another project as JSON
  eqboard board show --project 42 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := loadBoard(cmd, c)
			if err != nil {
				return err
			}
			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap.Board)
			}
			printBoard(cmd.OutOrStdout(), snap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the board as JSON")

	return cmd
}

// printBoard writes one table per bucket.
func printBoard(w io.Writer, snap domain.BoardSnapshot) {
	_, _ = fmt.Fprintf(w, "Project %s: %d bucket(s), %d task(s)\n",
		snap.ProjectID, len(snap.Board.Buckets), len(snap.Board.Tasks))

	for _, bucket := range snap.Board.Buckets {
		tasks := snap.Board.TasksInBucket(bucket.ID)
		_, _ = fmt.Fprintf(w, "\n%s [%s] #%s (%d)\n", bucket.Label(), bucket.State, bucket.ID, len(tasks))
		if len(tasks) == 0 {
			_, _ = fmt.Fprintln(w, "  (empty)")
			continue
		}
		printTaskTable(w, tasks)
	}

	if unbucketed := snap.Board.UnbucketedTasks(); len(unbucketed) > 0 {
		_, _ = fmt.Fprintf(w, "\nUnsorted (%d)\n", len(unbucketed))
		printTaskTable(w, unbucketed)
	}
}

func printTaskTable(w io.Writer, tasks []domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  ID\tTITLE\tTYPE\tWEIGHT\tASSIGNEE\tBRANCH")
	for i := range tasks {
		t := &tasks[i]
		title := t.Title
		if t.Stagnant {
			title = "! " + title
		}
		assignee := "-"
		if t.IsAssigned() {
			assignee = t.LeadAssigneeID.String()
		}
		branch := t.BranchName
		if branch == "" {
			branch = "-"
		}
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%s\t%s\n", t.ID, title, t.Type, t.Weight, assignee, branch)
	}
	_ = tw.Flush()
}
