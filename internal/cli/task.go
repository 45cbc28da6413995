package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase"
)

// errBranchFlags is returned when both branch flags are given.
var errBranchFlags = errors.New("--branch and --branch-from-git cannot be used together")

// newTaskCommand creates the task command with its subcommands.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, edit and arrange tasks",
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newTaskNewCommand(c),
		newTaskEditCommand(c),
		newTaskRmCommand(c),
		newTaskMvCommand(c),
		newTaskReorderCommand(c),
		newTaskImportCommand(c),
	)

	return cmd
}

// parseID parses a command-line identifier. Board IDs are integers.
func parseID(what, s string) (domain.EntityID, error) {
	id := domain.ParseEntityID(s)
	if !id.IsInteger() {
		return "", fmt.Errorf("%w: %s %q", domain.ErrInvalidID, what, s)
	}
	return id, nil
}

func parseIDs(what string, values []string) ([]domain.EntityID, error) {
	ids := make([]domain.EntityID, 0, len(values))
	for _, v := range values {
		id, err := parseID(what, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseOptionalID is parseID for flags that may be left empty.
func parseOptionalID(what, s string) (domain.EntityID, error) {
	if s == "" {
		return "", nil
	}
	return parseID(what, s)
}

// newTaskNewCommand creates the task new subcommand.
func newTaskNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title         string
		Description   string
		Type          string
		Bucket        string
		Assignee      string
		Branch        string
		Weight        int
		BranchFromGit bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a task in the open project.

The backend assigns the task ID, so the board is reloaded once the task
exists. Without --bucket the task lands in the backend's default bucket.`,
		Example: `  # Create a task in the default bucket
  eqboard task new --title "Add login endpoint"

  # Create a weighted code task in bucket 10, linked to the current branch
  eqboard task new --title "Fix pagination" --type CODE --weight 3 --bucket 10 --branch-from-git

  # Create a task with a body using HEREDOC
  eqboard task new --title "Complex task" --body "$(cat <<'EOF'
## Summary
- Step 1
EOF
)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.BranchFromGit && opts.Branch != "" {
				return errBranchFlags
			}
			bucketID, err := parseOptionalID("bucket", opts.Bucket)
			if err != nil {
				return err
			}
			assigneeID, err := parseOptionalID("assignee", opts.Assignee)
			if err != nil {
				return err
			}
			if _, err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.CreateTaskUseCase().Execute(cmd.Context(), usecase.CreateTaskInput{
				BucketID:      bucketID,
				AssigneeID:    assigneeID,
				Title:         opts.Title,
				Description:   opts.Description,
				Type:          domain.TaskType(strings.ToUpper(opts.Type)),
				BranchName:    opts.Branch,
				Weight:        opts.Weight,
				BranchFromGit: opts.BranchFromGit,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%s in bucket #%s\n", out.Task.ID, out.Task.BucketID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Task type: CODE, REQUIREMENT, DESIGN, OTHER, NON-CODE (default OTHER)")
	cmd.Flags().IntVar(&opts.Weight, "weight", 0, "Task weight 1-8 (default 1)")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Bucket ID")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Lead assignee user ID")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Linked branch name")
	cmd.Flags().BoolVar(&opts.BranchFromGit, "branch-from-git", false, "Link the branch checked out in the working directory")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newTaskEditCommand creates the task edit subcommand.
func newTaskEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title         string
		Description   string
		Type          string
		Bucket        string
		Assignee      string
		Branch        string
		Weight        int
		Unassign      bool
		BranchFromGit bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit fields of an existing task. Only the flags given are changed.

The change shows on the board at once. If the backend rejects it the
board is reloaded and the error is printed.`,
		Example: `  # Rename a task
  eqboard task edit 101 --title "New title"

  # Reassign and reweight
  eqboard task edit 101 --assignee 7 --weight 5

  # Link the current branch
  eqboard task edit 101 --branch-from-git`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID("task", args[0])
			if err != nil {
				return err
			}

			var patch domain.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &opts.Title
			}
			if flags.Changed("body") {
				patch.Description = &opts.Description
			}
			if flags.Changed("type") {
				typ := domain.TaskType(strings.ToUpper(opts.Type))
				patch.Type = &typ
			}
			if flags.Changed("weight") {
				patch.Weight = &opts.Weight
			}
			if flags.Changed("bucket") {
				bucketID, err := parseID("bucket", opts.Bucket)
				if err != nil {
					return err
				}
				patch.BucketID = &bucketID
			}
			switch {
			case opts.Unassign && flags.Changed("assignee"):
				return errors.New("--assignee and --unassign cannot be used together")
			case opts.Unassign:
				none := domain.EntityID("")
				patch.LeadAssigneeID = &none
			case flags.Changed("assignee"):
				assigneeID, err := parseID("assignee", opts.Assignee)
				if err != nil {
					return err
				}
				patch.LeadAssigneeID = &assigneeID
			}
			if flags.Changed("branch") {
				if opts.BranchFromGit {
					return errBranchFlags
				}
				patch.BranchName = &opts.Branch
			}

			if _, err := loadBoard(cmd, c); err != nil {
				return err
			}
			out, err := c.UpdateTaskUseCase().Execute(cmd.Context(), usecase.UpdateTaskInput{
				TaskID:        taskID,
				Patch:         patch,
				BranchFromGit: opts.BranchFromGit,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Type, "type", "", "New task type")
	cmd.Flags().IntVar(&opts.Weight, "weight", 0, "New weight 1-8")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Move to bucket ID")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "New lead assignee user ID")
	cmd.Flags().BoolVar(&opts.Unassign, "unassign", false, "Clear the lead assignee")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Linked branch name (empty clears it)")
	cmd.Flags().BoolVar(&opts.BranchFromGit, "branch-from-git", false, "Link the branch checked out in the working directory")

	return cmd
}

// newTaskRmCommand creates the task rm subcommand.
func newTaskRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			if _, err := loadBoard(cmd, c); err != nil {
				return err
			}
			if _, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: taskID}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%s\n", taskID)
			return nil
		},
	}
}

// newTaskMvCommand creates the task mv subcommand.
func newTaskMvCommand(c *app.Container) *cobra.Command {
	var opts struct {
		To     string
		Before string
	}

	cmd := &cobra.Command{
		Use:   "mv <id>",
		Short: "Move a task to a bucket position",
		Long: `Move a task into a bucket, either before another task or at the end.

The destination bucket is renumbered 0..n-1 and sent as one reorder.`,
		Example: `  # Move task 101 to the end of bucket 20
  eqboard task mv 101 --to 20

  # Move task 101 in front of task 202
  eqboard task mv 101 --to 20 --before 202`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			bucketID, err := parseID("bucket", opts.To)
			if err != nil {
				return err
			}
			beforeID, err := parseOptionalID("task", opts.Before)
			if err != nil {
				return err
			}
			if _, err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.MoveTaskUseCase().Execute(cmd.Context(), usecase.MoveTaskInput{
				TaskID:       taskID,
				BucketID:     bucketID,
				BeforeTaskID: beforeID,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved task #%s to bucket #%s: %s\n", taskID, bucketID, joinIDs(out.TaskIDs))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "", "Destination bucket ID (required)")
	cmd.Flags().StringVar(&opts.Before, "before", "", "Place before this task (default: append)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// newTaskReorderCommand creates the task reorder subcommand.
func newTaskReorderCommand(c *app.Container) *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Set the task order of a bucket",
		Long: `Set the order of a bucket's tasks. The IDs are numbered 0..n-1 in the
order given; tasks from other buckets are moved in.`,
		Example: `  eqboard task reorder --bucket 10 103 101 102`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucketID, err := parseID("bucket", bucket)
			if err != nil {
				return err
			}
			ids, err := parseIDs("task", args)
			if err != nil {
				return err
			}
			if _, err := loadBoard(cmd, c); err != nil {
				return err
			}
			if _, err := c.ReorderTasksUseCase().Execute(cmd.Context(), usecase.ReorderTasksInput{
				BucketID: bucketID,
				TaskIDs:  ids,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reordered bucket #%s: %s\n", bucketID, joinIDs(ids))
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket ID (required)")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}

// newTaskImportCommand creates the task import subcommand.
func newTaskImportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		From   string
		Alert  string
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create tasks from reviewed drafts",
		Long: `Create several tasks at once from a Markdown file of drafts, answering a
draft-approval alert. The backend creates all of them or none.

File format (use "-" to read stdin):
  ---
  title: Add login endpoint
  type: CODE
  weight: 3
  assignee: 7392648311298117632
  ---
  Description here.

  ---
  title: "Review: auth flow"
  ---`,
		Example: `  # Preview drafts without sending them
  eqboard task import --from drafts.md --alert 55 --dry-run

  # Commit the drafts
  eqboard task import --from drafts.md --alert 55`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alertID, err := parseID("alert", opts.Alert)
			if err != nil {
				return err
			}
			content, err := readInput(cmd, opts.From)
			if err != nil {
				return err
			}
			if !opts.DryRun {
				if _, err := loadBoard(cmd, c); err != nil {
					return err
				}
			}

			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
				AlertID: alertID,
				Content: content,
				DryRun:  opts.DryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.DryRun {
				_, _ = fmt.Fprintf(w, "Would create %d task(s):\n", len(out.Drafts))
				printDrafts(w, out.Drafts)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Created %d task(s)\n", out.Created)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "Markdown file with drafts, - for stdin (required)")
	cmd.Flags().StringVar(&opts.Alert, "alert", "", "Draft-approval alert ID (required)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate drafts without creating tasks")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("alert")

	return cmd
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func printDrafts(w io.Writer, drafts []domain.TaskDraft) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  #\tTITLE\tTYPE\tWEIGHT\tASSIGNEE")
	for i, d := range drafts {
		assignee := "-"
		if !d.Assignee.IsZero() {
			assignee = d.Assignee.String()
		}
		_, _ = fmt.Fprintf(tw, "  %d\t%s\t%s\t%d\t%s\n", i+1, d.Title, d.Type, d.Weight, assignee)
	}
	_ = tw.Flush()
}

func joinIDs(ids []domain.EntityID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, " ")
}
