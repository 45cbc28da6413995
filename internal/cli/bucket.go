package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase"
)

// newBucketCommand creates the bucket command with its subcommands.
func newBucketCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bucket",
		Short: "Manage board columns",
	}
	cmd.AddCommand(
		newBucketNewCommand(c),
		newBucketRmCommand(c),
		newBucketReorderCommand(c),
	)
	return cmd
}

// newBucketNewCommand creates the bucket new subcommand.
func newBucketNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name  string
		State string
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a bucket",
		Long: `Create a bucket at the end of the board.

States: DRAFT, PENDING, TODO, ONGOING, ON_REVIEW, COMPLETED.`,
		Example: `  eqboard bucket new --name "Backlog" --state PENDING`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadBoard(cmd, c); err != nil {
				return err
			}
			out, err := c.CreateBucketUseCase().Execute(cmd.Context(), usecase.CreateBucketInput{
				Name:  opts.Name,
				State: domain.BucketState(strings.ToUpper(opts.State)),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created bucket #%s %q\n", out.Bucket.ID, out.Bucket.Label())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Bucket name (required)")
	cmd.Flags().StringVar(&opts.State, "state", "", "Bucket state (default TODO)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// newBucketRmCommand creates the bucket rm subcommand.
func newBucketRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an empty bucket",
		Long: `Delete a bucket. The backend refuses buckets that still hold tasks;
move or delete them first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucketID, err := parseID("bucket", args[0])
			if err != nil {
				return err
			}
			if _, err := loadBoard(cmd, c); err != nil {
				return err
			}
			if _, err := c.DeleteBucketUseCase().Execute(cmd.Context(), usecase.DeleteBucketInput{BucketID: bucketID}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted bucket #%s\n", bucketID)
			return nil
		},
	}
}

// newBucketReorderCommand creates the bucket reorder subcommand.
func newBucketReorderCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "reorder <id>...",
		Short:   "Set the bucket order",
		Long:    `Set the order of the project's buckets. Buckets not listed follow the listed ones in their current order.`,
		Example: `  eqboard bucket reorder 20 10 30`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("bucket", args)
			if err != nil {
				return err
			}
			if _, err := loadBoard(cmd, c); err != nil {
				return err
			}
			if _, err := c.ReorderBucketsUseCase().Execute(cmd.Context(), usecase.ReorderBucketsInput{BucketIDs: ids}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reordered buckets: %s\n", joinIDs(ids))
			return nil
		},
	}
}
