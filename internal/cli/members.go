package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/domain"
	"github.com/equilibra/eqboard/internal/usecase"
)

// newMembersCommand creates the members command. Without a subcommand it
// lists the members.
func newMembersCommand(c *app.Container) *cobra.Command {
	list := newMembersListCommand(c)

	cmd := &cobra.Command{
		Use:   "members",
		Short: "List or add project members",
		Args:  cobra.NoArgs,
		RunE:  list.RunE,
	}
	cmd.AddCommand(list, newMembersAddCommand(c))
	return cmd
}

// newMembersListCommand creates the members list subcommand.
func newMembersListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List project members",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := requireProject(c)
			if err != nil {
				return err
			}
			out, err := c.ListMembersUseCase().Execute(cmd.Context(), usecase.ListMembersInput{ProjectID: projectID})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Members) == 0 {
				_, _ = fmt.Fprintln(w, "No members.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "USER\tROLE\tGITHUB\tKPI\tLOAD")
			for i := range out.Members {
				m := &out.Members[i]
				gh := m.GHUsername
				if gh == "" {
					gh = "-"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%d/%d (%.0f%%)\n",
					m.UserID, m.Role, gh, m.KPIScore, m.CurrentLoad, m.MaxCapacity, m.Utilisation()*100)
			}
			return tw.Flush()
		},
	}
}

// newMembersAddCommand creates the members add subcommand.
func newMembersAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		User string
		Role string
	}

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a user to the project",
		Example: `  eqboard members add --user 7 --role DESIGNER`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectID, err := requireProject(c)
			if err != nil {
				return err
			}
			userID, err := parseID("user", opts.User)
			if err != nil {
				return err
			}
			out, err := c.AddMemberUseCase().Execute(cmd.Context(), usecase.AddMemberInput{
				ProjectID: projectID,
				UserID:    userID,
				Role:      domain.MemberRole(strings.ToUpper(opts.Role)),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added user %s as %s\n", out.Member.UserID, out.Member.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.User, "user", "", "User ID (required)")
	cmd.Flags().StringVar(&opts.Role, "role", "", "Role: OWNER, MANAGER, PROGRAMMER, DESIGNER, ANALYST (default PROGRAMMER)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
