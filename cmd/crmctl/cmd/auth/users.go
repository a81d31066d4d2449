package auth

import (
	"fmt"
	"text/tabwriter"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/client"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List CRM users (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		session, err := requireAction(ctx, rolegate.ActionManageOperators)
		if err != nil {
			return err
		}

		ctx, cancel := client.EnsureTimeout(ctx, config.MustFromContext(ctx).RequestTimeout)
		defer cancel()
		users, err := session.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
		}
		w.Flush()
		return nil
	},
}
