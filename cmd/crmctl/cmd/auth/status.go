package auth

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := provider(ctx)
		session, err := p.RequireSession(ctx)
		if err != nil {
			return err
		}
		user := session.User()

		pterm.DefaultSection.Println("Authentication Status")
		pterm.Info.Printf("Server: %s\n", p.ServerURL())
		pterm.Info.Printf("Signed in as: %s <%s>\n", user.DisplayName(), user.Email)
		pterm.Info.Printf("Role: %s\n", user.Role)
		pterm.Info.Printf("User ID: %s\n", user.ID)

		labels := make([]string, 0)
		for _, item := range rolegate.VisibleItems(rolegate.DefaultNav(), user.Role) {
			labels = append(labels, item.Label)
		}
		actions := gate().Actions(user.Role)
		if len(actions) == 0 {
			actions = []string{"-"}
		}

		pterm.DefaultSection.Println("Effective Permissions")
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ROLE\tPAGES\tACTIONS")
		fmt.Fprintf(w, "%s\t%s\t%s\n", user.Role, strings.Join(labels, ", "), strings.Join(actions, ", "))
		w.Flush()

		return nil
	},
}
