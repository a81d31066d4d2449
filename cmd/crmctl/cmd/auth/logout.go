package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/client"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutReason string

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of the CRM",
	Long: fmt.Sprintf(`Notifies the backend and removes the stored session.

Operators must give a reason of at least %d characters (--reason or prompt).
The local session is removed even when the backend cannot be reached.`, sdk.MinLogoutReasonLen),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		session, err := provider(ctx).Session(ctx)
		if err != nil {
			return err
		}

		if !session.Authenticated() {
			session.Logout(ctx, "")
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}

		role := session.User().Role
		reason := strings.TrimSpace(logoutReason)
		if err := sdk.ValidateLogoutReason(role, reason); err != nil {
			if !interactive(ctx) {
				return err
			}
			if reason, err = promptReason(role); err != nil {
				return err
			}
		}

		ctx, cancel := client.EnsureTimeout(ctx, config.MustFromContext(ctx).RequestTimeout)
		defer cancel()
		session.Logout(ctx, reason)

		pterm.Success.Println("Logged out successfully")
		return nil
	},
}

func promptReason(role string) (string, error) {
	var reason string
	field := huh.NewText().
		Title("Why are you logging out?").
		Description(fmt.Sprintf("At least %d characters, recorded in the audit log.", sdk.MinLogoutReasonLen)).
		Value(&reason).
		Validate(func(s string) error {
			if err := sdk.ValidateLogoutReason(role, s); err != nil {
				var verr *sdk.ValidationError
				if errors.As(err, &verr) {
					return errors.New(verr.Message)
				}
				return err
			}
			return nil
		})
	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return "", fmt.Errorf("failed to show logout prompt: %w", err)
	}
	return strings.TrimSpace(reason), nil
}

func init() {
	logoutCmd.Flags().StringVar(&logoutReason, "reason", "", "Reason for logging out (required for operators)")
}
