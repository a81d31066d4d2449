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

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the CRM",
	Long: `Signs in with email and password and stores the session under CRM_HOME
(default ~/.crm/session.json).

Missing flags are prompted for unless --non-interactive is set. The password
may also be supplied through CRM_PASSWORD for scripted use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		session, err := provider(ctx).Session(ctx)
		if err != nil {
			return err
		}

		email, password := loginEmail, loginPassword
		if password == "" {
			password = config.MustFromContext(ctx).Password
		}
		if strings.TrimSpace(email) == "" || password == "" {
			if !interactive(ctx) {
				return errors.New("--email and --password are required in non-interactive mode")
			}
			if err := promptCredentials(&email, &password); err != nil {
				return err
			}
		}

		ctx, cancel := client.EnsureTimeout(ctx, config.MustFromContext(ctx).RequestTimeout)
		defer cancel()
		result, err := session.Login(ctx, email, password)
		if err != nil {
			return fmt.Errorf("login failed: %s", sdk.UserMessage(err))
		}

		pterm.Success.Printf("Logged in as %s (%s)\n", result.User.DisplayName(), result.User.Role)
		return nil
	},
}

func promptCredentials(email, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(email).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("email is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(password),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to show login prompt: %w", err)
	}
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (or CRM_PASSWORD)")
}
