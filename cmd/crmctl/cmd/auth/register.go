package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/client"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var registerInput sdk.RegisterInput

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a CRM user (admin only)",
	Long: `Creates a user account on the CRM backend. Requires an admin session.

Missing fields are prompted for unless --non-interactive is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		session, err := requireAction(ctx, rolegate.ActionRegisterUser)
		if err != nil {
			return err
		}

		input := registerInput
		if input.Role == "" {
			input.Role = sdk.RoleOperator
		}
		if missingRegisterFields(input) {
			if !interactive(ctx) {
				return errors.New("--name, --email and --password are required in non-interactive mode")
			}
			if err := promptRegister(&input); err != nil {
				return err
			}
		}

		ctx, cancel := client.EnsureTimeout(ctx, config.MustFromContext(ctx).RequestTimeout)
		defer cancel()
		user, err := session.Register(ctx, input)
		if err != nil {
			var verr *sdk.ValidationError
			if errors.As(err, &verr) {
				return err
			}
			return fmt.Errorf("register failed: %s", sdk.UserMessage(err))
		}

		pterm.Success.Printf("Created %s <%s> with role %s\n", user.DisplayName(), user.Email, user.Role)
		return nil
	},
}

func missingRegisterFields(in sdk.RegisterInput) bool {
	return strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == ""
}

func promptRegister(in *sdk.RegisterInput) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&in.Name),
			huh.NewInput().Title("Email").Value(&in.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&in.Password),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Operator", sdk.RoleOperator),
					huh.NewOption("Admin", sdk.RoleAdmin),
				).
				Value(&in.Role),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to show register prompt: %w", err)
	}
	return nil
}

func init() {
	registerCmd.Flags().StringVar(&registerInput.Name, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerInput.Email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerInput.Password, "password", "", "Initial password")
	registerCmd.Flags().StringVar(&registerInput.Role, "role", sdk.RoleOperator, "Role: operator or admin")
}
