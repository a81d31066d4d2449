package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/client"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/spf13/cobra"
)

// AuthCmd is the parent command for auth operations
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for signing in and out of the CRM, inspecting the session and managing users.`,
}

var gate = sync.OnceValue(rolegate.MustNewGate)

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(exportCmd)
	AuthCmd.AddCommand(registerCmd)
	AuthCmd.AddCommand(usersCmd)
}

func provider(ctx context.Context) *client.Provider {
	return config.MustFromContext(ctx).ClientProvider
}

// requireAction returns the signed-in session when its role may perform action.
func requireAction(ctx context.Context, action string) (*sdk.SessionClient, error) {
	session, err := provider(ctx).RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	user := session.User()
	if !gate().CanPerform(action, user.Role) {
		return nil, fmt.Errorf("%s is not permitted for role %q", action, user.Role)
	}
	return session, nil
}

func interactive(ctx context.Context) bool {
	return !config.MustFromContext(ctx).NonInteractive
}
