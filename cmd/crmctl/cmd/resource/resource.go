package resource

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/spf13/cobra"
)

// ResourceCmd is the parent command for browsing CRM collections
var ResourceCmd = &cobra.Command{
	Use:     "resource",
	Aliases: []string{"res"},
	Short:   "Browse CRM collections",
	Long: `List, inspect and delete records from the CRM backend.

Collections: ` + strings.Join(resourceNames(), ", "),
}

var gate = sync.OnceValue(rolegate.MustNewGate)

// resourceAliases maps accepted command-line names to backend collections.
var resourceAliases = map[string]string{
	"customers":     sdk.ResourceCustomers,
	"customer":      sdk.ResourceCustomers,
	"clusters":      sdk.ResourceClusters,
	"cluster":       sdk.ResourceClusters,
	"loadshare":     sdk.ResourceClusters,
	"other-clients": sdk.ResourceOtherClients,
	"otherclients":  sdk.ResourceOtherClients,
	"recharges":     sdk.ResourceRecharges,
	"recharge":      sdk.ResourceRecharges,
	"issues":        sdk.ResourceIssues,
	"issue":         sdk.ResourceIssues,
	"audit":         sdk.ResourceAudit,
	"audit-log":     sdk.ResourceAudit,
	"operators":     sdk.ResourceOperators,
	"notifications": sdk.ResourceNotifications,
	"users":         sdk.ResourceUsers,
}

func init() {
	ResourceCmd.AddCommand(listCmd)
	ResourceCmd.AddCommand(getCmd)
	ResourceCmd.AddCommand(deleteCmd)
}

func resolveResource(name string) (string, error) {
	resource, ok := resourceAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown collection %q (expected one of: %s)", name, strings.Join(resourceNames(), ", "))
	}
	return resource, nil
}

func resourceNames() []string {
	return []string{"audit", "clusters", "customers", "issues", "notifications", "operators", "other-clients", "recharges", "users"}
}

// openCollection resolves name and returns a resource client for it when the
// signed-in role may read the collection.
func openCollection(ctx context.Context, name string) (*sdk.ResourceClient, string, *sdk.UserSnapshot, error) {
	resource, err := resolveResource(name)
	if err != nil {
		return nil, "", nil, err
	}

	session, err := config.MustFromContext(ctx).ClientProvider.RequireSession(ctx)
	if err != nil {
		return nil, "", nil, err
	}
	user := session.User()
	if !rolegate.CanRead(rolegate.DefaultNav(), resource, user.Role) {
		return nil, "", nil, fmt.Errorf("%s is restricted to %s users", name, rolegate.ResourceRole(rolegate.DefaultNav(), resource))
	}
	return session.Resources(), resource, user, nil
}

func requireAction(action string, user *sdk.UserSnapshot) error {
	if !gate().CanPerform(action, user.Role) {
		return fmt.Errorf("%s is not permitted for role %q", action, user.Role)
	}
	return nil
}
