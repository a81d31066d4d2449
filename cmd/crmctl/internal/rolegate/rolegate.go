// Package rolegate decides which navigation items and actions a role unlocks.
// It is a pure function of the role string; it never reads the session.
package rolegate

import (
	"strings"

	"github.com/Rahul675/indyanet-crm/pkg/sdk"
)

// View keys rendered by the console.
const (
	ViewDashboard    = "Dashboard"
	ViewCustomers    = "Customers"
	ViewLoadshare    = "Loadshare"
	ViewOtherClients = "Other Clients"
	ViewRecharge     = "Recharge"
	ViewIssues       = "Issues"
	ViewReports      = "Reports"
	ViewAuditLog     = "Audit Log"
	ViewOperators    = "Operators"
	ViewSettings     = "Settings"
	ViewProfile      = "Profile"
)

// NavItem is one sidebar entry. An empty RequiresRole means any signed-in user.
type NavItem struct {
	Key          string
	Label        string
	RequiresRole string
	// Resource is the backend collection listed by the page, if any.
	Resource string
}

// DefaultNav returns the sidebar in display order.
func DefaultNav() []NavItem {
	return []NavItem{
		{Key: ViewDashboard, Label: "Dashboard"},
		{Key: ViewCustomers, Label: "Customers", Resource: sdk.ResourceCustomers},
		{Key: ViewLoadshare, Label: "Loadshare", Resource: sdk.ResourceClusters},
		{Key: ViewOtherClients, Label: "Other Clients", Resource: sdk.ResourceOtherClients},
		{Key: ViewRecharge, Label: "Recharge", Resource: sdk.ResourceRecharges},
		{Key: ViewIssues, Label: "Issues", Resource: sdk.ResourceIssues},
		{Key: ViewReports, Label: "Reports", RequiresRole: sdk.RoleAdmin},
		{Key: ViewAuditLog, Label: "Audit Log", RequiresRole: sdk.RoleAdmin, Resource: sdk.ResourceAudit},
		{Key: ViewOperators, Label: "Operators", RequiresRole: sdk.RoleAdmin, Resource: sdk.ResourceOperators},
		{Key: ViewSettings, Label: "Settings", RequiresRole: sdk.RoleAdmin},
	}
}

// VisibleItems filters items down to those role may see, preserving order.
// Admin sees everything; an empty role sees nothing.
func VisibleItems(items []NavItem, role string) []NavItem {
	role = sdk.NormalizeRole(role)
	if role == "" {
		return []NavItem{}
	}
	visible := make([]NavItem, 0, len(items))
	for _, item := range items {
		if role == sdk.RoleAdmin || item.RequiresRole == "" || strings.EqualFold(item.RequiresRole, role) {
			visible = append(visible, item)
		}
	}
	return visible
}

// ResourceRole returns the role required to read a backend collection: the
// role of the nav item listing it, or admin for the user directory.
func ResourceRole(items []NavItem, resource string) string {
	if resource == sdk.ResourceUsers {
		return sdk.RoleAdmin
	}
	for _, item := range items {
		if item.Resource == resource {
			return item.RequiresRole
		}
	}
	return ""
}

// CanRead reports whether role may list resource.
func CanRead(items []NavItem, resource, role string) bool {
	role = sdk.NormalizeRole(role)
	if role == "" {
		return false
	}
	required := ResourceRole(items, resource)
	return required == "" || role == sdk.RoleAdmin || strings.EqualFold(required, role)
}

// Find returns the item with key.
func Find(items []NavItem, key string) (NavItem, bool) {
	for _, item := range items {
		if item.Key == key {
			return item, true
		}
	}
	return NavItem{}, false
}
