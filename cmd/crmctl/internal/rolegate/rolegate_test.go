package rolegate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(items []NavItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Key)
	}
	return out
}

func TestVisibleItems(t *testing.T) {
	nav := DefaultNav()
	require.Len(t, nav, 10)

	operatorView := []string{ViewDashboard, ViewCustomers, ViewLoadshare, ViewOtherClients, ViewRecharge, ViewIssues}

	t.Run("operator sees only unrestricted items", func(t *testing.T) {
		for _, role := range []string{"operator", "Operator", " OPERATOR "} {
			assert.Equal(t, operatorView, keys(VisibleItems(nav, role)), role)
		}
	})

	t.Run("admin sees everything in order", func(t *testing.T) {
		for _, role := range []string{"admin", "ADMIN"} {
			assert.Equal(t, keys(nav), keys(VisibleItems(nav, role)), role)
		}
	})

	t.Run("empty role sees nothing", func(t *testing.T) {
		got := VisibleItems(nav, "")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unknown role sees unrestricted items", func(t *testing.T) {
		assert.Equal(t, operatorView, keys(VisibleItems(nav, "auditor")))
	})

	t.Run("role-specific item matches case-insensitively", func(t *testing.T) {
		items := []NavItem{{Key: "a"}, {Key: "b", RequiresRole: "Auditor"}}
		assert.Equal(t, []string{"a", "b"}, keys(VisibleItems(items, "auditor")))
		assert.Equal(t, []string{"a"}, keys(VisibleItems(items, "operator")))
	})
}

func TestVisibleItems_ThreeAdminOnly(t *testing.T) {
	items := make([]NavItem, 0, 10)
	for i, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		item := NavItem{Key: key}
		if i == 2 || i == 5 || i == 9 {
			item.RequiresRole = "admin"
		}
		items = append(items, item)
	}

	for _, role := range []string{"operator", "Operator"} {
		assert.Equal(t, []string{"a", "b", "d", "e", "g", "h", "i"}, keys(VisibleItems(items, role)), role)
	}
	for _, role := range []string{"admin", "ADMIN"} {
		assert.Equal(t, keys(items), keys(VisibleItems(items, role)), role)
	}
}

func TestResourceRole(t *testing.T) {
	assert.Equal(t, "admin", ResourceRole(DefaultNav(), "audit"))
	assert.Equal(t, "admin", ResourceRole(DefaultNav(), "auth/users"))
	assert.Equal(t, "", ResourceRole(DefaultNav(), "customers"))
	assert.Equal(t, "", ResourceRole(DefaultNav(), "notifications"))

	assert.True(t, CanRead(DefaultNav(), "audit", "Admin"))
	assert.False(t, CanRead(DefaultNav(), "audit", "operator"))
	assert.True(t, CanRead(DefaultNav(), "customers", "operator"))
	assert.False(t, CanRead(DefaultNav(), "customers", ""))
}

func TestFind(t *testing.T) {
	item, ok := Find(DefaultNav(), ViewAuditLog)
	require.True(t, ok)
	assert.Equal(t, "admin", item.RequiresRole)

	_, ok = Find(DefaultNav(), "Nope")
	assert.False(t, ok)
}

func TestGate_CanPerform(t *testing.T) {
	gate, err := NewGate()
	require.NoError(t, err)

	tests := []struct {
		action string
		role   string
		want   bool
	}{
		{ActionDeleteAll, "operator", false},
		{ActionDeleteAll, "admin", true},
		{ActionDeleteAll, "Admin", true},
		{ActionManageOperators, "operator", false},
		{ActionClearAudit, "operator", false},
		{ActionRegisterUser, "admin", true},
		{ActionImportRecords, "operator", false},
		{ActionDeleteRecord, "operator", true},
		{ActionDeleteRecord, "admin", true},
		{ActionExportRecords, "OPERATOR", true},
		{ActionDeleteRecord, "", false},
		{ActionDeleteRecord, "viewer", false},
		{"launch-missiles", "admin", false},
	}
	for _, tc := range tests {
		t.Run(tc.action+"/"+tc.role, func(t *testing.T) {
			assert.Equal(t, tc.want, gate.CanPerform(tc.action, tc.role))
		})
	}
}

func TestGate_Actions(t *testing.T) {
	gate := MustNewGate()
	assert.Equal(t, []string{ActionDeleteRecord, ActionExportRecords}, gate.Actions("operator"))
	assert.Equal(t, KnownActions(), gate.Actions("admin"))
	assert.Empty(t, gate.Actions(""))
}
