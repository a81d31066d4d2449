package rolegate

import (
	_ "embed"
	"fmt"

	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var casbinModelContent string

// Gate answers action-level permission questions using a casbin enforcer
// over the built-in action table.
type Gate struct {
	enforcer casbin.IEnforcer
}

// NewGate builds the enforcer from the embedded model and the action table.
func NewGate() (*Gate, error) {
	m, err := model.NewModelFromString(casbinModelContent)
	if err != nil {
		return nil, fmt.Errorf("parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	policies := make([][]string, 0, len(actionPolicy))
	for _, action := range KnownActions() {
		policies = append(policies, []string{actionPolicy[action], action})
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("load action policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicy(sdk.RoleAdmin, sdk.RoleOperator); err != nil {
		return nil, fmt.Errorf("load role hierarchy: %w", err)
	}

	return &Gate{enforcer: enforcer}, nil
}

// MustNewGate is NewGate for package-level wiring; the embedded model is
// fixed, so a failure is a programming error.
func MustNewGate() *Gate {
	g, err := NewGate()
	if err != nil {
		panic(err)
	}
	return g
}

// CanPerform reports whether role may perform action. Roles compare
// case-insensitively; an empty role and unknown actions are denied.
func (g *Gate) CanPerform(action, role string) bool {
	role = sdk.NormalizeRole(role)
	if role == "" {
		return false
	}
	if _, known := actionPolicy[action]; !known {
		return false
	}
	ok, err := g.enforcer.Enforce(role, action)
	return err == nil && ok
}

// Actions returns the known actions role may perform, in table order.
func (g *Gate) Actions(role string) []string {
	var allowed []string
	for _, action := range KnownActions() {
		if g.CanPerform(action, role) {
			allowed = append(allowed, action)
		}
	}
	return allowed
}
