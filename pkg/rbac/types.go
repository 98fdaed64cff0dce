package rbac

// Role is an authorization identity tag assigned to an authenticated session.
// Roles are opaque to the resolver; it never derives meaning from the name.
type Role string

// Module names a functional area subject to access control
// (e.g. "patients", "invoices", "settings").
type Module string

// Action is an operation category evaluated against a module.
// The type is open; a deployment may close the set with WithAllowedActions.
type Action string

// Well-known actions.
const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CRUD returns the four well-known actions in canonical order.
func CRUD() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}

// Grant pairs one module with the actions permitted on it.
type Grant struct {
	Module  Module   `json:"module"`
	Actions []Action `json:"actions"`
}

// Allows reports whether the grant includes the action.
func (g Grant) Allows(action Action) bool {
	for _, a := range g.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// RoleEntry is the policy of a single role.
type RoleEntry struct {
	// Grants lists the modules the role may touch, in policy order.
	Grants []Grant

	// FullAccess lets the role pass every permission check and see the whole
	// navigation catalog. Unmapped routes stay closed.
	FullAccess bool
}

// PolicyTable maps every known role to its policy.
type PolicyTable map[Role]RoleEntry

// Clone returns a deep copy of the table.
func (t PolicyTable) Clone() PolicyTable {
	if t == nil {
		return nil
	}
	out := make(PolicyTable, len(t))
	for role, entry := range t {
		out[role] = RoleEntry{
			Grants:     cloneGrants(entry.Grants),
			FullAccess: entry.FullAccess,
		}
	}
	return out
}

func cloneGrants(grants []Grant) []Grant {
	out := make([]Grant, len(grants))
	for i, g := range grants {
		actions := make([]Action, len(g.Actions))
		copy(actions, g.Actions)
		out[i] = Grant{Module: g.Module, Actions: actions}
	}
	return out
}

// Route describes one navigable page. A route with an empty Module is
// unmapped and nobody may open it.
type Route struct {
	Path   string `json:"path" yaml:"path" validate:"required,startswith=/"`
	Module Module `json:"module,omitempty" yaml:"module,omitempty"`
	Label  string `json:"label" yaml:"label" validate:"required"`
	Icon   string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// NavItem is a catalog entry returned by VisibleNavigation.
type NavItem = Route

// RouteCatalog is the ordered list of navigable pages owned by the routing
// layer. The resolver reads it for the duration of a single call only.
type RouteCatalog []Route

// Lookup returns the first route registered under path.
func (c RouteCatalog) Lookup(path string) (Route, bool) {
	for _, r := range c {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Modules returns the distinct modules referenced by the catalog in first-seen order.
func (c RouteCatalog) Modules() []Module {
	seen := make(map[Module]struct{}, len(c))
	out := make([]Module, 0, len(c))
	for _, r := range c {
		if r.Module == "" {
			continue
		}
		if _, ok := seen[r.Module]; ok {
			continue
		}
		seen[r.Module] = struct{}{}
		out = append(out, r.Module)
	}
	return out
}
