package rbac

import (
	"github.com/dmitrymomot/accesskit/pkg/scopes"
)

// Checker answers permission and route questions for a role.
// Both *Resolver and *Holder implement it.
type Checker interface {
	HasPermission(role Role, module Module, action Action) bool
	CanAccessRoute(role Role, path string, catalog RouteCatalog) bool
}

// Navigator filters a route catalog for a role.
type Navigator interface {
	VisibleNavigation(role Role, catalog RouteCatalog) []NavItem
}

// Resolver evaluates a PolicyTable. It is immutable after construction and
// safe for concurrent use without locking. Every query is total: unknown
// roles, modules, actions and routes are denied, never reported as errors.
type Resolver struct {
	roles    map[Role]*compiledRole
	sorted   []Role
	observer Observer
}

// NewResolver validates the table and builds a Resolver over a private copy of it.
// All returned errors wrap ErrConfiguration.
func NewResolver(table PolicyTable, opts ...Option) (*Resolver, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	roles, sorted, err := compile(table, o)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		roles:    roles,
		sorted:   sorted,
		observer: o.observer,
	}, nil
}

// MustNewResolver is like NewResolver but panics on a malformed table.
func MustNewResolver(table PolicyTable, opts ...Option) *Resolver {
	r, err := NewResolver(table, opts...)
	if err != nil {
		panic("rbac.MustNewResolver: " + err.Error())
	}
	return r
}

// HasPermission reports whether role may perform action on module.
// Absence of a grant is denial.
func (r *Resolver) HasPermission(role Role, module Module, action Action) bool {
	allowed, reason := r.check(role, module, action)
	r.notify(Decision{
		Role:    role,
		Module:  module,
		Action:  action,
		Allowed: allowed,
		Reason:  reason,
	})
	return allowed
}

// RolePermissions returns a copy of the role's merged grants in policy order.
// Unknown roles get an empty list.
func (r *Resolver) RolePermissions(role Role) []Grant {
	cr := r.lookup(role)
	if cr == nil {
		return []Grant{}
	}
	return cloneGrants(cr.grants)
}

// CanAccessRoute reports whether role may open the page registered under path.
// Routes missing from the catalog, or mapped to no module, are closed to every
// role including full-access ones. Otherwise read access on the route's module decides.
func (r *Resolver) CanAccessRoute(role Role, path string, catalog RouteCatalog) bool {
	route, ok := catalog.Lookup(path)
	if !ok || route.Module == "" {
		r.notify(Decision{
			Role:   role,
			Action: ActionRead,
			Route:  path,
			Reason: ReasonUnmappedRoute,
		})
		return false
	}

	allowed, reason := r.check(role, route.Module, ActionRead)
	r.notify(Decision{
		Role:    role,
		Module:  route.Module,
		Action:  ActionRead,
		Route:   path,
		Allowed: allowed,
		Reason:  reason,
	})
	return allowed
}

// VisibleNavigation returns the catalog entries the role may read, in catalog order.
// A full-access role receives the whole catalog unfiltered.
// The result never aliases the catalog.
func (r *Resolver) VisibleNavigation(role Role, catalog RouteCatalog) []NavItem {
	if r.IsFullAccess(role) {
		out := make([]NavItem, len(catalog))
		copy(out, catalog)
		return out
	}

	out := make([]NavItem, 0, len(catalog))
	for _, route := range catalog {
		if route.Module == "" {
			continue
		}
		if ok, _ := r.check(role, route.Module, ActionRead); ok {
			out = append(out, route)
		}
	}
	return out
}

// IsFullAccess reports whether the role carries the full-access flag.
func (r *Resolver) IsFullAccess(role Role) bool {
	cr := r.lookup(role)
	return cr != nil && cr.fullAccess
}

// Roles returns the known role names sorted alphabetically.
func (r *Resolver) Roles() []Role {
	if r == nil {
		return nil
	}
	out := make([]Role, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// Scopes renders the role's grants as sorted "module.action" scope strings.
// A full-access role is rendered as the single wildcard scope.
// Unknown roles and roles without grants return nil.
func (r *Resolver) Scopes(role Role) []string {
	cr := r.lookup(role)
	if cr == nil {
		return nil
	}
	if cr.fullAccess {
		return []string{scopes.ScopeWildcard}
	}

	out := make([]string, 0, len(cr.grants))
	for _, g := range cr.grants {
		for _, a := range g.Actions {
			out = append(out, scopes.Format(string(g.Module), string(a)))
		}
	}
	return scopes.NormalizeScopes(out)
}

// Table returns a deep copy of the effective policy, after duplicate grants were merged.
func (r *Resolver) Table() PolicyTable {
	if r == nil {
		return PolicyTable{}
	}
	out := make(PolicyTable, len(r.roles))
	for role, cr := range r.roles {
		out[role] = RoleEntry{
			Grants:     cloneGrants(cr.grants),
			FullAccess: cr.fullAccess,
		}
	}
	return out
}

func (r *Resolver) lookup(role Role) *compiledRole {
	if r == nil {
		return nil
	}
	return r.roles[role]
}

func (r *Resolver) check(role Role, module Module, action Action) (bool, Reason) {
	cr := r.lookup(role)
	switch {
	case cr == nil:
		return false, ReasonUnknownRole
	case module == "":
		return false, ReasonNoGrant
	case action == "":
		return false, ReasonActionDenied
	case cr.fullAccess:
		return true, ReasonFullAccess
	}

	actions, ok := cr.index[module]
	if !ok {
		return false, ReasonNoGrant
	}
	if _, ok := actions[action]; !ok {
		return false, ReasonActionDenied
	}
	return true, ReasonGranted
}

func (r *Resolver) notify(d Decision) {
	if r != nil && r.observer != nil {
		r.observer(d)
	}
}
