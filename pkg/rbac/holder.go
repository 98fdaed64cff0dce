package rbac

import (
	"context"
	"sync/atomic"
)

// Holder publishes a Resolver through an atomic pointer. Replacing the policy
// means building a new Resolver and storing it; in-flight queries keep using
// the table they started with.
type Holder struct {
	current atomic.Pointer[Resolver]
}

// NewHolder returns a Holder publishing r.
func NewHolder(r *Resolver) *Holder {
	h := &Holder{}
	h.current.Store(r)
	return h
}

// Load returns the currently published resolver.
func (h *Holder) Load() *Resolver {
	return h.current.Load()
}

// Store publishes r and returns the resolver it replaced.
func (h *Holder) Store(r *Resolver) *Resolver {
	return h.current.Swap(r)
}

// Rebuild builds a new resolver from source and publishes it. On any error
// the previously published resolver stays in place.
func (h *Holder) Rebuild(ctx context.Context, source PolicySource, opts ...Option) error {
	r, err := NewResolverFromSource(ctx, source, opts...)
	if err != nil {
		return err
	}
	h.current.Store(r)
	return nil
}

// HasPermission delegates to the published resolver.
func (h *Holder) HasPermission(role Role, module Module, action Action) bool {
	return h.Load().HasPermission(role, module, action)
}

// CanAccessRoute delegates to the published resolver.
func (h *Holder) CanAccessRoute(role Role, path string, catalog RouteCatalog) bool {
	return h.Load().CanAccessRoute(role, path, catalog)
}

// VisibleNavigation delegates to the published resolver.
func (h *Holder) VisibleNavigation(role Role, catalog RouteCatalog) []NavItem {
	return h.Load().VisibleNavigation(role, catalog)
}

// RolePermissions delegates to the published resolver.
func (h *Holder) RolePermissions(role Role) []Grant {
	return h.Load().RolePermissions(role)
}

// Scopes delegates to the published resolver.
func (h *Holder) Scopes(role Role) []string {
	return h.Load().Scopes(role)
}

// IsFullAccess delegates to the published resolver.
func (h *Holder) IsFullAccess(role Role) bool {
	return h.Load().IsFullAccess(role)
}
