package rbac

import "context"

// roleCtxKey is the context key for the active role.
type roleCtxKey struct{}

// SetRoleToContext stores the session's active role in the context.
func SetRoleToContext(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// GetRoleFromContext retrieves the active role from the context.
// An empty role counts as absent.
func GetRoleFromContext(ctx context.Context) (Role, bool) {
	if ctx == nil {
		return "", false
	}
	role, ok := ctx.Value(roleCtxKey{}).(Role)
	return role, ok && role != ""
}
