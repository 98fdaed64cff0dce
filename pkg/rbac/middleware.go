package rbac

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// RoleExtractor resolves the active role of a request. The role must already
// be established as trustworthy by the authentication layer.
type RoleExtractor func(r *http.Request) (Role, bool)

// ContextRoleExtractor reads the role stored with SetRoleToContext.
func ContextRoleExtractor() RoleExtractor {
	return func(r *http.Request) (Role, bool) {
		return GetRoleFromContext(r.Context())
	}
}

// HeaderRoleExtractor reads the role from a request header set by a trusted
// upstream (e.g. an authenticating proxy).
func HeaderRoleExtractor(header string) RoleExtractor {
	return func(r *http.Request) (Role, bool) {
		role := strings.TrimSpace(r.Header.Get(header))
		return Role(role), role != ""
	}
}

// GuardOption configures the HTTP guards.
type GuardOption func(*guardConfig)

type guardConfig struct {
	extractor    RoleExtractor
	unauthorized http.Handler
	forbidden    http.Handler
	routeKey     func(r *http.Request) string
}

func newGuardConfig(opts []GuardOption) *guardConfig {
	cfg := &guardConfig{
		extractor:    ContextRoleExtractor(),
		unauthorized: statusHandler(http.StatusUnauthorized),
		forbidden:    statusHandler(http.StatusForbidden),
		routeKey:     chiRouteKey,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithRoleExtractor sets how the guard finds the request's role.
// Defaults to ContextRoleExtractor.
func WithRoleExtractor(e RoleExtractor) GuardOption {
	return func(c *guardConfig) {
		if e != nil {
			c.extractor = e
		}
	}
}

// WithUnauthorizedHandler replaces the 401 response sent when no role is present.
func WithUnauthorizedHandler(h http.Handler) GuardOption {
	return func(c *guardConfig) {
		if h != nil {
			c.unauthorized = h
		}
	}
}

// WithForbiddenHandler replaces the 403 response sent on denial,
// e.g. with a redirect to an "unauthorized" page.
func WithForbiddenHandler(h http.Handler) GuardOption {
	return func(c *guardConfig) {
		if h != nil {
			c.forbidden = h
		}
	}
}

// WithRouteKey sets how RequireRoute derives the catalog path of a request.
// Defaults to the matched chi route pattern, falling back to the URL path.
func WithRouteKey(fn func(r *http.Request) string) GuardOption {
	return func(c *guardConfig) {
		if fn != nil {
			c.routeKey = fn
		}
	}
}

// RequireRoute guards pages listed in catalog. Requests whose route is not in
// the catalog are refused. Mount it with chi's With so the route pattern is
// known when the guard runs.
func RequireRoute(checker Checker, catalog RouteCatalog, opts ...GuardOption) func(http.Handler) http.Handler {
	cfg := newGuardConfig(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := cfg.extractor(r)
			if !ok {
				cfg.unauthorized.ServeHTTP(w, r)
				return
			}
			if !checker.CanAccessRoute(role, cfg.routeKey(r), catalog) {
				cfg.forbidden.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetRoleToContext(r.Context(), role)))
		})
	}
}

// Require guards a feature that needs a specific action on a module,
// such as the delete button behind a page the role can already read.
func Require(checker Checker, module Module, action Action, opts ...GuardOption) func(http.Handler) http.Handler {
	cfg := newGuardConfig(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := cfg.extractor(r)
			if !ok {
				cfg.unauthorized.ServeHTTP(w, r)
				return
			}
			if !checker.HasPermission(role, module, action) {
				cfg.forbidden.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetRoleToContext(r.Context(), role)))
		})
	}
}

func chiRouteKey(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(code), code)
	})
}
