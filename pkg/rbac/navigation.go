package rbac

import (
	"encoding/json"
	"net/http"
)

// NavigationResponse is the body served by NavigationHandler.
type NavigationResponse struct {
	Role  Role      `json:"role"`
	Items []NavItem `json:"items"`
}

// NavigationHandler serves the request role's visible navigation as JSON.
// Requests without a role get the unauthorized response.
func NavigationHandler(nav Navigator, catalog RouteCatalog, opts ...GuardOption) http.Handler {
	cfg := newGuardConfig(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := cfg.extractor(r)
		if !ok {
			cfg.unauthorized.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(NavigationResponse{
			Role:  role,
			Items: nav.VisibleNavigation(role, catalog),
		})
	})
}
