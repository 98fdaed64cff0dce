package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/dmitrymomot/accesskit/pkg/httpserver"
	"github.com/dmitrymomot/accesskit/pkg/logger"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
	"github.com/dmitrymomot/accesskit/pkg/requestid"
)

// accessReader is the query surface of rbac.Holder used by the API.
type accessReader interface {
	rbac.Checker
	rbac.Navigator
	RolePermissions(role rbac.Role) []rbac.Grant
	Scopes(role rbac.Role) []string
	IsFullAccess(role rbac.Role) bool
}

type api struct {
	access    accessReader
	catalog   rbac.RouteCatalog
	extractor rbac.RoleExtractor
	log       *slog.Logger
	rateLimit int // requests per minute per client IP on /api; 0 disables
}

type permissionsResponse struct {
	Role       rbac.Role    `json:"role"`
	FullAccess bool         `json:"full_access"`
	Grants     []rbac.Grant `json:"grants"`
	Scopes     []string     `json:"scopes"`
}

type checkResponse struct {
	Role    rbac.Role   `json:"role"`
	Module  rbac.Module `json:"module"`
	Action  rbac.Action `json:"action"`
	Allowed bool        `json:"allowed"`
}

type pageResponse struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

func newRouter(a *api, ready http.Handler) http.Handler {
	guardOpts := []rbac.GuardOption{rbac.WithRoleExtractor(a.extractor)}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(a.logRequests)

	r.Get("/health/live", httpserver.Liveness())
	r.Method(http.MethodGet, "/health/ready", ready)

	r.Route("/api", func(r chi.Router) {
		if a.rateLimit > 0 {
			r.Use(httprate.Limit(a.rateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		}
		r.Method(http.MethodGet, "/navigation", rbac.NavigationHandler(a.access, a.catalog, guardOpts...))
		r.Get("/permissions", a.permissions)
		r.Get("/check", a.check)
	})

	// Pages are mounted from the same catalog the guard consults, so a page
	// cannot exist without a catalog entry.
	guard := rbac.RequireRoute(a.access, a.catalog, guardOpts...)
	for _, route := range a.catalog {
		r.With(guard).Get(route.Path, a.page(route))
	}

	return r
}

func (a *api) permissions(w http.ResponseWriter, r *http.Request) {
	role, ok := a.extractor(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	scopes := a.access.Scopes(role)
	if scopes == nil {
		scopes = []string{}
	}
	writeJSON(w, http.StatusOK, permissionsResponse{
		Role:       role,
		FullAccess: a.access.IsFullAccess(role),
		Grants:     a.access.RolePermissions(role),
		Scopes:     scopes,
	})
}

func (a *api) check(w http.ResponseWriter, r *http.Request) {
	role, ok := a.extractor(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	q := r.URL.Query()
	module, action := rbac.Module(q.Get("module")), rbac.Action(q.Get("action"))
	if module == "" || action == "" {
		http.Error(w, "module and action query parameters are required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{
		Role:    role,
		Module:  module,
		Action:  action,
		Allowed: a.access.HasPermission(role, module, action),
	})
}

func (a *api) page(route rbac.Route) http.HandlerFunc {
	body := pageResponse{Path: route.Path, Label: route.Label, Icon: route.Icon}
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}

func (a *api) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.log.InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
