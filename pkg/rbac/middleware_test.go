package rbac_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

const roleHeader = "X-Role"

func okHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := rbac.GetRoleFromContext(r.Context())
		require.True(t, ok, "guard stores the role for downstream handlers")
		_, _ = w.Write([]byte(role))
	})
}

func TestRequireRoute(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t)
	catalog := append(getTestCatalog(), rbac.Route{Path: "/patients/{id}", Module: "patients", Label: "Patient"})
	guard := rbac.RequireRoute(r, catalog, rbac.WithRoleExtractor(rbac.HeaderRoleExtractor(roleHeader)))

	router := chi.NewRouter()
	router.With(guard).Get("/", okHandler(t).ServeHTTP)
	router.With(guard).Get("/patients", okHandler(t).ServeHTTP)
	router.With(guard).Get("/patients/{id}", okHandler(t).ServeHTTP)
	router.With(guard).Get("/settings", okHandler(t).ServeHTTP)
	router.With(guard).Get("/unlisted", okHandler(t).ServeHTTP)

	tests := []struct {
		name     string
		role     string
		path     string
		wantCode int
	}{
		{name: "allowed page", role: "receptionist", path: "/patients", wantCode: http.StatusOK},
		{name: "pattern route", role: "receptionist", path: "/patients/42", wantCode: http.StatusOK},
		{name: "denied page", role: "receptionist", path: "/settings", wantCode: http.StatusForbidden},
		{name: "route missing from catalog", role: "root", path: "/unlisted", wantCode: http.StatusForbidden},
		{name: "full access", role: "root", path: "/settings", wantCode: http.StatusOK},
		{name: "unknown role", role: "ghost", path: "/", wantCode: http.StatusForbidden},
		{name: "no role", role: "", path: "/", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.role != "" {
				req.Header.Set(roleHeader, tt.role)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.role, rec.Body.String())
			}
		})
	}
}

func TestRequireRoute_WithoutChi(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t)
	handler := rbac.RequireRoute(r, getTestCatalog())(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	req = req.WithContext(rbac.SetRoleToContext(req.Context(), "receptionist"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/settings", nil)
	req = req.WithContext(rbac.SetRoleToContext(req.Context(), "receptionist"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoute_CustomHandlers(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t)
	redirect := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/unauthorized", http.StatusSeeOther)
	})
	login := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/login", http.StatusSeeOther)
	})
	handler := rbac.RequireRoute(r, getTestCatalog(),
		rbac.WithForbiddenHandler(redirect),
		rbac.WithUnauthorizedHandler(login),
		rbac.WithRouteKey(func(req *http.Request) string { return req.URL.Query().Get("page") }),
	)(okHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/anything?page=/settings", nil)
	req = req.WithContext(rbac.SetRoleToContext(req.Context(), "receptionist"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/unauthorized", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/anything?page=/patients", nil)
	req = req.WithContext(rbac.SetRoleToContext(req.Context(), "receptionist"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/anything?page=/patients", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequire(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t)
	deleteInvoice := rbac.Require(r, "invoices", rbac.ActionDelete,
		rbac.WithRoleExtractor(rbac.HeaderRoleExtractor(roleHeader)))(okHandler(t))

	tests := []struct {
		role     string
		wantCode int
	}{
		{role: "billing_specialist", wantCode: http.StatusOK},
		{role: "receptionist", wantCode: http.StatusForbidden},
		{role: "root", wantCode: http.StatusOK},
		{role: "  ", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodDelete, "/invoices/1", nil)
			req.Header.Set(roleHeader, tt.role)
			rec := httptest.NewRecorder()
			deleteInvoice.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestNavigationHandler(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t)
	handler := rbac.NavigationHandler(r, getTestCatalog(), rbac.WithRoleExtractor(rbac.HeaderRoleExtractor(roleHeader)))

	t.Run("visible items", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
		req.Header.Set(roleHeader, "receptionist")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body rbac.NavigationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, rbac.Role("receptionist"), body.Role)
		require.Len(t, body.Items, 2)
		assert.Equal(t, "/", body.Items[0].Path)
		assert.Equal(t, "/patients", body.Items[1].Path)
	})

	t.Run("unknown role gets an empty list", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
		req.Header.Set(roleHeader, "ghost")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"role": "ghost", "items": []}`, rec.Body.String())
	})

	t.Run("no role", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/navigation", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
