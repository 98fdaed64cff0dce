package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesskit/pkg/bearer"
	"github.com/dmitrymomot/accesskit/pkg/environment"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

func TestRoleExtractor(t *testing.T) {
	t.Parallel()

	newLog := func() (*slog.Logger, *bytes.Buffer) {
		var buf bytes.Buffer
		return slog.New(slog.NewTextHandler(&buf, nil)), &buf
	}

	t.Run("header in production warns", func(t *testing.T) {
		t.Parallel()
		log, buf := newLog()
		extract, err := roleExtractor(appConfig{RoleHeader: "X-Role"}, environment.Production, log)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "BEARER_SECRET is not set")
		assert.Contains(t, buf.String(), "level=WARN")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Role", "super_admin")
		role, ok := extract(req)
		assert.True(t, ok)
		assert.Equal(t, rbac.Role("super_admin"), role)
	})

	t.Run("header in development is quiet", func(t *testing.T) {
		t.Parallel()
		log, buf := newLog()
		_, err := roleExtractor(appConfig{RoleHeader: "X-Role"}, environment.Development, log)
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("bearer secret ignores the header", func(t *testing.T) {
		t.Parallel()
		log, buf := newLog()
		cfg := appConfig{
			RoleHeader: "X-Role",
			Bearer:     bearer.Config{Secret: "rbacd-test-secret", Issuer: "accesskit"},
		}
		extract, err := roleExtractor(cfg, environment.Production, log)
		require.NoError(t, err)
		assert.Empty(t, buf.String())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Role", "super_admin")
		_, ok := extract(req)
		assert.False(t, ok)

		tokens, err := bearer.New(cfg.Bearer)
		require.NoError(t, err)
		token, err := tokens.Issue("receptionist", "user-1")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		role, ok := extract(req)
		assert.True(t, ok)
		assert.Equal(t, rbac.Role("receptionist"), role)
	})
}
