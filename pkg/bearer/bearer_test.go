package bearer_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesskit/pkg/bearer"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

const secret = "test-secret-with-enough-entropy"

func newTokens(t *testing.T, cfg bearer.Config) *bearer.Tokens {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = secret
	}
	tokens, err := bearer.New(cfg)
	require.NoError(t, err)
	return tokens
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := bearer.New(bearer.Config{})
	assert.ErrorIs(t, err, bearer.ErrEmptySecret)
}

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t, bearer.Config{Issuer: "accesskit"})
	token, err := tokens.Issue("receptionist", "user-42")
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, rbac.Role("receptionist"), claims.Role)
	assert.Equal(t, "user-42", claims.Subject)

	_, err = tokens.Issue(" ", "user-42")
	assert.ErrorIs(t, err, bearer.ErrMissingRole)
}

func TestParse_CustomClaim(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t, bearer.Config{Claim: "https://example.com/role"})
	token, err := tokens.Issue("billing_specialist", "")
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, rbac.Role("billing_specialist"), claims.Role)

	other := newTokens(t, bearer.Config{})
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, bearer.ErrMissingRole)
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t, bearer.Config{Issuer: "accesskit"})

	sign := func(claims jwt.MapClaims, method jwt.SigningMethod, key any) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := map[string]string{
		"garbage":       "not-a-token",
		"wrong secret":  sign(jwt.MapClaims{"role": "receptionist", "iss": "accesskit", "exp": exp}, jwt.SigningMethodHS256, []byte("other")),
		"expired":       sign(jwt.MapClaims{"role": "receptionist", "iss": "accesskit", "exp": jwt.NewNumericDate(time.Now().Add(-time.Hour))}, jwt.SigningMethodHS256, []byte(secret)),
		"no expiry":     sign(jwt.MapClaims{"role": "receptionist", "iss": "accesskit"}, jwt.SigningMethodHS256, []byte(secret)),
		"wrong issuer":  sign(jwt.MapClaims{"role": "receptionist", "iss": "someone-else", "exp": exp}, jwt.SigningMethodHS256, []byte(secret)),
		"wrong method":  sign(jwt.MapClaims{"role": "receptionist", "iss": "accesskit", "exp": exp}, jwt.SigningMethodHS512, []byte(secret)),
		"unsigned none": sign(jwt.MapClaims{"role": "receptionist", "iss": "accesskit", "exp": exp}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := tokens.Parse(token)
			assert.ErrorIs(t, err, bearer.ErrInvalidToken)
		})
	}
}

func TestRoleExtractor(t *testing.T) {
	t.Parallel()

	tokens := newTokens(t, bearer.Config{})
	token, err := tokens.Issue("receptionist", "user-1")
	require.NoError(t, err)

	resolver := rbac.MustNewResolver(rbac.PolicyTable{
		"receptionist": {Grants: []rbac.Grant{{Module: "patients", Actions: []rbac.Action{"read"}}}},
	})
	catalog := rbac.RouteCatalog{{Path: "/patients", Module: "patients", Label: "Patients"}}
	handler := rbac.RequireRoute(resolver, catalog, rbac.WithRoleExtractor(tokens.RoleExtractor()))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid token", header: "Bearer " + token, want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + token, want: http.StatusOK},
		{name: "no header", header: "", want: http.StatusUnauthorized},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", want: http.StatusUnauthorized},
		{name: "tampered token", header: "Bearer " + token + "x", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/patients", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
