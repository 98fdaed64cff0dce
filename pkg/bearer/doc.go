// Package bearer reads the active role from HS256 JWTs
// (github.com/golang-jwt/jwt/v5).
//
// Authentication happens elsewhere; whoever issues the token vouches for the
// role claim. Tokens.RoleExtractor plugs into the rbac HTTP guards:
//
//	tokens, err := bearer.New(cfg)
//	if err != nil {
//	    return err
//	}
//	guard := rbac.RequireRoute(resolver, catalog, rbac.WithRoleExtractor(tokens.RoleExtractor()))
//
// Issue mints tokens for tooling and tests.
package bearer
