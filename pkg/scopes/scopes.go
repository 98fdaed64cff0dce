package scopes

import (
	"slices"
	"sort"
	"strings"
)

const (
	// ScopeSeparator separates scopes in a list string.
	ScopeSeparator = " "

	// ScopeWildcard matches every scope.
	ScopeWildcard = "*"

	// ScopeDelimiter separates the module from the action ("invoices.read").
	ScopeDelimiter = "."
)

// Format renders a module/action pair as a scope string.
func Format(module, action string) string {
	return module + ScopeDelimiter + action
}

// Split breaks a "<module>.<action>" scope into its parts.
// The action is everything after the last delimiter so module names may
// themselves be dotted ("reports.finance.read").
func Split(scope string) (module, action string, err error) {
	scope = strings.TrimSpace(scope)
	idx := strings.LastIndex(scope, ScopeDelimiter)
	if idx <= 0 || idx == len(scope)-1 {
		return "", "", ErrInvalidScope
	}
	return scope[:idx], scope[idx+1:], nil
}

// ParseScopes converts a space-separated string into a slice of scopes.
// Blank entries are dropped. Returns nil for empty input.
func ParseScopes(scopesStr string) []string {
	scopesStr = strings.TrimSpace(scopesStr)
	if scopesStr == "" {
		return nil
	}

	parts := strings.Split(scopesStr, ScopeSeparator)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// JoinScopes converts a slice of scopes back to a space-separated string.
func JoinScopes(scopes []string) string {
	if len(scopes) == 0 {
		return ""
	}
	return strings.Join(scopes, ScopeSeparator)
}

// ScopeMatches reports whether scope is covered by pattern.
//
//   - "invoices.read" matches "invoices.read"
//   - "*" matches anything
//   - "invoices.*" matches any scope starting with "invoices."
func ScopeMatches(scope, pattern string) bool {
	if scope == "" || pattern == "" {
		return false
	}
	if scope == pattern || pattern == ScopeWildcard {
		return true
	}

	if strings.HasSuffix(pattern, ScopeDelimiter+ScopeWildcard) {
		prefix := strings.TrimSuffix(pattern, ScopeWildcard)
		return strings.HasPrefix(scope, prefix) && len(scope) > len(prefix)
	}

	return false
}

// HasScope reports whether any of the granted scopes covers scope.
func HasScope(granted []string, scope string) bool {
	for _, g := range granted {
		if ScopeMatches(scope, g) {
			return true
		}
	}
	return false
}

// HasAllScopes reports whether every required scope is covered.
// An empty requirement is always satisfied.
func HasAllScopes(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if len(granted) == 0 {
		return false
	}
	if slices.Contains(granted, ScopeWildcard) {
		return true
	}

	for _, req := range required {
		if !HasScope(granted, req) {
			return false
		}
	}
	return true
}

// NormalizeScopes removes duplicates and sorts the scopes alphabetically.
// Returns nil for empty input.
func NormalizeScopes(scopes []string) []string {
	if len(scopes) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(scopes))
	result := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}

	sort.Strings(result)
	return result
}
