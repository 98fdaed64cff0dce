// Package scopes renders and matches OAuth-style scope strings.
//
// A scope is an opaque token such as "invoices.read". Scope lists are joined
// with a single space ("patients.read invoices.update") so they fit into a
// token claim or a response header.
//
// The package understands three conventions:
//
//   - ScopeSeparator (" ") between scopes inside a list string.
//   - ScopeDelimiter (".") between the module and the action of a grant scope.
//   - ScopeWildcard ("*") matching everything, or everything inside a module
//     when used as a suffix ("invoices.*").
//
// # Usage
//
//	granted := scopes.ParseScopes("patients.read invoices.*")
//
//	scopes.HasScope(granted, scopes.Format("invoices", "delete")) // true
//	scopes.HasScope(granted, "patients.update")                  // false
//
//	module, action, err := scopes.Split("invoices.delete")
//
// NormalizeScopes deduplicates and sorts a list so two renderings of the same
// grant set compare equal.
package scopes
