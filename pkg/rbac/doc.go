// Package rbac resolves role-based permissions for multi-role backends.
//
// A PolicyTable maps each Role to a list of Grants, each pairing a Module with
// the Actions allowed on it. A Resolver is built once from that table and then
// answers, without I/O or locking:
//
//   - HasPermission: may role R perform action A on module M?
//   - RolePermissions: the full grant list of R.
//   - CanAccessRoute: may R open the page at path P of a RouteCatalog?
//   - VisibleNavigation: which catalog entries R sees, in catalog order.
//
// Every query is fail-closed. An unknown role behaves exactly like a role with
// no grants, a missing grant means denial, and a route absent from the catalog
// is closed to everybody. Only NewResolver returns errors, all wrapping
// ErrConfiguration, so a broken policy stops the process at boot.
//
// # Full access
//
// A role whose RoleEntry sets FullAccess passes every permission check and
// receives the entire navigation catalog. The flag lives in the policy data,
// so any role name can carry it.
//
// # Usage
//
//	resolver, err := rbac.NewResolver(rbac.PolicyTable{
//	    "billing_specialist": {Grants: []rbac.Grant{
//	        {Module: "invoices", Actions: rbac.CRUD()},
//	        {Module: "patients", Actions: []rbac.Action{rbac.ActionRead}},
//	    }},
//	    "super_admin": {FullAccess: true},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resolver.HasPermission("billing_specialist", "invoices", rbac.ActionDelete) // true
//	resolver.HasPermission("billing_specialist", "settings", rbac.ActionRead)   // false
//
//	catalog := rbac.RouteCatalog{
//	    {Path: "/", Module: "dashboard", Label: "Dashboard"},
//	    {Path: "/patients", Module: "patients", Label: "Patients"},
//	}
//	items := resolver.VisibleNavigation("billing_specialist", catalog)
//
// # Policy documents
//
// ParseJSON and EncodeJSON convert between a PolicyTable and the document form
//
//	{"billing_specialist": [{"module": "invoices", "actions": ["read"]}], "super_admin": [{"*": true}]}
//
// PolicyDocument carries yaml tags as well, so other encodings reuse it.
//
// # Replacing the policy
//
// A Resolver never changes. To move to a new policy build a new Resolver and
// publish it through a Holder, which swaps an atomic pointer so concurrent
// queries always see one complete table.
//
// # HTTP
//
// RequireRoute and Require are net/http middlewares that read the role with a
// RoleExtractor and answer 401 when it is missing and 403 on denial.
// NavigationHandler serves the visible navigation as JSON.
package rbac
