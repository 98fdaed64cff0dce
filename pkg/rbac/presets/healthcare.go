// Package presets ships ready-made policies for common deployments.
package presets

import "github.com/dmitrymomot/accesskit/pkg/rbac"

// Healthcare practice roles.
const (
	RolePatient            rbac.Role = "patient"
	RoleSuperAdmin         rbac.Role = "super_admin"
	RoleHealthcareProvider rbac.Role = "healthcare_provider"
	RolePracticeManager    rbac.Role = "practice_manager"
	RoleReceptionist       rbac.Role = "receptionist"
	RoleBillingSpecialist  rbac.Role = "billing_specialist"
)

// Healthcare practice modules.
const (
	ModuleDashboard rbac.Module = "dashboard"
	ModulePatients  rbac.Module = "patients"
	ModuleSessions  rbac.Module = "sessions"
	ModuleOrders    rbac.Module = "orders"
	ModuleInvoices  rbac.Module = "invoices"
	ModuleTasks     rbac.Module = "tasks"
	ModuleProducts  rbac.Module = "products"
	ModuleTags      rbac.Module = "tags"
	ModuleDiscounts rbac.Module = "discounts"
	ModuleReports   rbac.Module = "reports"
	ModuleUsers     rbac.Module = "users"
	ModuleSettings  rbac.Module = "settings"
	ModuleProfile   rbac.Module = "profile"
)

func readOnly() []rbac.Action { return []rbac.Action{rbac.ActionRead} }

func readWrite() []rbac.Action {
	return []rbac.Action{rbac.ActionCreate, rbac.ActionRead, rbac.ActionUpdate}
}

func readUpdate() []rbac.Action { return []rbac.Action{rbac.ActionRead, rbac.ActionUpdate} }

// Healthcare returns the policy of a healthcare practice admin application.
// Each call returns a fresh table.
func Healthcare() rbac.PolicyTable {
	return rbac.PolicyTable{
		RoleSuperAdmin: {FullAccess: true},
		RolePracticeManager: {Grants: []rbac.Grant{
			{Module: ModuleDashboard, Actions: readOnly()},
			{Module: ModulePatients, Actions: rbac.CRUD()},
			{Module: ModuleSessions, Actions: rbac.CRUD()},
			{Module: ModuleOrders, Actions: rbac.CRUD()},
			{Module: ModuleInvoices, Actions: rbac.CRUD()},
			{Module: ModuleTasks, Actions: rbac.CRUD()},
			{Module: ModuleProducts, Actions: rbac.CRUD()},
			{Module: ModuleTags, Actions: rbac.CRUD()},
			{Module: ModuleDiscounts, Actions: rbac.CRUD()},
			{Module: ModuleReports, Actions: readOnly()},
			{Module: ModuleUsers, Actions: rbac.CRUD()},
			{Module: ModuleSettings, Actions: readUpdate()},
			{Module: ModuleProfile, Actions: readUpdate()},
		}},
		RoleHealthcareProvider: {Grants: []rbac.Grant{
			{Module: ModuleDashboard, Actions: readOnly()},
			{Module: ModulePatients, Actions: readWrite()},
			{Module: ModuleSessions, Actions: rbac.CRUD()},
			{Module: ModuleOrders, Actions: readWrite()},
			{Module: ModuleTasks, Actions: rbac.CRUD()},
			{Module: ModuleProducts, Actions: readOnly()},
			{Module: ModuleTags, Actions: readOnly()},
			{Module: ModuleProfile, Actions: readUpdate()},
		}},
		RoleReceptionist: {Grants: []rbac.Grant{
			{Module: ModuleDashboard, Actions: readOnly()},
			{Module: ModulePatients, Actions: readWrite()},
			{Module: ModuleSessions, Actions: rbac.CRUD()},
			{Module: ModuleTasks, Actions: readWrite()},
			{Module: ModuleTags, Actions: readOnly()},
			{Module: ModuleProfile, Actions: readUpdate()},
		}},
		RoleBillingSpecialist: {Grants: []rbac.Grant{
			{Module: ModuleDashboard, Actions: readOnly()},
			{Module: ModuleInvoices, Actions: rbac.CRUD()},
			{Module: ModulePatients, Actions: readOnly()},
			{Module: ModuleOrders, Actions: readOnly()},
			{Module: ModuleDiscounts, Actions: readWrite()},
			{Module: ModuleReports, Actions: readOnly()},
			{Module: ModuleProfile, Actions: readUpdate()},
		}},
		RolePatient: {Grants: []rbac.Grant{
			{Module: ModuleDashboard, Actions: readOnly()},
			{Module: ModuleSessions, Actions: readOnly()},
			{Module: ModuleInvoices, Actions: readOnly()},
			{Module: ModuleProfile, Actions: readUpdate()},
		}},
	}
}

// HealthcareCatalog returns the navigation catalog matching Healthcare.
// Each call returns a fresh catalog.
func HealthcareCatalog() rbac.RouteCatalog {
	return rbac.RouteCatalog{
		{Path: "/", Module: ModuleDashboard, Label: "Dashboard", Icon: "home"},
		{Path: "/patients", Module: ModulePatients, Label: "Patients", Icon: "users"},
		{Path: "/sessions", Module: ModuleSessions, Label: "Sessions", Icon: "calendar"},
		{Path: "/orders", Module: ModuleOrders, Label: "Orders", Icon: "clipboard"},
		{Path: "/invoices", Module: ModuleInvoices, Label: "Invoices", Icon: "receipt"},
		{Path: "/tasks", Module: ModuleTasks, Label: "Tasks", Icon: "check-square"},
		{Path: "/products", Module: ModuleProducts, Label: "Products", Icon: "package"},
		{Path: "/tags", Module: ModuleTags, Label: "Tags", Icon: "tag"},
		{Path: "/discounts", Module: ModuleDiscounts, Label: "Discounts", Icon: "percent"},
		{Path: "/reports", Module: ModuleReports, Label: "Reports", Icon: "bar-chart"},
		{Path: "/users", Module: ModuleUsers, Label: "Users", Icon: "shield"},
		{Path: "/settings", Module: ModuleSettings, Label: "Settings", Icon: "settings"},
		{Path: "/profile", Module: ModuleProfile, Label: "Profile", Icon: "user-circle"},
	}
}
