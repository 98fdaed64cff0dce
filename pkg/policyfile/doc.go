// Package policyfile reads policies and route catalogs from JSON or YAML
// files.
//
// Policy files use the rbac document shape. Source implements
// rbac.PolicySource over a file path, re-reading it on every Load:
//
//	src, err := policyfile.NewSource("policy.yaml")
//	if err != nil {
//	    return err
//	}
//	resolver, err := rbac.NewResolverFromSource(ctx, src)
//
// Catalog files hold a list of routes and are validated on load with
// github.com/go-playground/validator/v10.
package policyfile
