// Package services holds domain rules that span several aggregates.
//
// The package includes:
//   - AccessPolicy: the (role, page) table deciding allow, deny or redirect
//   - EvaluateTenantAccess: the access gate decision for a tenant snapshot and a role
package services
