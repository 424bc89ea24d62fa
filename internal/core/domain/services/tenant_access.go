package services

import (
	"restaurant/internal/core/domain/model/tenant"
	"restaurant/internal/core/domain/model/user"
)

// AccessState is the gate state of a session.
type AccessState string

const (
	Unchecked       AccessState = "unchecked"
	Open            AccessState = "open"
	Suspended       AccessState = "suspended"
	OperationClosed AccessState = "operation_closed"
)

// Blocking reports whether the state locks the session out.
func (s AccessState) Blocking() bool {
	return s == Suspended || s == OperationClosed
}

// EvaluateTenantAccess decides the gate state from a tenant snapshot.
//
//   - a missing tenant is open
//   - an inactive tenant is suspended for every role
//   - a closed tenant blocks employees only; a missing open flag counts as open
func EvaluateTenantAccess(t *tenant.Tenant, role user.Role) AccessState {
	if t == nil {
		return Open
	}
	if !t.Active() {
		return Suspended
	}
	if role == user.Employee && !t.OperationOpen() {
		return OperationClosed
	}
	return Open
}
