// Package user models the access record linking an auth subject to a role and a
// tenant. Deleting the record revokes access; there is no soft delete.
package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/pkg/errs"
)

// Role decides which pages a session may open.
type Role string

const (
	SuperAdmin Role = "super_admin"
	Owner      Role = "owner"
	Employee   Role = "employee"
	// Guest is the role of an authenticated subject without a user record.
	Guest Role = "guest"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// ParseRole accepts the stored role names. Anything else is a guest.
func ParseRole(raw string) Role {
	switch r := Role(raw); r {
	case SuperAdmin, Owner, Employee:
		return r
	default:
		return Guest
	}
}

func (r Role) String() string {
	return string(r)
}

// BindsTenant reports whether the role always works inside its own tenant.
func (r Role) BindsTenant() bool {
	return r == Owner || r == Employee
}

// User is the stored access record.
type User struct {
	uid       string
	email     string
	role      Role
	tenantID  string
	name      string
	createdAt time.Time

	isConstructed bool
}

// NewUser validates a record. Owners and employees need a tenant; super admins
// must not have one.
func NewUser(uid, email string, role Role, tenantID, name string, createdAt time.Time) (*User, error) {
	u := &User{
		name:          strings.TrimSpace(name),
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		u.setUID(uid),
		u.setEmail(email),
		u.setRoleAndTenant(role, tenantID),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) UID() string          { return u.uid }
func (u *User) Email() string        { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) TenantID() string     { return u.tenantID }
func (u *User) Name() string         { return u.name }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) setUID(uid string) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return errs.NewValueIsRequiredError("uid")
	}
	u.uid = uid
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q has no @", email))
	}
	u.email = email
	return nil
}

func (u *User) setRoleAndTenant(role Role, tenantID string) error {
	tenantID = strings.TrimSpace(tenantID)
	switch role {
	case SuperAdmin:
		if tenantID != "" {
			return errs.NewValueIsInvalidErrorWithCause("tenant_id", errors.New("super admins are not bound to a tenant"))
		}
	case Owner, Employee:
		if tenantID == "" {
			return errs.NewValueIsRequiredError("tenant_id")
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q cannot be stored", role))
	}
	u.role = role
	u.tenantID = tenantID
	return nil
}
