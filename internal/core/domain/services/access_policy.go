package services

import (
	"fmt"

	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
)

// Page is the kind of screen a session navigates to.
type Page string

const (
	MasterPage      Page = "master"
	AdminPage       Page = "admin"
	OperationalPage Page = "operational"
	LoginPage       Page = "login"
	SetupPage       Page = "setup"
)

// Redirect targets used by the policy.
const (
	LoginTarget  = "login"
	WaiterTarget = "garcom"
)

// Effect is the outcome of a policy lookup.
type Effect int

const (
	Deny Effect = iota
	Allow
	Redirect
)

func (e Effect) String() string {
	switch e {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	default:
		return "deny"
	}
}

// Decision is what a session must do on a page. Target is set for Deny (where
// the terminated session lands) and Redirect.
type Decision struct {
	Effect Effect
	Target string
}

// Allowed reports whether the page may be shown.
func (d Decision) Allowed() bool {
	return d.Effect == Allow
}

var (
	allow        = Decision{Effect: Allow}
	denyToLogin  = Decision{Effect: Deny, Target: LoginTarget}
	toWaiterPage = Decision{Effect: Redirect, Target: WaiterTarget}
)

// AccessPolicy maps (role, page) to a decision. Missing entries deny.
type AccessPolicy struct {
	rules map[user.Role]map[Page]Decision
}

// NewAccessPolicy returns the platform's policy:
//   - login and setup are open to everyone
//   - master is for super admins only
//   - super admins may also view every client page
//   - owners use admin and operational pages
//   - employees are sent from admin to the waiter page
//   - guests (no user record) are denied everywhere else
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{rules: map[user.Role]map[Page]Decision{
		user.SuperAdmin: {
			MasterPage:      allow,
			AdminPage:       allow,
			OperationalPage: allow,
			LoginPage:       allow,
			SetupPage:       allow,
		},
		user.Owner: {
			AdminPage:       allow,
			OperationalPage: allow,
			LoginPage:       allow,
			SetupPage:       allow,
		},
		user.Employee: {
			AdminPage:       toWaiterPage,
			OperationalPage: allow,
			LoginPage:       allow,
			SetupPage:       allow,
		},
		user.Guest: {
			LoginPage: allow,
			SetupPage: allow,
		},
	}}
}

// Evaluate looks up the decision for role on page.
func (p AccessPolicy) Evaluate(role user.Role, page Page) Decision {
	if pages, ok := p.rules[role]; ok {
		if d, ok := pages[page]; ok {
			return d
		}
	}
	return denyToLogin
}

// Authorize returns nil when the page may be shown and an
// *errs.AccessDeniedError carrying the redirect target otherwise.
func (p AccessPolicy) Authorize(role user.Role, page Page) error {
	d := p.Evaluate(role, page)
	if d.Allowed() {
		return nil
	}
	return errs.NewAccessDeniedError(role.String(), string(page), d.Target)
}

// ParsePage accepts the known page names.
func ParsePage(raw string) (Page, error) {
	switch p := Page(raw); p {
	case MasterPage, AdminPage, OperationalPage, LoginPage, SetupPage:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%q is not a known page", raw))
	}
}

// BindsTenantContext reports whether a page works inside a tenant. Master and
// setup pages run without one.
func (p Page) BindsTenantContext() bool {
	return p != MasterPage && p != SetupPage
}
