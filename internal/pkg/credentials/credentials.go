// Package credentials pre-validates sign-up input the way the auth providers
// would reject it, so every provider reports the same codes.
package credentials

import (
	"net/mail"
	"strings"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// MinPasswordLength is the shortest password the providers accept.
const MinPasswordLength = 6

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Check returns an *errs.AuthError with AuthInvalidEmail or AuthWeakPassword.
func Check(email, password string) error {
	email = NormalizeEmail(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return errs.NewAuthErrorWithCause(ports.AuthInvalidEmail, "", err)
	}
	if len(password) < MinPasswordLength {
		return errs.NewAuthError(ports.AuthWeakPassword, "")
	}
	return nil
}
