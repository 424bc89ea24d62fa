package firebaseauth

import (
	"errors"
	"strings"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
)

// Identity Toolkit reports failures as an upper-case reason at the start of
// the error message, e.g. "WEAK_PASSWORD : Password should be at least 6
// characters".
var toolkitCodes = map[string]string{
	"EMAIL_NOT_FOUND":           ports.AuthUserNotFound,
	"INVALID_PASSWORD":          ports.AuthWrongPassword,
	"INVALID_LOGIN_CREDENTIALS": ports.AuthInvalidCredential,
	"INVALID_EMAIL":             ports.AuthInvalidEmail,
	"WEAK_PASSWORD":             ports.AuthWeakPassword,
	"EMAIL_EXISTS":              ports.AuthEmailAlreadyInUse,
	"USER_DISABLED":             ports.AuthInvalidCredential,
}

func mapToolkitError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	reason := apiErr.Message
	if i := strings.IndexAny(reason, " :"); i >= 0 {
		reason = reason[:i]
	}

	if code, ok := toolkitCodes[reason]; ok {
		return errs.NewAuthErrorWithCause(code, "", err)
	}
	return err
}

func mapAdminError(err error) error {
	switch {
	case err == nil:
		return nil
	case auth.IsEmailAlreadyExists(err):
		return errs.NewAuthErrorWithCause(ports.AuthEmailAlreadyInUse, "", err)
	case auth.IsUserNotFound(err):
		return errs.NewAuthErrorWithCause(ports.AuthUserNotFound, "", err)
	case auth.IsIDTokenInvalid(err), auth.IsIDTokenExpired(err), auth.IsIDTokenRevoked(err):
		return errs.NewAuthErrorWithCause(ports.AuthInvalidToken, "", err)
	default:
		return err
	}
}
