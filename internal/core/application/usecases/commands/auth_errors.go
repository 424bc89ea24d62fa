package commands

import (
	"errors"

	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

var authMessages = map[string]string{
	ports.AuthInvalidEmail:      "E-mail inválido.",
	ports.AuthWeakPassword:      "Senha fraca.",
	ports.AuthEmailAlreadyInUse: "E-mail já em uso.",
	ports.AuthUserNotFound:      "Usuário não encontrado.",
	ports.AuthWrongPassword:     "Senha incorreta.",
}

// TranslateAuthError attaches the user-facing message to auth provider
// errors. Other errors are returned unchanged.
func TranslateAuthError(err error) error {
	var authErr *errs.AuthError
	if !errors.As(err, &authErr) {
		return err
	}

	msg, ok := authMessages[authErr.Code]
	if !ok {
		msg = "Erro: " + authErr.Code
	}

	return errs.NewAuthErrorWithCause(authErr.Code, msg, authErr.Cause)
}
