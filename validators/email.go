// Package validators contains validators for user supplied form input
package validators

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailInvalid = errors.New("invalid email address provided")
)

// EmailValidator accepts bare addresses only, "Alice <a@x.com>" is rejected
func EmailValidator(e string) error {
	if strings.TrimSpace(e) == "" {
		return ErrEmailEmpty
	}

	if len(e) > 254 {
		return ErrEmailInvalid
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	return nil
}
