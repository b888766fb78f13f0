package validators

import (
	"errors"
	"regexp"
)

var (
	ErrUsernameEmpty    = errors.New("no username provided")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrUsernameTooLong  = errors.New("username can't be longer than 32 characters")
	ErrUsernameInvalid  = errors.New("username may only contain letters, digits, dots, dashes and underscores")

	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if len(u) < 3 {
		return ErrUsernameTooShort
	}

	if len(u) > 32 {
		return ErrUsernameTooLong
	}

	if !usernameRe.MatchString(u) {
		return ErrUsernameInvalid
	}

	return nil
}
