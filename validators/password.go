package validators

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

var (
	ErrPasswordEmpty   = errors.New("no password provided")
	ErrPasswordTooLong = errors.New("password is too long")
	ErrPasswordInvalid = errors.New("password contains invalid characters")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	// argon2 doesn't care, but anything longer is not a password
	if len(p) > 255 {
		return ErrPasswordTooLong
	}

	if !utf8.ValidString(p) {
		return ErrPasswordInvalid
	}

	for _, r := range p {
		if unicode.IsControl(r) {
			return ErrPasswordInvalid
		}
	}

	return nil
}
