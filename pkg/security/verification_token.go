package security

import "github.com/google/uuid"

// MakeVerificationToken returns a fresh single use token proving control of an
// email address. It is a random (version 4) UUID, 122 bits of which are random
func MakeVerificationToken() (string, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	return token.String(), nil
}
