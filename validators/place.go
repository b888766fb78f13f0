package validators

import (
	"errors"
	"strings"
)

var (
	ErrTitleEmpty    = errors.New("place title can't be empty")
	ErrTitleTooLong  = errors.New("place title can't be longer than 100 characters")
	ErrLocationEmpty = errors.New("place location can't be empty")
)

func PlaceValidator(title, location string) error {
	title = strings.TrimSpace(title)

	if title == "" {
		return ErrTitleEmpty
	}

	if len(title) > 100 {
		return ErrTitleTooLong
	}

	if strings.TrimSpace(location) == "" {
		return ErrLocationEmpty
	}

	return nil
}
