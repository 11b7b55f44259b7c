package services

import (
	"errors"
	"fmt"

	"github.com/Dias221467/FF_Points/internal/repository"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadyCompleted   = errors.New("activity already completed")
)

func validationErr(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// storeErr maps repository sentinels onto service errors and wraps the rest.
func storeErr(what string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s: %w", what, ErrDuplicate)
	}
	return fmt.Errorf("failed to %s: %w", what, err)
}
