// Package apperr defines the error kinds the service distinguishes at
// its boundaries. Handlers map kinds to HTTP statuses; callers test
// with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-contract input. Never
	// partially applied.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a missing quiz, question, attempt or skill.
	ErrNotFound = errors.New("not found")

	// ErrPersistence marks a failed store operation for one unit of
	// work.
	ErrPersistence = errors.New("persistence error")
)

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Persistencef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrPersistence)...)
}
