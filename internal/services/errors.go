package services

import (
	"errors"
	"fmt"
)

// ValidationError reports bad user input. No store call has been made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return "invalid " + e.Field
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DuplicateError reports a uniqueness violation. No write has been made.
type DuplicateError struct {
	Field string
	Key   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Field, e.Key)
}

// ConfirmationRequiredError is returned by destructive operations called
// without confirmation. Prompt is the yes/no question to put to the user.
type ConfirmationRequiredError struct {
	Prompt string
}

func (e *ConfirmationRequiredError) Error() string {
	return "confirmation required: " + e.Prompt
}

var (
	ErrEmptyExport        = errors.New("no tables to export")
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrTableNotFound      = errors.New("table not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

func validationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
