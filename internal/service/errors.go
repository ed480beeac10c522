package service

import (
	"errors"

	"github.com/google/uuid"
)

// Errors returned by the services. Callers map them onto transport status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports missing or malformed input. Msg is safe to show to clients.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(msg string) error {
	return &ValidationError{Msg: msg}
}

// validID reports whether id can name a stored record.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
