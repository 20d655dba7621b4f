package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ConflictError is returned when a request collides with existing state,
// e.g. favoriting a recipe twice or following oneself.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	if e.Message == "" {
		return "conflict"
	}
	return e.Message
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// ErrConflict is the sentinel error for conflicting requests.
var ErrConflict = ConflictError{}

// ValidationError collects per-field messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e when at least one field failed, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	ErrEmptyCart          = errors.New("shopping cart is empty, nothing to export")
	ErrPermissionDenied   = errors.New("you do not have permission to perform this action")
	ErrUnauthorized       = errors.New("authentication credentials were not provided")
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
)
