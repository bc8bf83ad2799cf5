package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError is a local, user-facing validation failure. It never
// reaches the network. Fields maps a field name to a human readable problem.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Message: msg, Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Detail())
}

// Detail lists the field problems in a stable order, or returns Message
// when there are none.
func (e *ValidationError) Detail() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DomainError is a server-side failure whose Message is safe to show to API
// callers. It matches its Kind sentinel with errors.Is.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func (e *DomainError) Unwrap() error { return e.Kind }

func NotFound(msg string) error { return &DomainError{Kind: ErrNotFound, Message: msg} }

func Conflict(msg string) error { return &DomainError{Kind: ErrConflict, Message: msg} }

func Unauthorized(msg string) error { return &DomainError{Kind: ErrUnauthorized, Message: msg} }

func Invalid(msg string) error { return &DomainError{Kind: ErrValidation, Message: msg} }
