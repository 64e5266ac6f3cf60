// Package apperr defines the error taxonomy shared by the store, services
// and HTTP layers.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const NonFieldErrors = "non_field_errors"

var (
	// ErrNotFound covers both missing records and records outside the
	// caller's ownership scope.
	ErrNotFound = errors.New("not found")

	ErrAuthentication = errors.New("authentication failed")
)

// ValidationError carries field-level messages keyed by the request field name.
type ValidationError struct {
	Fields map[string][]string
}

func Field(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Err returns nil when no field has been flagged, so a ValidationError can be
// used as an accumulator.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
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
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type authError struct {
	detail string
}

func (e *authError) Error() string { return e.detail }

func (e *authError) Is(target error) bool { return target == ErrAuthentication }

// Authentication returns an error matching ErrAuthentication that carries a
// client-facing detail message.
func Authentication(detail string) error {
	return &authError{detail: detail}
}

// Detail extracts the client-facing message from an authentication error.
func Detail(err error) string {
	var ae *authError
	if errors.As(err, &ae) {
		return ae.detail
	}
	return "Authentication credentials were not provided."
}
