// Package validation turns decoded request payloads into checked changes,
// reporting every problem as a field-level apperr.ValidationError.
package validation

import (
	"encoding/json"
	"strings"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
)

const (
	msgRequired = "This field is required."
	msgNull     = "This field may not be null."
	msgBlank    = "This field may not be blank."
)

// Optional records whether a JSON member was present, and whether it was null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// text handles presence and null for a string field, then checks the trimmed
// value against the validator rules. It returns nil when the field is absent
// or invalid.
func text(ve *apperr.ValidationError, field string, in Optional[string], required bool, rules string) *string {
	if !in.Set {
		if required {
			ve.Add(field, msgRequired)
		}
		return nil
	}
	if in.Null {
		ve.Add(field, msgNull)
		return nil
	}

	v := strings.TrimSpace(in.Value)
	if rules != "" && !check(ve, field, v, rules) {
		return nil
	}
	return &v
}
