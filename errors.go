package picket

import (
	"fmt"
	"strings"
)

// DuplicateFieldError signals that a schema definition repeats field names.
type DuplicateFieldError struct {
	Fields []string // every repeated name, in first-occurrence order
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field names: %s", strings.Join(e.Fields, ", "))
}

// UnknownFieldError signals that a caster was registered for a field that is
// not part of the owning schema.
type UnknownFieldError struct {
	Fields []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("casters for unknown fields: %s", strings.Join(e.Fields, ", "))
}

// InvalidKeyError signals that one or more supplied named keys are not part
// of the schema. Keys holds every offending key, sorted.
type InvalidKeyError struct {
	Keys []string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid keys: %s", strings.Join(e.Keys, ", "))
}

// MissingKeysError signals that a strict construction left one or more
// schema fields without a value. Keys holds every missing field, in schema
// order.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("missing keys: %s", strings.Join(e.Keys, ", "))
}

// TooManyPositionalValuesError signals that more positional values were
// supplied than the schema has fields.
type TooManyPositionalValuesError struct {
	Got int
	Max int
}

func (e *TooManyPositionalValuesError) Error() string {
	return fmt.Sprintf("too many positional values: got %d, schema has %d fields", e.Got, e.Max)
}

// CastError wraps a per-field converter failure.
type CastError struct {
	Field string
	Err   error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast field %q: %v", e.Field, e.Err)
}

func (e *CastError) Unwrap() error {
	return e.Err
}
