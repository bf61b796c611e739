package record

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotBound is returned when a lifecycle operation is attempted on
	// an entity type that was defined without a bound store. Detected
	// before any I/O.
	ErrNotBound = errors.New("lattice: no store bound for entity type")

	// ErrNotFound is returned by Get when no record exists under the
	// derived key.
	ErrNotFound = errors.New("lattice: record not found")

	// ErrDeleted is returned by any lifecycle operation on an instance
	// after a successful Delete. No store call is made.
	ErrDeleted = errors.New("lattice: record instance has been deleted")

	// ErrImmutableKey is returned by Update when the changes would alter
	// the primary-key field's value.
	ErrImmutableKey = errors.New("lattice: primary-key field cannot change after construction")
)

// SchemaError reports an invalid entity type definition. A definition
// that fails never becomes usable.
type SchemaError struct {
	// Type is the entity type name as given to Define.
	Type string

	// Reason describes what is wrong with the definition.
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("lattice: invalid definition of entity type %q: %s", e.Type, e.Reason)
}

// FieldError is a single per-field validation failure.
type FieldError struct {
	// Name is the field name, or empty for payload-level failures.
	Name string

	// Reason describes the failure.
	Reason string
}

func (e FieldError) String() string {
	if e.Name == "" {
		return e.Reason
	}
	return e.Name + ": " + e.Reason
}

// ValidationError reports field values that fail the entity type's
// schema. Fields carries one entry per failing field.
type ValidationError struct {
	// Type is the entity type name.
	Type string

	// Fields holds per-field diagnostics, in declared field order where
	// applicable.
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("lattice: validation failed for entity type %q: %s",
		e.Type, strings.Join(parts, "; "))
}

// StoreError wraps a failed store call. The underlying cause, including
// kv.ErrConditionFailed for rejected conditional writes, is available
// via Unwrap.
type StoreError struct {
	// Op is the store operation: "get", "set", or "delete".
	Op string

	// Key is the derived key the operation targeted.
	Key string

	// Err is the backend's error.
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("lattice: store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
