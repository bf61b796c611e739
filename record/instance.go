package record

import (
	"context"
	"errors"

	"github.com/jacentio/lattice/internal/keys"
	"github.com/jacentio/lattice/kv"
)

// Instance is an in-memory validated record of an entity type.
//
// Instances follow an immutable-value discipline: Update never changes
// the receiver's fields, it returns a new Instance and the caller
// replaces their reference. The one exception is the deleted flag,
// which a successful Delete sets on the receiver; after that every
// lifecycle operation on it fails with ErrDeleted without touching
// the store.
//
// An Instance is owned by the caller holding the reference and is not
// safe for concurrent use.
type Instance struct {
	typ     *Type
	fields  map[string]any
	deleted bool
}

// New validates the given field values and constructs an instance.
// It performs no store I/O. Validation failures return a
// *ValidationError with per-field diagnostics.
func (t *Type) New(values map[string]any) (*Instance, error) {
	fields, err := t.construct(values)
	if err != nil {
		return nil, err
	}
	return &Instance{typ: t, fields: fields}, nil
}

// Get fetches the record stored under the key derived from pk.
// An absent key returns ErrNotFound; a present but corrupt or
// schema-mismatched payload returns a *ValidationError.
func (t *Type) Get(ctx context.Context, pk any) (*Instance, error) {
	if t.store == nil {
		return nil, ErrNotBound
	}

	key, err := t.keyFor(pk)
	if err != nil {
		return nil, err
	}

	data, err := t.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}

	fields, err := t.decode(data)
	if err != nil {
		return nil, err
	}
	return &Instance{typ: t, fields: fields}, nil
}

// keyFor derives the store key for a primary-key value, validating it
// against the key field's declared kind first.
func (t *Type) keyFor(pk any) (string, error) {
	f := t.fields[t.pk]
	nv, reason := coerce(f.Kind, pk)
	if reason != "" {
		return "", &ValidationError{Type: t.name, Fields: []FieldError{
			{Name: f.Name, Reason: reason},
		}}
	}
	return keys.Derive(t.name, keys.Stringify(nv)), nil
}

// Create persists the instance under its derived key. Options are
// forwarded verbatim to the store; a rejected conditional write
// surfaces as a *StoreError wrapping kv.ErrConditionFailed.
func (in *Instance) Create(ctx context.Context, opts ...WriteOption) error {
	if in.deleted {
		return ErrDeleted
	}
	t := in.typ
	if t.store == nil {
		return ErrNotBound
	}

	data, err := t.encode(in.fields)
	if err != nil {
		return err
	}

	var so kv.SetOptions
	for _, opt := range opts {
		opt(&so)
	}

	key := in.Key()
	if err := t.store.Set(ctx, key, data, so); err != nil {
		return &StoreError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Save persists the instance with no options. It is shorthand for
// Create(ctx) and mirrors invoking the record itself.
func (in *Instance) Save(ctx context.Context) error {
	return in.Create(ctx)
}

// Update validates the partial changes merged over the current fields,
// persists the result, and returns it as a new Instance. The receiver
// is left unchanged. Changing the primary-key field's value fails with
// ErrImmutableKey before any I/O.
func (in *Instance) Update(ctx context.Context, changes map[string]any) (*Instance, error) {
	if in.deleted {
		return nil, ErrDeleted
	}
	t := in.typ
	if t.store == nil {
		return nil, ErrNotBound
	}

	merged, err := t.merge(in.fields, changes)
	if err != nil {
		return nil, err
	}

	pkName := t.fields[t.pk].Name
	if merged[pkName] != in.fields[pkName] {
		return nil, ErrImmutableKey
	}

	next := &Instance{typ: t, fields: merged}
	data, err := t.encode(merged)
	if err != nil {
		return nil, err
	}

	key := next.Key()
	if err := t.store.Set(ctx, key, data, kv.SetOptions{}); err != nil {
		return nil, &StoreError{Op: "set", Key: key, Err: err}
	}
	return next, nil
}

// Delete removes the record from the store. Only a successful delete
// marks the instance deleted; a failed one leaves it usable.
func (in *Instance) Delete(ctx context.Context) error {
	if in.deleted {
		return ErrDeleted
	}
	t := in.typ
	if t.store == nil {
		return ErrNotBound
	}

	key := in.Key()
	if err := t.store.Delete(ctx, key); err != nil {
		return &StoreError{Op: "delete", Key: key, Err: err}
	}
	in.deleted = true
	return nil
}

// Type returns the instance's entity type.
func (in *Instance) Type() *Type {
	return in.typ
}

// Key returns the derived store key for the instance's current
// primary-key value.
func (in *Instance) Key() string {
	t := in.typ
	return keys.Derive(t.name, keys.Stringify(in.fields[t.fields[t.pk].Name]))
}

// Deleted reports whether a successful Delete has been performed.
func (in *Instance) Deleted() bool {
	return in.deleted
}

// Field returns the named field's value and whether it is present.
func (in *Instance) Field(name string) (any, bool) {
	v, ok := in.fields[name]
	return v, ok
}

// Fields returns a copy of the instance's field values.
func (in *Instance) Fields() map[string]any {
	out := make(map[string]any, len(in.fields))
	for k, v := range in.fields {
		out[k] = v
	}
	return out
}

// Equal reports whether two instances have the same entity type name
// and equal field values. The deleted flag is not compared.
func (in *Instance) Equal(other *Instance) bool {
	if in == nil || other == nil {
		return in == other
	}
	if in.typ.name != other.typ.name || len(in.fields) != len(other.fields) {
		return false
	}
	for k, v := range in.fields {
		ov, ok := other.fields[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
