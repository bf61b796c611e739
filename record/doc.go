// Package record provides a schema-validated record layer over a
// key-value store.
//
// Lattice lets a caller define typed entity types, bind them to a
// store connection, and move record instances through a
// create/get/update/delete lifecycle where every read and write passes
// through validation and canonical JSON serialization.
//
// # Defining entity types
//
// A store is bound once, and entity types are defined from the binding:
//
//	users, err := record.Bind(store).Define("user",
//	    record.Field{Name: "id", Kind: record.Int, PrimaryKey: true},
//	    record.Field{Name: "name", Kind: record.String},
//	)
//
// Exactly one field must be marked PrimaryKey; zero or more than one
// fails at definition time with [SchemaError]. The entity type name is
// used verbatim as the key namespace and is never normalized.
//
// # Lifecycle
//
// Instances are constructed with [Type.New], persisted with
// [Instance.Create] (or [Instance.Save]), fetched with [Type.Get],
// modified with [Instance.Update], and removed with [Instance.Delete]:
//
//	u, err := users.New(map[string]any{"id": 1, "name": "Charlie"})
//	err = u.Create(ctx)                                  // key "user:1"
//	u, err = users.Get(ctx, 1)
//	u, err = u.Update(ctx, map[string]any{"name": "Bob"})
//	err = u.Delete(ctx)
//
// Update returns a new instance; the receiver's fields never change.
// After a successful Delete the instance is terminal: every further
// lifecycle call fails with [ErrDeleted] and performs no I/O.
//
// # Keys
//
// Each record occupies one store key, "<typeName>:<pk>", holding the
// canonical JSON of all fields in declared order. [DeriveKey] computes
// keys and [SplitKey] inverts them. String key values containing ":"
// are not escaped and can collide; keep the separator out of key values.
//
// # Errors
//
//   - [SchemaError] - invalid definition, at definition time
//   - [ErrNotBound] - no store bound, checked before any I/O
//   - [ValidationError] - field values fail the schema, per-field causes
//   - [ErrNotFound] - Get on an absent key
//   - [ErrImmutableKey] - Update attempts to change the primary key
//   - [ErrDeleted] - any operation after a successful Delete
//   - [StoreError] - the store call failed; wraps the backend error
//
// The layer performs no retries and no recovery: every failure is
// surfaced to the caller as one of the values above.
//
// # Concurrency
//
// Each operation makes at most one store round trip and the layer
// holds no locks; concurrent operations against the same key race at
// the store exactly as raw writes would. Conditional-write options
// ([IfNotExists], [IfExists]) pass through to the backend and are the
// only write coordination offered.
package record
