// Package kv defines the key-value store contract consumed by the record layer.
//
// A [Store] is any backend that can get, set, and delete byte values under
// string keys. Implementations live in the subpackages:
//
//   - [github.com/jacentio/lattice/kv/memory] - in-process map, full option support
//   - [github.com/jacentio/lattice/kv/redis] - Redis via go-redis
//   - [github.com/jacentio/lattice/kv/dynamo] - DynamoDB single-table
//   - [github.com/jacentio/lattice/kv/leveldb] - embedded LevelDB
//
// Write options are an open, store-defined set. The record layer forwards
// them verbatim and never interprets them; a backend that cannot honor an
// option reports [ErrUnsupportedOption] rather than ignoring it.
package kv

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Get when the key has no live value.
	ErrNotFound = errors.New("kv: key not found")

	// ErrConditionFailed is returned by Set when a conditional write
	// (IfNotExists or IfExists) is not satisfied.
	ErrConditionFailed = errors.New("kv: write condition not met")

	// ErrUnsupportedOption is returned by Set when the backend cannot
	// honor a requested option.
	ErrUnsupportedOption = errors.New("kv: option not supported by this store")
)

// SetOptions carries pass-through write options.
type SetOptions struct {
	// TTL expires the key after the given duration. Zero means no expiry.
	TTL time.Duration

	// IfNotExists writes only when the key has no live value.
	IfNotExists bool

	// IfExists writes only when the key already has a live value.
	IfExists bool
}

// Store is the minimal contract a backend must satisfy.
//
// Implementations must be safe for concurrent use; the record layer issues
// operations from multiple goroutines without coordination.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, applying opts.
	Set(ctx context.Context, key string, value []byte, opts SetOptions) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
