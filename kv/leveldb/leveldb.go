// Package leveldb adapts an embedded goleveldb database to the
// kv.Store contract.
//
// LevelDB has no native expiry, so TTL writes fail with
// kv.ErrUnsupportedOption. Conditional writes are serialized with a
// process-local mutex; they are atomic within one process only, which
// is the strongest guarantee an embedded database shared by nothing
// else needs.
package leveldb

import (
	"context"
	"errors"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/jacentio/lattice/kv"
)

var _ kv.Store = (*Store)(nil)

// Store wraps an open goleveldb database.
type Store struct {
	mu sync.Mutex
	db *leveldb.DB
}

// New creates a Store over an already-open database.
func New(db *leveldb.DB) *Store {
	return &Store{db: db}
}

// Open opens (or creates) the database at path and wraps it.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value under key, or kv.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set stores value under key. TTL is not supported.
func (s *Store) Set(ctx context.Context, key string, value []byte, opts kv.SetOptions) error {
	if opts.TTL > 0 {
		return kv.ErrUnsupportedOption
	}

	if opts.IfNotExists || opts.IfExists {
		s.mu.Lock()
		defer s.mu.Unlock()

		exists, err := s.db.Has([]byte(key), nil)
		if err != nil {
			return err
		}
		if opts.IfNotExists && exists {
			return kv.ErrConditionFailed
		}
		if opts.IfExists && !exists {
			return kv.ErrConditionFailed
		}
	}

	return s.db.Put([]byte(key), value, nil)
}

// Delete removes key. Absent keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.Delete([]byte(key), nil)
}
