// Package redis adapts a go-redis client to the kv.Store contract.
//
// TTL and conditional writes map directly onto the Redis SET command's
// EX, NX, and XX arguments, so all options execute atomically on the
// server.
package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/jacentio/lattice/kv"
)

var _ kv.Store = (*Store)(nil)

// Store wraps a Redis client.
type Store struct {
	client redis.UniversalClient
}

// New creates a Store over an existing client. The client's connection
// pool handles concurrent requests; Store adds no locking.
func New(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

// Get returns the value under key, or kv.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set stores value under key via a single SET with the mapped arguments.
func (s *Store) Set(ctx context.Context, key string, value []byte, opts kv.SetOptions) error {
	if opts.IfNotExists && opts.IfExists {
		return kv.ErrConditionFailed
	}

	args := redis.SetArgs{TTL: opts.TTL}
	switch {
	case opts.IfNotExists:
		args.Mode = "NX"
	case opts.IfExists:
		args.Mode = "XX"
	}

	err := s.client.SetArgs(ctx, key, value, args).Err()
	if errors.Is(err, redis.Nil) {
		// SET NX/XX replies nil when the condition is not met.
		return kv.ErrConditionFailed
	}
	return err
}

// Delete removes key. Redis DEL on an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
