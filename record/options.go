package record

import (
	"time"

	"github.com/jacentio/lattice/kv"
)

// WriteOption configures a single Create call. Options are forwarded to
// the store uninterpreted; support varies by backend.
type WriteOption func(*kv.SetOptions)

// WithTTL expires the record after d.
func WithTTL(d time.Duration) WriteOption {
	return func(o *kv.SetOptions) { o.TTL = d }
}

// IfNotExists makes the write conditional on the key being absent.
func IfNotExists() WriteOption {
	return func(o *kv.SetOptions) { o.IfNotExists = true }
}

// IfExists makes the write conditional on the key being present.
func IfExists() WriteOption {
	return func(o *kv.SetOptions) { o.IfExists = true }
}
