package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrQuotaExceeded is returned by Set when the value does not fit the
// backend's storage quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Backend is a string key-value store keyed by a fixed namespace key.
type Backend interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

type quotaBackend struct {
	Backend
	maxBytes int
}

// WithQuota returns a Backend that rejects writes whose value is longer than
// maxBytes. A non-positive maxBytes disables the check.
func WithQuota(b Backend, maxBytes int) Backend {
	if maxBytes <= 0 {
		return b
	}
	return &quotaBackend{Backend: b, maxBytes: maxBytes}
}

func (q *quotaBackend) Set(ctx context.Context, key, value string) error {
	if len(value) > q.maxBytes {
		return fmt.Errorf("set %q: %d bytes > %d: %w", key, len(value), q.maxBytes, ErrQuotaExceeded)
	}
	return q.Backend.Set(ctx, key, value)
}
