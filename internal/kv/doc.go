// Package kv provides the key-value persistence backends for the cart.
//
// Every backend satisfies the same two-call contract:
//   - Get(key) returns the stored string, or ok=false when the key is absent
//   - Set(key, value) overwrites the value or returns an error
//
// Backends:
//   - Memory: process-local map, used by tests and the "memory" config
//   - SQLite: durable single-file store (WAL, single writer)
//   - Redis: shared store for deployments that already run Redis
//
// WithQuota wraps any backend and rejects values larger than a byte limit
// with ErrQuotaExceeded, mirroring browser storage quotas.
package kv
