// Package kv provides the persistent key-value partition store backing the
// trip repository. One key holds one scope's full serialized state.
// The store is a best-effort collaborator: callers treat write failures as
// non-fatal and keep their in-memory state authoritative.
package kv

import "context"

// Store is the persistence contract consumed by the trip repository.
// Get reports found=false (not an error) when the key has never been written.
type Store interface {
	// Get returns the serialized state stored under key.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set overwrites the serialized state stored under key.
	Set(ctx context.Context, key string, value []byte) error
}
