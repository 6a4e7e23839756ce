package store

import "context"

// Store is the persistence capability the engine writes its collections
// through. Values are opaque strings; the engine serializes its collections
// as JSON text under the fixed keys in config.StoreKey. Absence of a key is
// a normal outcome, reported through the found flag, never as an error.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every key currently present.
	Keys(ctx context.Context) ([]string, error)
	// Snapshot returns a copy of every key and its raw string value.
	Snapshot(ctx context.Context) (map[string]string, error)
}
