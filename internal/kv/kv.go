package kv

// Package kv contains the key-value storage abstraction the reader's app
// state lives in. Implementations can live in subpackages (e.g., sqlite,
// postgres) inside this directory.

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("key not found")

// Store is a minimal string key-value store, the same get/set/remove
// surface the reader app had on the device. Values are opaque to the
// store; the library layer keeps JSON documents in them.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
