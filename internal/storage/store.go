// Package storage holds the string key-value store every client state lives in.
//
// Backends fail safe: an unreachable backend behaves like an empty store on
// reads and drops writes, so callers treat the store as always available.
package storage

import (
	"context"
	"strings"
)

// Store is a flat byte-valued key-value map.
type Store interface {
	// Get returns the stored value or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// scopedStore confines a Store to one key namespace.
type scopedStore struct {
	inner  Store
	prefix string
}

// Scoped returns a Store whose keys live under "client:<namespace>:" in inner.
func Scoped(inner Store, namespace string) Store {
	return &scopedStore{inner: inner, prefix: "client:" + namespace + ":"}
}

func (s *scopedStore) key(k string) string {
	return s.prefix + k
}

func (s *scopedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.key(key))
}

func (s *scopedStore) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, s.key(key), value)
}

func (s *scopedStore) Delete(ctx context.Context, keys ...string) error {
	scoped := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		scoped = append(scoped, s.key(k))
	}
	if len(scoped) == 0 {
		return nil
	}
	return s.inner.Delete(ctx, scoped...)
}
