// Package cache wraps hashicorp/golang-lru into the content-hash-keyed,
// size-guarded memoization layer each analyzer uses. Callers only Put
// successful results, so a transient upstream failure is recomputed on the
// next call instead of being pinned in the cache.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MaxCacheableBytes bounds how large a single text blob may be before it is
// skipped entirely, so one pathological request can't dominate an LRU's
// working set.
const MaxCacheableBytes = 64 * 1024

// Result is a bounded, content-hash-keyed cache for a single analyzer's
// result type. It is safe for concurrent use.
type Result[V any] struct {
	lru *lru.Cache[string, V]
}

// NewResult builds a Result cache with the given capacity.
func NewResult[V any](size int) *Result[V] {
	c, err := lru.New[string, V](size)
	if err != nil {
		// size <= 0 is a programmer error; fall back to a single slot
		// rather than returning a nil cache that panics on first use.
		c, _ = lru.New[string, V](1)
	}
	return &Result[V]{lru: c}
}

// Get looks up the result for the given cache parts, joined by content hash.
func (r *Result[V]) Get(parts ...string) (V, bool) {
	return r.lru.Get(Key(parts...))
}

// Put stores a result, unless any part exceeds MaxCacheableBytes.
func (r *Result[V]) Put(value V, parts ...string) {
	for _, p := range parts {
		if len(p) > MaxCacheableBytes {
			return
		}
	}
	r.lru.Add(Key(parts...), value)
}

// Len reports the current number of cached entries.
func (r *Result[V]) Len() int { return r.lru.Len() }

// Key derives a stable cache key from one or more strings (e.g. text and an
// optional topic), so callers never key an LRU directly off raw request
// payloads.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
