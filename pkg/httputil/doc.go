// Package httputil provides HTTP utilities for the planner client.
//
// # Overview
//
// This package provides the infrastructure shared by components that talk
// to remote services:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/deckplan/)
// with configurable TTL. Outline generation is by far the slowest and most
// expensive operation in the pipeline, so repeated runs against the same
// topic should never hit the planner service twice.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, err := cache.Get("outline:quarterly", &outline)
//	if !ok {
//	    outline = fetchFromPlanner()
//	    cache.Set("outline:quarterly", outline)
//	}
//
// Cache keys should be namespaced by source to avoid collisions.
//
// # Retry
//
// [Retry] wraps requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/deckplan/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `deckplan cache clear` or by deleting the
// cache directory.
package httputil
