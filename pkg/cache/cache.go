// Package cache provides caching for the planning pipeline.
//
// Three backends are available: a file cache for CLI usage, a Redis cache
// for the API server, and a null cache that disables caching entirely.
// Keys are derived by a Keyer so every entry point (CLI, API) produces
// identical keys for identical work.
package cache

import (
	"context"
	"time"
)

// TTL values for the different cached artifact types.
const (
	// TTLOutline is how long planner outlines are cached. Outlines come
	// from a remote service and are the most expensive thing we produce.
	TTLOutline = 7 * 24 * time.Hour

	// TTLPlan is how long computed deck plans are cached. Plans are cheap
	// to recompute but keyed deterministically, so a long TTL is safe.
	TTLPlan = 24 * time.Hour

	// TTLArtifact is how long rendered outputs (SVG, JSON, diagrams) are
	// cached.
	TTLArtifact = 24 * time.Hour

	// TTLHTTP is the default TTL for cached HTTP responses.
	TTLHTTP = 24 * time.Hour
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return indicates a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
