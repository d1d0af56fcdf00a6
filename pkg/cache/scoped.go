package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The API server uses it so per-user template caches never collide.
//
// Example usage:
//
//	// User-specific keys for private templates
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared decks
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// OutlineKey generates a prefixed key for outline caching.
func (k *ScopedKeyer) OutlineKey(topic string, opts OutlineKeyOpts) string {
	return k.prefix + k.inner.OutlineKey(topic, opts)
}

// PlanKey generates a prefixed key for plan caching.
func (k *ScopedKeyer) PlanKey(outlineHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(outlineHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}
