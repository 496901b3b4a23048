package cache

// ScopedKeyer prefixes the keys of another Keyer. The HTTP service uses it to
// keep its entries apart from CLI entries when both point at one Redis.
//
//	keyer := cache.NewScopedKeyer(nil, "server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey returns the prefixed layout key.
func (k *ScopedKeyer) LayoutKey(payloadHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(payloadHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
