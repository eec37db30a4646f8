package cache

// ScopedKeyer prefixes every key of an inner Keyer so several consumers can
// share one backend without colliding, e.g. "cli:" and "serve:".
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(slicesHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(slicesHash, opts)
}
