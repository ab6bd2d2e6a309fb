package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments can share one Redis without colliding:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) DataKey(opts DataKeyOpts) string {
	return k.prefix + k.inner.DataKey(opts)
}

func (k *ScopedKeyer) ArtifactKey(definitionHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(definitionHash, opts)
}
