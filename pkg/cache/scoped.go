package cache

// RedisKeyPrefix namespaces kozu keys in a shared Redis database.
const RedisKeyPrefix = "kozu:v1:"

// ScopedKeyer prefixes every key of an inner Keyer, so that kozu can share
// a Redis database with other applications.
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

func (k *ScopedKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(opts)
}
