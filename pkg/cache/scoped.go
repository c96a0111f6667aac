package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments or reference tables can share one Redis instance.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "stratcol:ics2023:")
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

// LayoutKey returns the prefixed layout key.
func (k *ScopedKeyer) LayoutKey(columnHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(columnHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// Prefix returns the namespace prefix.
func (k *ScopedKeyer) Prefix() string { return k.prefix }
