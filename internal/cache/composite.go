package cache

// CompositeCache fans a Cache over ordered tiers.
// Get returns the first tier's hit; Put and Clear reach every tier.
type CompositeCache[V any] struct {
	tiers []Cache[V]
}

func NewCompositeCache[V any](tiers ...Cache[V]) *CompositeCache[V] {
	return &CompositeCache[V]{tiers: tiers}
}

func (c *CompositeCache[V]) Tiers() []Cache[V] {
	return c.tiers
}

func (c *CompositeCache[V]) Get(key string) (V, bool) {
	for _, tier := range c.tiers {
		if v, ok := tier.Get(key); ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Put writes to every tier, even those that already hold key.
// All tiers are attempted; the first error is returned.
func (c *CompositeCache[V]) Put(key string, value V) (V, error) {
	var firstErr error
	for _, tier := range c.tiers {
		if _, err := tier.Put(key, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return value, firstErr
}

func (c *CompositeCache[V]) Clear() error {
	var firstErr error
	for _, tier := range c.tiers {
		if err := tier.Clear(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
