package units

import "sync"

// cacheKey identifies one memoized transform. The system id is part of the
// key, so a scope re-activated under another system can never be served a
// transform derived for the old one.
type cacheKey struct {
	dimension string
	system    SystemID
	direction Direction
}

// conversionCache memoizes derived transforms for the lifetime of one scope.
// The zero-value-free constructor keeps it safe for scopes shared across the
// goroutines of a single request.
type conversionCache struct {
	mu         sync.Mutex
	transforms map[cacheKey]Transform
}

func newConversionCache() *conversionCache {
	return &conversionCache{transforms: make(map[cacheKey]Transform)}
}

func (c *conversionCache) get(k cacheKey) (Transform, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tr, ok := c.transforms[k]
	return tr, ok
}

func (c *conversionCache) put(k cacheKey, tr Transform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transforms[k] = tr
}

func (c *conversionCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transforms = make(map[cacheKey]Transform)
}

func (c *conversionCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.transforms)
}
