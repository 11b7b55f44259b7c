package points

import "sync"

// Cache holds the last balance confirmed by the store for each record id.
// It is only ever written from store results, never from predicted values.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]int
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]int)}
}

// Load replaces cached balances with a fresh read.
func (c *Cache) Load(balances map[string]int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, p := range balances {
		c.entries[id] = p
	}
}

// Get returns the cached balance and whether one is known.
func (c *Cache) Get(id string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.entries[id]
	return p, ok
}

func (c *Cache) set(id string, points int) {
	c.mu.Lock()
	c.entries[id] = points
	c.mu.Unlock()
}

// Snapshot copies the cached balances.
func (c *Cache) Snapshot() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]int, len(c.entries))
	for id, p := range c.entries {
		out[id] = p
	}
	return out
}
