package provider

import (
	"math"
	"sort"
)

// Cache maps metric keys to their latest sampled values.
//
// It is overwritten by every sampling pass and never holds history.
// Cache is not safe for concurrent use.
type Cache struct {
	values map[string]float64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{values: make(map[string]float64)}
}

// Set stores v for key. Non-finite values are ignored and Set reports false.
func (c *Cache) Set(key string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	c.values[key] = v
	return true
}

// Get returns the latest value for key.
func (c *Cache) Get(key string) (float64, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetOr returns the latest value for key, or def when absent.
func (c *Cache) GetOr(key string, def float64) float64 {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	return len(c.values)
}

// Keys returns the cached keys in sorted order.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the cache contents.
func (c *Cache) Snapshot() map[string]float64 {
	result := make(map[string]float64, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	delete(c.values, key)
}
