package provider

import (
	"go.uber.org/zap"

	"github.com/wesleyorama2/perfhud/internal/logging"
)

// Registry owns the active providers and drives the per-frame sampling pass.
//
// Register is last-write-wins: registering an id that already exists
// replaces the previous provider in place, keeping its sampling position.
// Ensure registers only when the id is absent, which is how the built-in
// providers are added without overriding user-supplied ones.
type Registry struct {
	providers []Provider
	index     map[string]int
	logger    *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		index:  make(map[string]int),
		logger: logging.OrNop(logger),
	}
}

// Register adds p, replacing any provider already registered under p.ID().
func (r *Registry) Register(p Provider) {
	if p == nil {
		return
	}

	id := p.ID()
	if i, exists := r.index[id]; exists {
		r.providers[i] = p
		r.logger.Debug("replaced metric provider", zap.String("metric", id))
		return
	}

	r.index[id] = len(r.providers)
	r.providers = append(r.providers, p)
	r.logger.Debug("registered metric provider", zap.String("metric", id))
}

// Ensure registers p only if no provider exists for p.ID().
// It reports whether p was added.
func (r *Registry) Ensure(p Provider) bool {
	if p == nil || r.Contains(p.ID()) {
		return false
	}
	r.Register(p)
	return true
}

// Contains reports whether a provider is registered for id.
func (r *Registry) Contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Get returns the provider registered for id.
func (r *Registry) Get(id string) (Provider, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.providers[i], true
}

// Unregister removes the provider for id and reports whether one existed.
func (r *Registry) Unregister(id string) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}

	r.providers = append(r.providers[:i], r.providers[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.providers); j++ {
		r.index[r.providers[j].ID()] = j
	}
	return true
}

// IDs returns the registered metric keys in sampling order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.providers))
	for i, p := range r.providers {
		ids[i] = p.ID()
	}
	return ids
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	return len(r.providers)
}

// SampleAll samples every provider once, in registration order, writing
// each successful finite reading into cache. Providers with no value
// leave their cached entry untouched. It returns the number of writes.
func (r *Registry) SampleAll(ctx *Context, cache *Cache) int {
	if ctx == nil {
		ctx = &Context{}
	}

	written := 0
	for _, p := range r.providers {
		v, ok := p.Sample(ctx)
		if !ok {
			continue
		}
		if cache.Set(p.ID(), v) {
			written++
		}
	}
	return written
}
