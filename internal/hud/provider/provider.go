// Package provider implements pluggable metric sources, the registry that
// samples them once per frame, and the cache holding the latest readings.
package provider

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Context is the read-only sampling context handed to every provider.
// The registry forwards it untouched; only providers interpret its fields.
type Context struct {
	// Frame is the frame counter, starting at 1 for the first tick
	Frame uint64

	// Now is the wall-clock time of this sampling pass
	Now time.Time

	// Delta is the duration of the previous frame
	Delta time.Duration

	// Elapsed is the time since the HUD started
	Elapsed time.Duration

	// EntityCounter reports the application's live entity count (optional)
	EntityCounter func() int

	// Diagnostics is a JSON snapshot of application diagnostics (optional)
	Diagnostics []byte

	// Gatherer exposes in-process Prometheus metrics (optional)
	Gatherer prometheus.Gatherer
}

// Provider produces one metric's value per sampling pass.
//
// Sample reports false when no value is available this pass; the cache
// then keeps whatever it held for the key.
type Provider interface {
	ID() string
	Sample(ctx *Context) (float64, bool)
}

// Func adapts a plain function into a Provider.
type Func struct {
	id string
	fn func(ctx *Context) (float64, bool)
}

// NewFunc creates a provider for id backed by fn.
func NewFunc(id string, fn func(ctx *Context) (float64, bool)) *Func {
	return &Func{id: id, fn: fn}
}

// ID returns the metric key.
func (f *Func) ID() string { return f.id }

// Sample calls the wrapped function.
func (f *Func) Sample(ctx *Context) (float64, bool) {
	if f.fn == nil {
		return 0, false
	}
	return f.fn(ctx)
}

// Constant returns a provider that always reports v.
func Constant(id string, v float64) *Func {
	return NewFunc(id, func(*Context) (float64, bool) { return v, true })
}
