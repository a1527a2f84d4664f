// Package hud ties the metric providers, history, signal pipeline and scale
// estimators into a per-frame update.
//
// A HUD instance owns all of its state (registry, sample cache, graph
// history, bar scales) and shares nothing with other instances. Tick runs
// one strictly ordered pass:
//
//  1. sample every provider into the cache
//  2. filter graph curves and append to their history
//  3. re-estimate the graph Y range
//  4. resolve and normalize every bar
//
// Nothing in the pass blocks, allocates goroutines, or returns an error;
// missing or pathological samples degrade to stale values, empty lines
// and empty bars.
package hud

import (
	"go.uber.org/zap"

	"github.com/wesleyorama2/perfhud/internal/hud/provider"
	"github.com/wesleyorama2/perfhud/internal/logging"
)

// Frame is the read-only output of one Tick.
type Frame struct {
	// Number is the context frame number
	Number uint64 `json:"frame"`

	// Sampled is how many providers wrote a value this tick
	Sampled int `json:"sampled"`

	Graph *GraphFrame  `json:"graph,omitempty"`
	Bars  []BarReading `json:"bars,omitempty"`
}

// Options configures a HUD.
type Options struct {
	// Graph enables a line graph when non-nil
	Graph *GraphConfig

	// Bars enables a bar panel when non-empty
	Bars []BarConfig

	// Registry lets the caller supply pre-populated providers
	Registry *provider.Registry

	Logger *zap.Logger
}

// HUD is one independent overlay instance.
type HUD struct {
	registry *provider.Registry
	cache    *provider.Cache
	graph    *Graph
	bars     *Bars
	logger   *zap.Logger
	frames   uint64
}

// New creates a HUD from options.
func New(opts Options) *HUD {
	logger := logging.OrNop(opts.Logger)

	registry := opts.Registry
	if registry == nil {
		registry = provider.NewRegistry(logger)
	}

	h := &HUD{
		registry: registry,
		cache:    provider.NewCache(),
		logger:   logger,
	}
	if opts.Graph != nil {
		h.graph = NewGraph(*opts.Graph)
	}
	if len(opts.Bars) > 0 {
		h.bars = NewBars(opts.Bars)
	}
	return h
}

// Registry returns the provider registry.
func (h *HUD) Registry() *provider.Registry {
	return h.registry
}

// Cache returns the sampled value cache.
func (h *HUD) Cache() *provider.Cache {
	return h.cache
}

// Graph returns the graph, or nil when none is configured.
func (h *HUD) Graph() *Graph {
	return h.graph
}

// Bars returns the bar panel, or nil when none is configured.
func (h *HUD) Bars() *Bars {
	return h.bars
}

// Frames returns how many ticks have run.
func (h *HUD) Frames() uint64 {
	return h.frames
}

// SetGraphConfig installs or replaces the graph configuration.
func (h *HUD) SetGraphConfig(cfg GraphConfig) {
	if h.graph == nil {
		h.graph = NewGraph(cfg)
		return
	}
	h.graph.SetConfig(cfg)
}

// SetBarConfig installs or replaces the bar configuration.
func (h *HUD) SetBarConfig(cfgs []BarConfig) {
	if h.bars == nil {
		h.bars = NewBars(cfgs)
		return
	}
	h.bars.SetConfig(cfgs)
}

// Tick runs one full sampling and estimation pass.
func (h *HUD) Tick(ctx *provider.Context) Frame {
	if ctx == nil {
		ctx = &provider.Context{}
	}
	h.frames++

	frame := Frame{Number: ctx.Frame}
	frame.Sampled = h.registry.SampleAll(ctx, h.cache)

	if h.graph != nil {
		h.graph.Update(h.cache)
		gf := h.graph.Frame()
		frame.Graph = &gf
	}
	if h.bars != nil {
		frame.Bars = h.bars.Update(h.cache)
	}

	if h.frames == 1 {
		h.logger.Debug("first HUD frame",
			zap.Int("providers", h.registry.Len()),
			zap.Int("sampled", frame.Sampled))
	}
	return frame
}

// Reset clears history and scale state but keeps providers and cache.
func (h *HUD) Reset() {
	if h.graph != nil {
		h.graph.Reset()
	}
	if h.bars != nil {
		h.bars.Reset()
	}
	h.frames = 0
}
