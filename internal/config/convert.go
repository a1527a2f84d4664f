package config

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wesleyorama2/perfhud/internal/hud"
	"github.com/wesleyorama2/perfhud/internal/hud/provider"
)

// HUDGraph converts the graph section, or returns nil when there is none.
func (c *Config) HUDGraph() *hud.GraphConfig {
	if c.Graph == nil {
		return nil
	}

	g := hud.GraphConfig{
		HistoryCapacity: c.Graph.HistoryCapacity,
		Smoothing:       c.Graph.Smoothing,
		Quantize:        c.Graph.Quantize,
		Autoscale:       c.Graph.Autoscale,
		Scale:           c.Graph.Scale,
		Curves:          make([]hud.CurveConfig, len(c.Graph.Curves)),
	}
	for i, curve := range c.Graph.Curves {
		g.Curves[i] = hud.CurveConfig{
			Key:       curve.Key,
			Label:     curve.Label,
			Unit:      curve.Unit,
			Precision: curve.Precision,
			Color:     curve.Color,
			Smoothing: curve.Smoothing,
			Quantize:  curve.Quantize,
			Autoscale: curve.Autoscale,
		}
	}
	return &g
}

// HUDBars converts the bar section.
func (c *Config) HUDBars() []hud.BarConfig {
	if len(c.Bars) == 0 {
		return nil
	}

	bars := make([]hud.BarConfig, len(c.Bars))
	for i, b := range c.Bars {
		bars[i] = hud.BarConfig{
			Key:       b.Key,
			Label:     b.Label,
			Unit:      b.Unit,
			Precision: b.Precision,
			Color:     b.Color,
			Scale:     b.Scale,
		}
	}
	return bars
}

// HUDOptions builds the options for hud.New around an existing registry.
func (c *Config) HUDOptions(registry *provider.Registry, logger *zap.Logger) hud.Options {
	return hud.Options{
		Graph:    c.HUDGraph(),
		Bars:     c.HUDBars(),
		Registry: registry,
		Logger:   logger,
	}
}

// RegisterProviders registers the configured providers. Custom providers
// go in first, so a custom id that matches a builtin key replaces the
// builtin. Gatherer providers read g, or the frame context's gatherer
// when g is nil.
func (c *Config) RegisterProviders(registry *provider.Registry, g prometheus.Gatherer, logger *zap.Logger) error {
	for _, s := range c.Providers.Simulated {
		p, err := s.toProvider()
		if err != nil {
			return fmt.Errorf("simulated provider %q: %w", s.ID, err)
		}
		registry.Register(p)
	}

	for _, j := range c.Providers.JSONPath {
		p, err := provider.NewJSONPath(j.ID, j.Path)
		if err != nil {
			return fmt.Errorf("jsonpath provider %q: %w", j.ID, err)
		}
		registry.Register(p)
	}

	for _, gc := range c.Providers.Gatherer {
		registry.Register(provider.NewGatherer(gc.ID, gc.Family, gc.Labels, g))
	}

	if c.Providers.BuiltinEnabled() {
		registry.RegisterDefaults(provider.DefaultsOptions{
			RefreshInterval:  c.Providers.RefreshInterval.GetDuration(provider.DefaultRefreshInterval),
			PercentileWindow: c.Providers.PercentileWindow,
			DisableSystem:    c.Providers.DisableSystem,
			Logger:           logger,
		})
	}
	return nil
}

// ProviderKeys returns every metric key the configured providers can
// produce, sorted.
func (c *Config) ProviderKeys() []string {
	set := make(map[string]struct{})
	if c.Providers.BuiltinEnabled() {
		for _, k := range provider.BuiltinKeys() {
			set[k] = struct{}{}
		}
	}
	for _, s := range c.Providers.Simulated {
		set[s.ID] = struct{}{}
	}
	for _, j := range c.Providers.JSONPath {
		set[j.ID] = struct{}{}
	}
	for _, g := range c.Providers.Gatherer {
		set[g.ID] = struct{}{}
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnknownKeys returns the graph and bar keys no configured provider
// produces. Such keys render as empty lines and unavailable bars unless the
// host registers a provider for them.
func (c *Config) UnknownKeys() []string {
	known := make(map[string]bool)
	for _, k := range c.ProviderKeys() {
		known[k] = true
	}

	var unknown []string
	add := func(key string) {
		if key != "" && !known[key] {
			unknown = append(unknown, key)
			known[key] = true
		}
	}
	if c.Graph != nil {
		for _, curve := range c.Graph.Curves {
			add(curve.Key)
		}
	}
	for _, b := range c.Bars {
		add(b.Key)
	}
	return unknown
}

func (s SimulatedConfig) toProvider() (*provider.Simulated, error) {
	return provider.NewSimulated(provider.SimulatedConfig{
		ID:          s.ID,
		Waveform:    s.Waveform,
		Offset:      s.Offset,
		Amplitude:   s.Amplitude,
		Period:      s.Period,
		Noise:       s.Noise,
		SpikeChance: s.SpikeChance,
		SpikeHeight: s.SpikeHeight,
		Seed:        s.Seed,
	})
}
