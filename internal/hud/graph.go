package hud

import (
	"github.com/wesleyorama2/perfhud/internal/hud/history"
	"github.com/wesleyorama2/perfhud/internal/hud/provider"
	"github.com/wesleyorama2/perfhud/internal/hud/scale"
)

// CurveConfig describes one line on a graph.
type CurveConfig struct {
	// Key is the metric key read from the cache
	Key string

	// Display metadata, passed through to the renderer
	Label     string
	Unit      string
	Precision int
	Color     string

	// Optional per-curve overrides of the graph defaults
	Smoothing *float64
	Quantize  *float64
	Autoscale *bool
}

// GraphConfig describes a whole graph. It is treated as immutable; swap it
// with Graph.SetConfig to change behavior at runtime.
type GraphConfig struct {
	Curves []CurveConfig

	// HistoryCapacity is the sample count per curve (default: history.DefaultCapacity)
	HistoryCapacity int

	// Defaults for curves without overrides
	Smoothing float64
	Quantize  float64
	Autoscale bool

	Scale scale.GraphConfig
}

// DefaultGraphConfig returns a graph with no curves and default settings.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		HistoryCapacity: history.DefaultCapacity,
		Smoothing:       0.2,
		Autoscale:       true,
		Scale:           scale.DefaultGraphConfig(),
	}
}

// filter resolves the effective signal pipeline settings for c.
func (c CurveConfig) filter(g GraphConfig) history.Filter {
	f := history.Filter{Smoothing: g.Smoothing, Quantize: g.Quantize}
	if c.Smoothing != nil {
		f.Smoothing = *c.Smoothing
	}
	if c.Quantize != nil {
		f.Quantize = *c.Quantize
	}
	return f
}

// autoscale resolves whether c contributes to Y-axis autoscaling.
func (c CurveConfig) autoscale(g GraphConfig) bool {
	if c.Autoscale != nil {
		return *c.Autoscale
	}
	return g.Autoscale
}

// CurveFrame is one curve's render data for a frame.
type CurveFrame struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Unit      string `json:"unit,omitempty"`
	Precision int    `json:"precision"`
	Color     string `json:"color,omitempty"`

	// Samples holds HistoryCapacity values, oldest to newest, zero-padded past Len
	Samples []float64 `json:"samples"`
	Len     int       `json:"len"`

	// Latest is the newest filtered value, valid when Len > 0
	Latest float64 `json:"latest"`
}

// GraphFrame is a graph's render data for a frame.
type GraphFrame struct {
	Curves []CurveFrame `json:"curves"`
	Range  scale.Range  `json:"range"`
}

// Graph tracks filtered history for each curve and the shared Y-axis scale.
type Graph struct {
	cfg    GraphConfig
	series []*history.Series
	scale  scale.Graph
}

// NewGraph creates a graph for cfg.
func NewGraph(cfg GraphConfig) *Graph {
	g := &Graph{}
	g.SetConfig(cfg)
	return g
}

// Config returns the active configuration.
func (g *Graph) Config() GraphConfig {
	return g.cfg
}

// SetConfig replaces the configuration. Curves whose key is unchanged keep
// their history (resized if the capacity changed); new keys start empty.
func (g *Graph) SetConfig(cfg GraphConfig) {
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = history.DefaultCapacity
	}

	existing := make(map[string]*history.Series, len(g.series))
	for _, s := range g.series {
		existing[s.Key()] = s
	}

	series := make([]*history.Series, len(cfg.Curves))
	for i, c := range cfg.Curves {
		if s, ok := existing[c.Key]; ok {
			s.Ring().Resize(cfg.HistoryCapacity)
			series[i] = s
			delete(existing, c.Key)
			continue
		}
		series[i] = history.NewSeries(c.Key, cfg.HistoryCapacity)
	}

	g.cfg = cfg
	g.series = series
}

// Series returns the history of the i-th curve.
func (g *Graph) Series(i int) *history.Series {
	if i < 0 || i >= len(g.series) {
		return nil
	}
	return g.series[i]
}

// Range returns the current displayed Y range.
func (g *Graph) Range() scale.Range {
	return g.scale.Range()
}

// Update runs the signal pipeline for every curve and then re-estimates the
// Y-axis scale. Curves whose key has never been sampled append nothing.
func (g *Graph) Update(cache *provider.Cache) scale.Range {
	var autoscaled []scale.Extent
	for i, c := range g.cfg.Curves {
		s := g.series[i]
		if raw, ok := cache.Get(c.Key); ok {
			s.Observe(raw, c.filter(g.cfg))
		}
		if c.autoscale(g.cfg) {
			autoscaled = append(autoscaled, s.Ring())
		}
	}
	return g.scale.Update(g.cfg.Scale, autoscaled)
}

// Frame packages the current state for rendering.
func (g *Graph) Frame() GraphFrame {
	frame := GraphFrame{
		Curves: make([]CurveFrame, len(g.cfg.Curves)),
		Range:  g.scale.Range(),
	}

	for i, c := range g.cfg.Curves {
		ring := g.series[i].Ring()
		latest, _ := ring.Last()
		frame.Curves[i] = CurveFrame{
			Key:       c.Key,
			Label:     labelOr(c.Label, c.Key),
			Unit:      c.Unit,
			Precision: c.Precision,
			Color:     c.Color,
			Samples:   ring.Packed(),
			Len:       ring.Len(),
			Latest:    latest,
		}
	}
	return frame
}

// Reset clears every curve's history and the scale state.
func (g *Graph) Reset() {
	for _, s := range g.series {
		s.Ring().Reset()
	}
	g.scale.Reset()
}

func labelOr(label, key string) string {
	if label != "" {
		return label
	}
	return key
}
