package scale

import "math"

// GraphConfig controls Y-axis estimation for a line graph.
type GraphConfig struct {
	// MinY and MaxY are the fixed range, also used as the autoscale fallback
	MinY float64 `json:"minY" yaml:"minY"`
	MaxY float64 `json:"maxY" yaml:"maxY"`

	// IncludeZero extends the target range to cover 0
	IncludeZero bool `json:"includeZero" yaml:"includeZero"`

	// MinSpan is the smallest allowed target span
	MinSpan float64 `json:"minSpan" yaml:"minSpan"`

	// Margin is the fraction of span padded on each side, clamped to [0, 0.45]
	Margin float64 `json:"margin" yaml:"margin"`

	// StepQuantize snaps min down and max up to multiples of the step (0 disables)
	StepQuantize float64 `json:"stepQuantize" yaml:"stepQuantize"`

	// Smoothing is the EMA factor used to move the displayed range toward the target
	Smoothing float64 `json:"smoothing" yaml:"smoothing"`
}

// DefaultGraphConfig returns the default graph scale configuration.
func DefaultGraphConfig() GraphConfig {
	return GraphConfig{
		MinY:      0,
		MaxY:      100,
		MinSpan:   1,
		Margin:    0.1,
		Smoothing: 0.15,
	}
}

// Extent is anything that can report the extremes of its samples.
// *history.Ring satisfies it.
type Extent interface {
	MinMax() (lo, hi float64, ok bool)
}

// Graph is the smoothed Y-axis state of one graph.
// The zero value is uninitialized and ready to use.
type Graph struct {
	minY float64
	maxY float64
}

// Initialized reports whether a target has been assigned yet.
func (g *Graph) Initialized() bool {
	return g.maxY > g.minY
}

// Range returns the currently displayed range.
func (g *Graph) Range() Range {
	return Range{Min: g.minY, Max: g.maxY}
}

// Reset returns the estimator to the uninitialized phase.
func (g *Graph) Reset() {
	g.minY, g.maxY = 0, 0
}

// Target computes the target range for this frame without touching state.
//
// When autoscaled is non-empty, every stored sample of every extent is
// considered; otherwise, or when no extent yields finite bounds, the
// fixed configuration is used.
func (g *Graph) Target(cfg GraphConfig, autoscaled []Extent) Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, e := range autoscaled {
		if e == nil {
			continue
		}
		elo, ehi, ok := e.MinMax()
		if !ok {
			continue
		}
		lo = math.Min(lo, elo)
		hi = math.Max(hi, ehi)
	}
	if !isFinite(lo) || !isFinite(hi) {
		lo, hi = cfg.MinY, cfg.MaxY
	}

	if cfg.IncludeZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}

	lo, hi = ensureSpan(lo, hi, cfg.MinSpan)
	lo, hi = applyMargin(lo, hi, cfg.Margin)

	if step := cfg.StepQuantize; step > 0 && isFinite(step) {
		lo = math.Floor(lo/step) * step
		hi = math.Ceil(hi/step) * step
	}

	return Range{Min: lo, Max: hi}
}

// Update recomputes the target and moves the displayed range toward it.
func (g *Graph) Update(cfg GraphConfig, autoscaled []Extent) Range {
	target := g.Target(cfg, autoscaled)
	if !isFinite(target.Min) || !isFinite(target.Max) {
		return g.Range()
	}

	if !g.Initialized() {
		g.minY, g.maxY = target.Min, target.Max
	} else {
		g.minY = smoothToward(g.minY, target.Min, cfg.Smoothing)
		g.maxY = smoothToward(g.maxY, target.Max, cfg.Smoothing)
	}

	if g.maxY < g.minY+Epsilon {
		g.maxY = g.minY + Epsilon
	}
	return g.Range()
}
