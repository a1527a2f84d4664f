package scale

import (
	"fmt"
	"math"
	"sort"

	"github.com/wesleyorama2/perfhud/internal/hud/history"
)

// Mode selects how a bar derives its range.
type Mode string

const (
	// ModeFixed uses the configured fallback range verbatim
	ModeFixed Mode = "fixed"

	// ModeAuto tracks the data extremes of recent samples with smoothing
	ModeAuto Mode = "auto"

	// ModePercentile uses nearest-rank percentiles of recent samples
	ModePercentile Mode = "percentile"
)

// ParseMode converts a configuration string into a Mode. Empty means fixed.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFixed:
		return ModeFixed, nil
	case ModeAuto:
		return ModeAuto, nil
	case ModePercentile:
		return ModePercentile, nil
	default:
		return ModeFixed, fmt.Errorf("unknown scale mode: %s", s)
	}
}

// BarConfig controls the range estimation of one bar.
type BarConfig struct {
	Mode Mode `json:"mode" yaml:"mode"`

	// Min and Max are the fixed range and the fallback for the other modes
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`

	// MinLimit and MaxLimit are optional hard clamps applied last
	MinLimit *float64 `json:"minLimit,omitempty" yaml:"minLimit,omitempty"`
	MaxLimit *float64 `json:"maxLimit,omitempty" yaml:"maxLimit,omitempty"`

	// MinSpan, Margin and Smoothing apply to auto mode
	MinSpan   float64 `json:"minSpan" yaml:"minSpan"`
	Margin    float64 `json:"margin" yaml:"margin"`
	Smoothing float64 `json:"smoothing" yaml:"smoothing"`

	// MaxSamples bounds the bar's own sample history
	MaxSamples int `json:"maxSamples" yaml:"maxSamples"`

	// SampleCount, LowerPercentile and UpperPercentile apply to percentile mode
	SampleCount     int     `json:"sampleCount" yaml:"sampleCount"`
	LowerPercentile float64 `json:"lowerPercentile" yaml:"lowerPercentile"`
	UpperPercentile float64 `json:"upperPercentile" yaml:"upperPercentile"`
}

// DefaultBarConfig returns the default bar configuration (fixed 0..100).
func DefaultBarConfig() BarConfig {
	return BarConfig{
		Mode:            ModeFixed,
		Min:             0,
		Max:             100,
		MinSpan:         1,
		Margin:          0.1,
		Smoothing:       0.2,
		MaxSamples:      120,
		SampleCount:     120,
		LowerPercentile: 5,
		UpperPercentile: 95,
	}
}

// Fallback returns the configured fallback range.
func (c BarConfig) Fallback() Range {
	return Range{Min: c.Min, Max: c.Max}
}

// Limit returns a pointer to v, for filling MinLimit/MaxLimit.
func Limit(v float64) *float64 {
	return &v
}

// Reading is a bar's per-frame output.
type Reading struct {
	// Value is the sampled value, 0 when unavailable
	Value float64 `json:"value"`

	// Available is false when the metric was not in the cache
	Available bool `json:"available"`

	// Norm is the fill fraction in [0,1]
	Norm float64 `json:"norm"`

	// Range is the final range after hard limits
	Range Range `json:"range"`
}

// Bar is the range state of one bar: its own bounded sample history plus
// the smoothed auto-mode bounds.
type Bar struct {
	samples *history.Ring
	current Range
	final   Range
}

// NewBar creates a bar whose history holds maxSamples samples.
func NewBar(maxSamples int) *Bar {
	if maxSamples <= 0 {
		maxSamples = DefaultBarConfig().MaxSamples
	}
	return &Bar{samples: history.NewRing(maxSamples)}
}

// AddSample appends v to the bar history. Non-finite values are rejected.
func (b *Bar) AddSample(v float64) bool {
	return b.samples.Push(v)
}

// Len returns the number of samples in the bar history.
func (b *Bar) Len() int {
	return b.samples.Len()
}

// Samples returns the bar history oldest first.
func (b *Bar) Samples() []float64 {
	return b.samples.Values()
}

// Range returns the final range from the last Resolve.
func (b *Bar) Range() Range {
	return b.final
}

// Reset clears history and smoothing state.
func (b *Bar) Reset() {
	b.samples.Reset()
	b.current = Range{}
	b.final = Range{}
}

// Resolve computes the bar's range for the current configuration.
func (b *Bar) Resolve(cfg BarConfig) Range {
	b.fit(cfg)

	var target Range
	switch cfg.Mode {
	case ModeAuto:
		target = b.resolveAuto(cfg)
	case ModePercentile:
		target = b.resolvePercentile(cfg)
	default:
		target = cfg.Fallback()
	}
	if !isFinite(target.Min) || !isFinite(target.Max) {
		target = Range{Min: 0, Max: 1}
	}

	b.final = ApplyLimits(target, cfg.MinLimit, cfg.MaxLimit)
	return b.final
}

// Update records value (when available), resolves the range and normalizes.
func (b *Bar) Update(cfg BarConfig, value float64, ok bool) Reading {
	if ok && cfg.Mode != ModeFixed {
		b.fit(cfg)
		b.AddSample(value)
	}

	r := b.Resolve(cfg)
	if !ok || !isFinite(value) {
		return Reading{Range: r}
	}
	return Reading{
		Value:     value,
		Available: true,
		Norm:      Normalize(value, r),
		Range:     r,
	}
}

// fit resizes the history when MaxSamples was hot-swapped.
func (b *Bar) fit(cfg BarConfig) {
	if cfg.MaxSamples > 0 && cfg.MaxSamples != b.samples.Cap() {
		b.samples.Resize(cfg.MaxSamples)
	}
}

// resolveAuto computes the data-driven target and smooths toward it.
func (b *Bar) resolveAuto(cfg BarConfig) Range {
	lo, hi, ok := b.samples.MinMax()
	if !ok {
		return cfg.Fallback()
	}

	lo, hi = ensureSpan(lo, hi, cfg.MinSpan)
	lo, hi = applyMargin(lo, hi, cfg.Margin)

	if !(b.current.Max > b.current.Min) {
		b.current = Range{Min: lo, Max: hi}
	} else {
		b.current.Min = smoothToward(b.current.Min, lo, cfg.Smoothing)
		b.current.Max = smoothToward(b.current.Max, hi, cfg.Smoothing)
	}
	if b.current.Max < b.current.Min+Epsilon {
		b.current.Max = b.current.Min + Epsilon
	}
	return b.current
}

// resolvePercentile uses nearest-rank percentiles of the newest samples.
func (b *Bar) resolvePercentile(cfg BarConfig) Range {
	n := cfg.SampleCount
	if n <= 0 || n > b.samples.Len() {
		n = b.samples.Len()
	}
	if n < 2 {
		return cfg.Fallback()
	}

	recent := b.samples.Recent(n)
	sort.Float64s(recent)

	lo := recent[percentileIndex(cfg.LowerPercentile, n)]
	hi := recent[percentileIndex(cfg.UpperPercentile, n)]
	if hi < lo+Epsilon {
		hi = lo + Epsilon
	}
	return Range{Min: lo, Max: hi}
}

// percentileIndex returns floor(p/100 * (n-1)) clamped to [0, n-1].
func percentileIndex(p float64, n int) int {
	if math.IsNaN(p) || p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	idx := int(math.Floor(p / 100 * float64(n-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// ApplyLimits clamps r to the optional hard limits.
//
// When the clamped range collapses (max <= min), min is lowered to
// max - Epsilon. If that crosses the min limit the pair is lifted to
// [minLimit, minLimit+Epsilon]; if the limits are themselves inverted the
// max limit wins.
func ApplyLimits(r Range, minLimit, maxLimit *float64) Range {
	lo, hi := r.Min, r.Max
	if minLimit != nil && isFinite(*minLimit) {
		lo = math.Max(lo, *minLimit)
	}
	if maxLimit != nil && isFinite(*maxLimit) {
		hi = math.Min(hi, *maxLimit)
	}

	if hi <= lo {
		lo = hi - Epsilon
		if minLimit != nil && isFinite(*minLimit) && lo < *minLimit {
			lo = *minLimit
			hi = lo + Epsilon
			if maxLimit != nil && isFinite(*maxLimit) && hi > *maxLimit {
				hi = *maxLimit
				lo = hi - Epsilon
			}
		}
	}
	return Range{Min: lo, Max: hi}
}
