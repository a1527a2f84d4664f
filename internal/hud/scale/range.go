// Package scale estimates display ranges for HUD graphs and bars.
//
// Both estimators keep a smoothed (min, max) state. The state starts
// uninitialized (max <= min); the first valid target snaps into place and
// later targets are approached with the same exponential smoothing used by
// the signal pipeline.
package scale

import "math"

// Epsilon is the minimum span of any displayed range.
const Epsilon = 1e-3

// MaxMargin caps the margin fraction applied on each side of a range.
const MaxMargin = 0.45

// Range is a closed [Min, Max] display interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Valid reports whether the range is finite and non-degenerate.
func (r Range) Valid() bool {
	return isFinite(r.Min) && isFinite(r.Max) && r.Max > r.Min
}

// Normalize maps v into [0,1] relative to the range.
func (r Range) Normalize(v float64) float64 {
	return Normalize(v, r)
}

// Normalize returns clamp((v-min)/(max-min), 0, 1), or 0 when r is
// degenerate or v is not finite.
func Normalize(v float64, r Range) float64 {
	if !r.Valid() || !isFinite(v) {
		return 0
	}
	n := (v - r.Min) / (r.Max - r.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// ensureSpan widens lo/hi around their midpoint until the span is at least minSpan.
func ensureSpan(lo, hi, minSpan float64) (float64, float64) {
	span := math.Max(math.Abs(hi-lo), minSpan)
	if hi-lo < span {
		mid := (lo + hi) / 2
		lo = mid - span/2
		hi = mid + span/2
	}
	return lo, hi
}

// applyMargin pads both sides by span*margin, margin clamped to [0, MaxMargin].
func applyMargin(lo, hi, margin float64) (float64, float64) {
	if math.IsNaN(margin) || margin < 0 {
		margin = 0
	}
	if margin > MaxMargin {
		margin = MaxMargin
	}
	pad := (hi - lo) * margin
	return lo - pad, hi + pad
}

// smoothToward moves the current bound toward target with EMA factor alpha.
func smoothToward(current, target, alpha float64) float64 {
	if math.IsNaN(alpha) || alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return current + (target-current)*alpha
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
