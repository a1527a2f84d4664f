package history

import "math"

// Filter is the per-series signal pipeline configuration.
type Filter struct {
	// Smoothing is the EMA factor α in [0,1]. 0 freezes the series at its
	// previous value, 1 follows the raw value instantly.
	Smoothing float64

	// Quantize snaps filtered values to the nearest multiple of the step.
	// Zero or negative disables quantization.
	Quantize float64
}

// Apply filters raw against prev.
func (f Filter) Apply(prev, raw float64) float64 {
	return QuantizeValue(Smooth(prev, raw, f.Smoothing), f.Quantize)
}

// Smooth returns prev + (raw-prev)*alpha with alpha clamped to [0,1].
func Smooth(prev, raw, alpha float64) float64 {
	alpha = clamp01(alpha)
	return prev + (raw-prev)*alpha
}

// QuantizeValue rounds v to the nearest multiple of step when step > 0.
func QuantizeValue(v, step float64) float64 {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return v
	}
	return math.Round(v/step) * step
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
