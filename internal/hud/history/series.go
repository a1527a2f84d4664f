package history

import "math"

// Series is one graph curve's filtered history.
type Series struct {
	key  string
	ring *Ring
}

// NewSeries creates a series for a metric key with the given capacity.
func NewSeries(key string, capacity int) *Series {
	return &Series{
		key:  key,
		ring: NewRing(capacity),
	}
}

// Key returns the metric key the series tracks.
func (s *Series) Key() string {
	return s.key
}

// Ring exposes the underlying history for rendering and scale estimation.
func (s *Series) Ring() *Ring {
	return s.ring
}

// Observe runs raw through the filter and appends the result.
//
// The previous filtered value is the newest stored sample; on an empty
// history it is raw itself, so the first output equals the input for any α.
// Non-finite raw values are dropped and Observe reports false.
func (s *Series) Observe(raw float64, f Filter) (float64, bool) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, false
	}

	prev, ok := s.ring.Last()
	if !ok {
		prev = raw
	}

	filtered := f.Apply(prev, raw)
	if !s.ring.Push(filtered) {
		return 0, false
	}
	return filtered, true
}
