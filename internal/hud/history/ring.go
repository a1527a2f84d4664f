// Package history provides the bounded sample stores and the per-series
// signal pipeline that feed graph rendering and scale estimation.
package history

import "math"

// DefaultCapacity is the number of samples kept per graph series.
const DefaultCapacity = 256

// Ring is a fixed-capacity circular buffer of float64 samples.
//
// It provides:
// - O(1) append with eviction of the oldest sample once full
// - Chronological (oldest first) reads for rendering
// - Rejection of non-finite values so NaN/Inf never reach the scale estimators
//
// Ring is not safe for concurrent use. A HUD instance owns its rings and
// drives them from a single frame loop.
type Ring struct {
	data     []float64
	head     int // Next write position
	count    int // Current number of samples
	capacity int
}

// NewRing creates a ring holding at most capacity samples.
// A non-positive capacity falls back to DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Ring{
		data:     make([]float64, capacity),
		capacity: capacity,
	}
}

// Push appends v, evicting the oldest sample when the ring is full.
// Non-finite values are dropped and Push reports false.
func (r *Ring) Push(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}

	r.data[r.head] = v
	r.head = (r.head + 1) % r.capacity
	if r.count < r.capacity {
		r.count++
	}
	return true
}

// Len returns the number of stored samples.
func (r *Ring) Len() int {
	return r.count
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return r.capacity
}

// Last returns the most recent sample.
func (r *Ring) Last() (float64, bool) {
	if r.count == 0 {
		return 0, false
	}
	idx := (r.head - 1 + r.capacity) % r.capacity
	return r.data[idx], true
}

// At returns the i-th stored sample, where 0 is the oldest.
func (r *Ring) At(i int) (float64, bool) {
	if i < 0 || i >= r.count {
		return 0, false
	}
	return r.data[r.index(i)], true
}

// index maps a chronological position to a slot in data.
func (r *Ring) index(i int) int {
	start := (r.head - r.count + r.capacity) % r.capacity
	return (start + i) % r.capacity
}

// Values returns a copy of all samples in chronological order.
func (r *Ring) Values() []float64 {
	if r.count == 0 {
		return nil
	}

	result := make([]float64, r.count)
	for i := 0; i < r.count; i++ {
		result[i] = r.data[r.index(i)]
	}
	return result
}

// Recent returns the n most recent samples in chronological order.
func (r *Ring) Recent(n int) []float64 {
	if n > r.count {
		n = r.count
	}
	if n <= 0 {
		return nil
	}

	result := make([]float64, n)
	for i := 0; i < n; i++ {
		// head-1 is most recent, head-2 is second most recent, etc.
		idx := (r.head - 1 - i + r.capacity) % r.capacity
		result[n-1-i] = r.data[idx]
	}
	return result
}

// MinMax scans every stored sample and returns the extremes.
// ok is false when the ring is empty.
func (r *Ring) MinMax() (lo, hi float64, ok bool) {
	if r.count == 0 {
		return 0, 0, false
	}

	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < r.count; i++ {
		v := r.data[r.index(i)]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}

// Packed returns a Cap()-sized copy, oldest to newest, zero-padded past Len().
func (r *Ring) Packed() []float64 {
	result := make([]float64, r.capacity)
	for i := 0; i < r.count; i++ {
		result[i] = r.data[r.index(i)]
	}
	return result
}

// Reset drops all samples and keeps the capacity.
func (r *Ring) Reset() {
	r.data = make([]float64, r.capacity)
	r.head = 0
	r.count = 0
}

// Resize changes the capacity, keeping the newest samples that still fit.
func (r *Ring) Resize(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if capacity == r.capacity {
		return
	}

	kept := r.Recent(capacity)
	r.data = make([]float64, capacity)
	r.capacity = capacity
	r.head = 0
	r.count = 0
	for _, v := range kept {
		r.Push(v)
	}
}
