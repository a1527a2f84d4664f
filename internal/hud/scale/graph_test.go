package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/perfhud/internal/hud/history"
)

func ringOf(values ...float64) *history.Ring {
	r := history.NewRing(16)
	for _, v := range values {
		r.Push(v)
	}
	return r
}

func TestGraph_ZeroValueUninitialized(t *testing.T) {
	var g Graph
	assert.False(t, g.Initialized())
	assert.Equal(t, Range{}, g.Range())
}

func TestGraph_FixedRange(t *testing.T) {
	cfg := GraphConfig{MinY: 0, MaxY: 100, Smoothing: 0.5}
	var g Graph

	r := g.Update(cfg, nil)
	assert.Equal(t, Range{Min: 0, Max: 100}, r)
	assert.True(t, g.Initialized())
}

func TestGraph_AutoscaleScansEveryExtent(t *testing.T) {
	cfg := GraphConfig{MinY: 0, MaxY: 1, Smoothing: 1}
	var g Graph

	r := g.Update(cfg, []Extent{ringOf(5, 20, 7), ringOf(-3, 4)})
	assert.Equal(t, Range{Min: -3, Max: 20}, r)
}

func TestGraph_EmptyExtentsFallBackToFixed(t *testing.T) {
	cfg := GraphConfig{MinY: 10, MaxY: 30, Smoothing: 1}
	var g Graph

	r := g.Update(cfg, []Extent{ringOf(), nil})
	assert.Equal(t, Range{Min: 10, Max: 30}, r)
}

func TestGraph_IncludeZero(t *testing.T) {
	cfg := GraphConfig{IncludeZero: true, Smoothing: 1}
	var g Graph

	r := g.Update(cfg, []Extent{ringOf(40, 60)})
	assert.Equal(t, Range{Min: 0, Max: 60}, r)

	g.Reset()
	r = g.Update(cfg, []Extent{ringOf(-60, -40)})
	assert.Equal(t, Range{Min: -60, Max: 0}, r)
}

func TestGraph_MinSpanRecenters(t *testing.T) {
	cfg := GraphConfig{MinSpan: 10, Smoothing: 1}
	var g Graph

	r := g.Update(cfg, []Extent{ringOf(50, 50, 50)})
	assert.InDelta(t, 45, r.Min, 1e-9)
	assert.InDelta(t, 55, r.Max, 1e-9)
}

func TestGraph_MarginClamped(t *testing.T) {
	var g Graph

	r := g.Update(GraphConfig{Margin: 0.1, Smoothing: 1}, []Extent{ringOf(0, 100)})
	assert.InDelta(t, -10, r.Min, 1e-9)
	assert.InDelta(t, 110, r.Max, 1e-9)

	g.Reset()
	r = g.Update(GraphConfig{Margin: 5, Smoothing: 1}, []Extent{ringOf(0, 100)})
	assert.InDelta(t, -45, r.Min, 1e-9)
	assert.InDelta(t, 145, r.Max, 1e-9)
}

func TestGraph_StepQuantize(t *testing.T) {
	cfg := GraphConfig{StepQuantize: 10, Smoothing: 1}
	var g Graph

	r := g.Update(cfg, []Extent{ringOf(3, 47)})
	assert.Equal(t, Range{Min: 0, Max: 50}, r)
}

func TestGraph_SnapThenSmooth(t *testing.T) {
	cfg := GraphConfig{Smoothing: 0.5}
	var g Graph

	r := g.Update(cfg, []Extent{ringOf(0, 10)})
	require.Equal(t, Range{Min: 0, Max: 10}, r, "first target must snap")

	r = g.Update(cfg, []Extent{ringOf(10, 30)})
	assert.InDelta(t, 5, r.Min, 1e-9)
	assert.InDelta(t, 20, r.Max, 1e-9)
}

func TestGraph_ZeroSmoothingFreezesAfterSnap(t *testing.T) {
	cfg := GraphConfig{Smoothing: 0}
	var g Graph

	g.Update(cfg, []Extent{ringOf(0, 10)})
	r := g.Update(cfg, []Extent{ringOf(100, 200)})
	assert.Equal(t, Range{Min: 0, Max: 10}, r)
}

func TestGraph_NonDegenerate(t *testing.T) {
	cfg := GraphConfig{MinSpan: 0, Smoothing: 1}
	var g Graph

	r := g.Update(cfg, []Extent{ringOf(7, 7)})
	assert.True(t, r.Max >= r.Min+Epsilon)
	assert.True(t, g.Initialized())
}

func TestGraph_TargetDoesNotMutate(t *testing.T) {
	var g Graph
	g.Target(GraphConfig{MinY: 0, MaxY: 5}, nil)
	assert.False(t, g.Initialized())
}

func TestNormalize(t *testing.T) {
	r := Range{Min: 0, Max: 200}
	assert.Equal(t, 0.0, Normalize(-5, r))
	assert.Equal(t, 0.5, Normalize(100, r))
	assert.Equal(t, 1.0, Normalize(500, r))
	assert.Equal(t, 0.0, Normalize(5, Range{Min: 3, Max: 3}))
}

func TestNormalize_Monotonic(t *testing.T) {
	r := Range{Min: -20, Max: 80}
	prev := -1.0
	for v := -50.0; v <= 120; v += 0.5 {
		n := Normalize(v, r)
		if n < prev {
			t.Fatalf("Normalize(%v) = %v decreased from %v", v, n, prev)
		}
		if n < 0 || n > 1 {
			t.Fatalf("Normalize(%v) = %v outside [0,1]", v, n)
		}
		prev = n
	}
}
