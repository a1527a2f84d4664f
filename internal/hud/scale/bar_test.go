package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeFixed, false},
		{"fixed", ModeFixed, false},
		{"auto", ModeAuto, false},
		{"percentile", ModePercentile, false},
		{"median", ModeFixed, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBar_FixedIgnoresHistory(t *testing.T) {
	ranges := []Range{{0, 1}, {-50, 50}, {10, 1000}}
	for _, want := range ranges {
		cfg := DefaultBarConfig()
		cfg.Mode = ModeFixed
		cfg.Min, cfg.Max = want.Min, want.Max

		b := NewBar(cfg.MaxSamples)
		for _, v := range []float64{-1e6, 3, 1e6} {
			b.AddSample(v)
		}
		assert.Equal(t, want, b.Resolve(cfg))

		reading := b.Update(cfg, 12345, true)
		assert.Equal(t, want, reading.Range)
	}
}

func TestBar_HistoryBound(t *testing.T) {
	b := NewBar(10)
	for i := 0; i < 50; i++ {
		b.AddSample(float64(i))
		if b.Len() > 10 {
			t.Fatalf("Len() = %d after %d samples, want <= 10", b.Len(), i+1)
		}
	}
	assert.Equal(t, []float64{40, 41, 42, 43, 44, 45, 46, 47, 48, 49}, b.Samples())
}

func TestBar_RejectsNonFinite(t *testing.T) {
	b := NewBar(10)
	b.AddSample(1)

	assert.False(t, b.AddSample(math.NaN()))
	assert.False(t, b.AddSample(math.Inf(1)))
	assert.Equal(t, 1, b.Len())
}

func TestBar_AutoMarginBracket(t *testing.T) {
	cfg := DefaultBarConfig()
	cfg.Mode = ModeAuto
	cfg.MinSpan = 1
	cfg.Margin = 0.1
	cfg.Smoothing = 0

	b := NewBar(cfg.MaxSamples)
	for _, v := range []float64{10, 20, 30, 40, 50} {
		require.True(t, b.AddSample(v))
	}

	r := b.Resolve(cfg)
	assert.Less(t, r.Min, 10.0)
	assert.Greater(t, r.Max, 50.0)
	assert.GreaterOrEqual(t, r.Min, 6.0-1e-9)
	assert.LessOrEqual(t, r.Max, 54.0+1e-9)
}

func TestBar_AutoPerFrameWithInstantSmoothing(t *testing.T) {
	cfg := DefaultBarConfig()
	cfg.Mode = ModeAuto
	cfg.MinSpan = 1
	cfg.Margin = 0.1
	cfg.Smoothing = 1

	b := NewBar(cfg.MaxSamples)
	var reading Reading
	for _, v := range []float64{10, 20, 30, 40, 50} {
		reading = b.Update(cfg, v, true)
	}

	assert.InDelta(t, 6, reading.Range.Min, 1e-9)
	assert.InDelta(t, 54, reading.Range.Max, 1e-9)
	assert.InDelta(t, 44.0/48.0, reading.Norm, 1e-9)
}

func TestBar_AutoFirstTargetSnaps(t *testing.T) {
	cfg := DefaultBarConfig()
	cfg.Mode = ModeAuto
	cfg.MinSpan = 0
	cfg.Margin = 0
	cfg.Smoothing = 0.5

	b := NewBar(cfg.MaxSamples)
	b.AddSample(0)
	b.AddSample(10)
	assert.Equal(t, Range{Min: 0, Max: 10}, b.Resolve(cfg))

	b.AddSample(30)
	r := b.Resolve(cfg)
	assert.InDelta(t, 0, r.Min, 1e-9)
	assert.InDelta(t, 20, r.Max, 1e-9)
}

func TestBar_AutoEmptyFallsBack(t *testing.T) {
	cfg := DefaultBarConfig()
	cfg.Mode = ModeAuto
	cfg.Min, cfg.Max = 5, 15

	b := NewBar(cfg.MaxSamples)
	assert.Equal(t, Range{Min: 5, Max: 15}, b.Resolve(cfg))
}

func TestBar_PercentileIgnoresOutliers(t *testing.T) {
	cfg := DefaultBarConfig()
	cfg.Mode = ModePercentile
	cfg.LowerPercentile = 10
	cfg.UpperPercentile = 90
	cfg.SampleCount = 10

	b := NewBar(cfg.MaxSamples)
	for _, v := range []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100} {
		b.AddSample(v)
	}

	r := b.Resolve(cfg)
	assert.GreaterOrEqual(t, r.Min, 1.0)
	assert.LessOrEqual(t, r.Min, 3.0)
	assert.GreaterOrEqual(t, r.Max, 8.0)
	assert.LessOrEqual(t, r.Max, 15.0)
}

func TestBar_PercentileUsesNewestSamples(t *testing.T) {
	cfg := DefaultBarConfig()
	cfg.Mode = ModePercentile
	cfg.LowerPercentile = 0
	cfg.UpperPercentile = 100
	cfg.SampleCount = 3

	b := NewBar(cfg.MaxSamples)
	for _, v := range []float64{1000, -1000, 4, 6, 5} {
		b.AddSample(v)
	}
	assert.Equal(t, Range{Min: 4, Max: 6}, b.Resolve(cfg))
}

func TestBar_PercentileFallbackBelowTwoSamples(t *testing.T) {
	cfg := DefaultBarConfig()
	cfg.Mode = ModePercentile
	cfg.Min, cfg.Max = 0, 60

	b := NewBar(cfg.MaxSamples)
	assert.Equal(t, Range{Min: 0, Max: 60}, b.Resolve(cfg))

	b.AddSample(30)
	assert.Equal(t, Range{Min: 0, Max: 60}, b.Resolve(cfg))
}

func TestBar_PercentileNonDegenerate(t *testing.T) {
	cfg := DefaultBarConfig()
	cfg.Mode = ModePercentile

	b := NewBar(cfg.MaxSamples)
	for i := 0; i < 5; i++ {
		b.AddSample(42)
	}
	r := b.Resolve(cfg)
	assert.Equal(t, 42.0, r.Min)
	assert.GreaterOrEqual(t, r.Max, r.Min+Epsilon)
}

func TestBar_HardLimitPrecedence(t *testing.T) {
	computed := []Range{{-20, 300}, {-20, -10}, {200, 400}, {10, 20}, {160, 170}}
	for _, c := range computed {
		cfg := DefaultBarConfig()
		cfg.Mode = ModeFixed
		cfg.Min, cfg.Max = c.Min, c.Max
		cfg.MinLimit = Limit(0)
		cfg.MaxLimit = Limit(150)

		r := NewBar(cfg.MaxSamples).Resolve(cfg)
		assert.GreaterOrEqual(t, r.Min, 0.0, "computed %v", c)
		assert.LessOrEqual(t, r.Max, 150.0, "computed %v", c)
		assert.Greater(t, r.Max, r.Min, "computed %v", c)
	}
}

func TestApplyLimits(t *testing.T) {
	tests := []struct {
		name     string
		in       Range
		minLimit *float64
		maxLimit *float64
		want     Range
	}{
		{"no limits", Range{1, 2}, nil, nil, Range{1, 2}},
		{"clamps both", Range{-5, 500}, Limit(0), Limit(100), Range{0, 100}},
		{"collapse lowers min", Range{120, 130}, nil, Limit(100), Range{100 - Epsilon, 100}},
		{"collapse below min limit lifts", Range{-20, -10}, Limit(0), Limit(150), Range{0, Epsilon}},
		{"inverted limits prefer max", Range{0, 10}, Limit(50), Limit(20), Range{20 - Epsilon, 20}},
		{"degenerate input widened", Range{5, 5}, nil, nil, Range{5 - Epsilon, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyLimits(tt.in, tt.minLimit, tt.maxLimit)
			assert.InDelta(t, tt.want.Min, got.Min, 1e-12)
			assert.InDelta(t, tt.want.Max, got.Max, 1e-12)
		})
	}
}

func TestBar_UpdateUnavailable(t *testing.T) {
	cfg := DefaultBarConfig()
	b := NewBar(cfg.MaxSamples)

	reading := b.Update(cfg, 0, false)
	assert.False(t, reading.Available)
	assert.Equal(t, 0.0, reading.Norm)
	assert.Equal(t, Range{Min: 0, Max: 100}, reading.Range)
}

func TestBar_HotSwapMaxSamples(t *testing.T) {
	cfg := DefaultBarConfig()
	cfg.Mode = ModeAuto
	cfg.MaxSamples = 8

	b := NewBar(cfg.MaxSamples)
	for i := 0; i < 8; i++ {
		b.Update(cfg, float64(i), true)
	}

	cfg.MaxSamples = 3
	b.Update(cfg, 100, true)
	assert.Equal(t, []float64{6, 7, 100}, b.Samples())
}
