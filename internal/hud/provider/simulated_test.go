package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleN(t *testing.T, p Provider, n int) []float64 {
	t.Helper()
	out := make([]float64, n)
	for i := range out {
		v, ok := p.Sample(&Context{})
		require.True(t, ok)
		out[i] = v
	}
	return out
}

func TestNewSimulated_Validation(t *testing.T) {
	_, err := NewSimulated(SimulatedConfig{Waveform: WaveSine})
	assert.Error(t, err, "missing id")

	_, err = NewSimulated(SimulatedConfig{ID: "x", Waveform: "triangle"})
	assert.Error(t, err)

	s, err := NewSimulated(SimulatedConfig{ID: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", s.ID())
}

func TestSimulated_Constant(t *testing.T) {
	s, err := NewSimulated(SimulatedConfig{ID: "c", Offset: 50})
	require.NoError(t, err)
	for _, v := range sampleN(t, s, 5) {
		assert.Equal(t, 50.0, v)
	}
}

func TestSimulated_Square(t *testing.T) {
	s, err := NewSimulated(SimulatedConfig{ID: "sq", Waveform: WaveSquare, Offset: 10, Amplitude: 2, Period: 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{12, 12, 8, 8, 12}, sampleN(t, s, 5))
}

func TestSimulated_Sawtooth(t *testing.T) {
	s, err := NewSimulated(SimulatedConfig{ID: "saw", Waveform: WaveSawtooth, Amplitude: 1, Period: 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, -1}, sampleN(t, s, 5))
}

func TestSimulated_SineBounded(t *testing.T) {
	s, err := NewSimulated(SimulatedConfig{ID: "sin", Waveform: WaveSine, Offset: 50, Amplitude: 40, Period: 60})
	require.NoError(t, err)
	for _, v := range sampleN(t, s, 120) {
		assert.GreaterOrEqual(t, v, 10.0-1e-9)
		assert.LessOrEqual(t, v, 90.0+1e-9)
	}
}

func TestSimulated_NoiseReproducible(t *testing.T) {
	cfg := SimulatedConfig{ID: "n", Waveform: WaveNoise, Offset: 5, Amplitude: 1, Seed: 42}
	a, err := NewSimulated(cfg)
	require.NoError(t, err)
	b, err := NewSimulated(cfg)
	require.NoError(t, err)

	va, vb := sampleN(t, a, 20), sampleN(t, b, 20)
	assert.Equal(t, va, vb)
	for _, v := range va {
		assert.GreaterOrEqual(t, v, 4.0)
		assert.Less(t, v, 6.0)
	}
}

func TestSimulated_Spike(t *testing.T) {
	s, err := NewSimulated(SimulatedConfig{ID: "sp", Waveform: WaveSpike, Offset: 1, Amplitude: 1, SpikeChance: 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 11}, sampleN(t, s, 2))

	quiet, err := NewSimulated(SimulatedConfig{ID: "sp", Waveform: WaveSpike, Offset: 1, SpikeChance: 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, sampleN(t, quiet, 2))
}
