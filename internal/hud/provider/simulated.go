package provider

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Waveform names accepted by Simulated.
const (
	WaveConstant = "constant"
	WaveSine     = "sine"
	WaveSquare   = "square"
	WaveSawtooth = "sawtooth"
	WaveNoise    = "noise"
	WaveSpike    = "spike"
)

// SimulatedConfig describes a synthetic metric.
type SimulatedConfig struct {
	ID       string
	Waveform string

	// Offset is the baseline and Amplitude the swing around it
	Offset    float64
	Amplitude float64

	// Period is the waveform period in samples (default: 120)
	Period int

	// Noise adds uniform jitter in [-Noise, +Noise] to every waveform
	Noise float64

	// SpikeChance is the per-sample spike probability for the spike waveform
	SpikeChance float64

	// SpikeHeight is added on a spike (default: 10 * Amplitude)
	SpikeHeight float64

	// Seed makes the random stream reproducible
	Seed uint64
}

// Simulated generates a synthetic metric, advancing its phase once per sample.
type Simulated struct {
	cfg  SimulatedConfig
	step int
	rng  *rand.Rand
}

// NewSimulated validates cfg and creates the provider.
func NewSimulated(cfg SimulatedConfig) (*Simulated, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("simulated metric requires an id")
	}
	switch cfg.Waveform {
	case "":
		cfg.Waveform = WaveConstant
	case WaveConstant, WaveSine, WaveSquare, WaveSawtooth, WaveNoise, WaveSpike:
	default:
		return nil, fmt.Errorf("metric %s: unknown waveform: %s", cfg.ID, cfg.Waveform)
	}
	if cfg.Period <= 0 {
		cfg.Period = 120
	}
	if cfg.SpikeHeight == 0 {
		cfg.SpikeHeight = 10 * cfg.Amplitude
	}

	return &Simulated{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}, nil
}

// ID returns the metric key.
func (s *Simulated) ID() string { return s.cfg.ID }

// Sample returns the next waveform value.
func (s *Simulated) Sample(*Context) (float64, bool) {
	t := s.step
	s.step++

	period := s.cfg.Period
	phase := float64(t%period) / float64(period)
	amp := s.cfg.Amplitude

	v := s.cfg.Offset
	switch s.cfg.Waveform {
	case WaveSine:
		v += amp * math.Sin(2*math.Pi*phase)
	case WaveSquare:
		if phase < 0.5 {
			v += amp
		} else {
			v -= amp
		}
	case WaveSawtooth:
		v += amp * (2*phase - 1)
	case WaveNoise:
		v += amp * s.jitter()
	case WaveSpike:
		if s.rng.Float64() < s.cfg.SpikeChance {
			v += s.cfg.SpikeHeight
		}
	}

	if s.cfg.Noise > 0 {
		v += s.cfg.Noise * s.jitter()
	}
	return v, true
}

// jitter returns a uniform value in [-1, 1).
func (s *Simulated) jitter() float64 {
	return s.rng.Float64()*2 - 1
}
