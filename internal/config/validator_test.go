package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := ParseConfig([]byte(demoYAML), "hud.yaml")
	require.NoError(t, err)
	ApplyDefaults(cfg)
	return cfg
}

func floatPtr(v float64) *float64 { return &v }

func TestValidationError_Error(t *testing.T) {
	withField := &ValidationError{Field: "graph.smoothing", Message: "must be between 0 and 1"}
	assert.Equal(t, "validation error on field 'graph.smoothing': must be between 0 and 1", withField.Error())

	noField := &ValidationError{Message: "at least one of graph or bars is required"}
	assert.Equal(t, "validation error: at least one of graph or bars is required", noField.Error())
}

func TestValidationErrors_Error(t *testing.T) {
	errs := &ValidationErrors{}
	assert.Equal(t, "no validation errors", errs.Error())
	assert.False(t, errs.HasErrors())

	errs.Add("a", "first")
	assert.Equal(t, "validation error on field 'a': first", errs.Error())

	errs.Add("b", "second")
	assert.True(t, errs.HasErrors())
	assert.True(t, strings.HasPrefix(errs.Error(), "2 validation errors:\n"))
	assert.Contains(t, errs.Error(), "  2. validation error on field 'b': second")
}

func TestValidate_MinimalValid(t *testing.T) {
	assert.NoError(t, validConfig(t).Validate())
}

func TestValidate_NothingToShow(t *testing.T) {
	cfg := validConfig(t)
	cfg.Graph = nil
	cfg.Bars = nil

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of graph or bars")
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"negative fps", func(c *Config) { c.Run.FPS = -1 }, "run.fps"},
		{"negative frames", func(c *Config) { c.Run.Frames = -5 }, "run.frames"},
		{"negative refresh", func(c *Config) { c.Providers.RefreshInterval = -1 }, "providers.refreshInterval"},
		{"simulated missing id", func(c *Config) { c.Providers.Simulated[0].ID = "" }, "providers.simulated[0].id"},
		{"simulated bad waveform", func(c *Config) { c.Providers.Simulated[0].Waveform = "triangle" }, "unknown waveform"},
		{"simulated spike chance", func(c *Config) { c.Providers.Simulated[0].SpikeChance = 2 }, "spikeChance"},
		{"duplicate id", func(c *Config) {
			c.Providers.JSONPath = []JSONPathConfig{{ID: "sim/load", Path: "$.x"}}
		}, "duplicate provider id"},
		{"jsonpath empty path", func(c *Config) {
			c.Providers.JSONPath = []JSONPathConfig{{ID: "j"}}
		}, "providers.jsonpath[0].path"},
		{"gatherer missing family", func(c *Config) {
			c.Providers.Gatherer = []GathererConfig{{ID: "g"}}
		}, "providers.gatherer[0].family"},
		{"graph without curves", func(c *Config) { c.Graph.Curves = nil }, "graph.curves"},
		{"graph capacity", func(c *Config) { c.Graph.HistoryCapacity = 0 }, "graph.historyCapacity"},
		{"graph smoothing", func(c *Config) { c.Graph.Smoothing = 1.5 }, "graph.smoothing"},
		{"graph inverted range", func(c *Config) { c.Graph.Scale.MinY = 200 }, "maxY (100) must be greater than minY (200)"},
		{"graph negative step", func(c *Config) { c.Graph.Scale.StepQuantize = -1 }, "graph.scale.stepQuantize"},
		{"curve missing key", func(c *Config) { c.Graph.Curves[0].Key = "" }, "graph.curves[0].key"},
		{"curve bad color", func(c *Config) { c.Graph.Curves[0].Color = "mauve" }, "unknown color"},
		{"curve precision", func(c *Config) { c.Graph.Curves[0].Precision = 11 }, "graph.curves[0].precision"},
		{"curve smoothing", func(c *Config) { c.Graph.Curves[0].Smoothing = floatPtr(-0.1) }, "graph.curves[0].smoothing"},
		{"bar missing key", func(c *Config) { c.Bars[0].Key = "" }, "bars[0].key"},
		{"bar bad mode", func(c *Config) { c.Bars[0].Scale.Mode = "median" }, "unknown scale mode"},
		{"bar inverted range", func(c *Config) { c.Bars[0].Scale.Min = 100 }, "max (100) must be greater than min (100)"},
		{"bar inverted limits", func(c *Config) { c.Bars[0].Scale.MinLimit = floatPtr(200) }, "maxLimit (150) must be greater than minLimit (200)"},
		{"bar samples", func(c *Config) { c.Bars[0].Scale.MaxSamples = 0 }, "bars[0].scale.maxSamples"},
		{"bar percentile order", func(c *Config) { c.Bars[0].Scale.LowerPercentile = 99 }, "lowerPercentile must not exceed upperPercentile"},
		{"bar percentile range", func(c *Config) { c.Bars[0].Scale.UpperPercentile = 101 }, "bars[0].scale.upperPercentile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			var verrs *ValidationErrors
			require.ErrorAs(t, err, &verrs)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Run.FPS = -1
	cfg.Graph.Smoothing = 2
	cfg.Bars[0].Key = ""

	err := cfg.Validate()
	require.Error(t, err)

	verrs, ok := err.(*ValidationErrors)
	require.True(t, ok)
	assert.Len(t, verrs.Errors, 3)
}
