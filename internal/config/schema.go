package config

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/perfhud/internal/hud"
	"github.com/wesleyorama2/perfhud/internal/hud/scale"
)

// Config is the root HUD configuration.
type Config struct {
	// Name is shown in the console header
	Name string `json:"name" yaml:"name"`

	Run       RunConfig       `json:"run" yaml:"run"`
	Providers ProvidersConfig `json:"providers" yaml:"providers"`

	// Graph is optional; nil disables the line graph
	Graph *GraphConfig `json:"graph,omitempty" yaml:"graph,omitempty"`

	Bars []BarConfig `json:"bars,omitempty" yaml:"bars,omitempty"`
}

// RunConfig controls the frame loop driven by the CLI.
type RunConfig struct {
	// FPS is the target frame rate (default: 60)
	FPS float64 `json:"fps,omitempty" yaml:"fps,omitempty"`

	// Frames stops the run after this many frames (0 = unlimited)
	Frames int `json:"frames,omitempty" yaml:"frames,omitempty"`

	// Duration stops the run after this long (0 = unlimited)
	Duration Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// ProvidersConfig selects the metric providers to register.
type ProvidersConfig struct {
	// Builtin registers frame time, FPS and OS probes (default: true)
	Builtin *bool `json:"builtin,omitempty" yaml:"builtin,omitempty"`

	// DisableSystem skips the OS CPU/memory probes of the builtin set
	DisableSystem bool `json:"disableSystem,omitempty" yaml:"disableSystem,omitempty"`

	// RefreshInterval throttles OS probes (default: 500ms)
	RefreshInterval Duration `json:"refreshInterval,omitempty" yaml:"refreshInterval,omitempty"`

	// PercentileWindow is the frame window of frame_time_p99_ms (default: 240)
	PercentileWindow int `json:"percentileWindow,omitempty" yaml:"percentileWindow,omitempty"`

	Simulated []SimulatedConfig `json:"simulated,omitempty" yaml:"simulated,omitempty"`
	JSONPath  []JSONPathConfig  `json:"jsonpath,omitempty" yaml:"jsonpath,omitempty"`
	Gatherer  []GathererConfig  `json:"gatherer,omitempty" yaml:"gatherer,omitempty"`
}

// BuiltinEnabled reports whether the builtin providers are registered.
func (p ProvidersConfig) BuiltinEnabled() bool {
	return p.Builtin == nil || *p.Builtin
}

// SimulatedConfig describes a synthetic waveform metric.
type SimulatedConfig struct {
	ID          string  `json:"id" yaml:"id"`
	Waveform    string  `json:"waveform,omitempty" yaml:"waveform,omitempty"`
	Offset      float64 `json:"offset,omitempty" yaml:"offset,omitempty"`
	Amplitude   float64 `json:"amplitude,omitempty" yaml:"amplitude,omitempty"`
	Period      int     `json:"period,omitempty" yaml:"period,omitempty"`
	Noise       float64 `json:"noise,omitempty" yaml:"noise,omitempty"`
	SpikeChance float64 `json:"spikeChance,omitempty" yaml:"spikeChance,omitempty"`
	SpikeHeight float64 `json:"spikeHeight,omitempty" yaml:"spikeHeight,omitempty"`
	Seed        uint64  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// JSONPathConfig reads a number from the per-frame diagnostics document.
type JSONPathConfig struct {
	ID   string `json:"id" yaml:"id"`
	Path string `json:"path" yaml:"path"`
}

// GathererConfig reads a Prometheus metric family from the in-process
// registry.
type GathererConfig struct {
	ID     string            `json:"id" yaml:"id"`
	Family string            `json:"family" yaml:"family"`
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// GraphConfig describes the line graph. Fields left out of a file keep
// the engine defaults.
type GraphConfig struct {
	HistoryCapacity int               `json:"historyCapacity" yaml:"historyCapacity"`
	Smoothing       float64           `json:"smoothing" yaml:"smoothing"`
	Quantize        float64           `json:"quantize" yaml:"quantize"`
	Autoscale       bool              `json:"autoscale" yaml:"autoscale"`
	Scale           scale.GraphConfig `json:"scale" yaml:"scale"`
	Curves          []CurveConfig     `json:"curves" yaml:"curves"`
}

// CurveConfig describes one graph curve.
type CurveConfig struct {
	Key       string   `json:"key" yaml:"key"`
	Label     string   `json:"label,omitempty" yaml:"label,omitempty"`
	Unit      string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Precision int      `json:"precision,omitempty" yaml:"precision,omitempty"`
	Color     string   `json:"color,omitempty" yaml:"color,omitempty"`
	Smoothing *float64 `json:"smoothing,omitempty" yaml:"smoothing,omitempty"`
	Quantize  *float64 `json:"quantize,omitempty" yaml:"quantize,omitempty"`
	Autoscale *bool    `json:"autoscale,omitempty" yaml:"autoscale,omitempty"`
}

// BarConfig describes one bar. Scale fields left out of a file keep the
// engine defaults.
type BarConfig struct {
	Key       string          `json:"key" yaml:"key"`
	Label     string          `json:"label,omitempty" yaml:"label,omitempty"`
	Unit      string          `json:"unit,omitempty" yaml:"unit,omitempty"`
	Precision int             `json:"precision,omitempty" yaml:"precision,omitempty"`
	Color     string          `json:"color,omitempty" yaml:"color,omitempty"`
	Scale     scale.BarConfig `json:"scale" yaml:"scale"`
}

// defaultGraphConfig mirrors hud.DefaultGraphConfig without curves.
func defaultGraphConfig() GraphConfig {
	d := hud.DefaultGraphConfig()
	return GraphConfig{
		HistoryCapacity: d.HistoryCapacity,
		Smoothing:       d.Smoothing,
		Quantize:        d.Quantize,
		Autoscale:       d.Autoscale,
		Scale:           d.Scale,
	}
}

// UnmarshalJSON implements json.Unmarshaler, starting from the defaults.
func (g *GraphConfig) UnmarshalJSON(b []byte) error {
	type plain GraphConfig
	p := plain(defaultGraphConfig())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*g = GraphConfig(p)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler, starting from the defaults.
func (g *GraphConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain GraphConfig
	p := plain(defaultGraphConfig())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*g = GraphConfig(p)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler, starting from the defaults.
func (b *BarConfig) UnmarshalJSON(data []byte) error {
	type plain BarConfig
	p := plain{Scale: scale.DefaultBarConfig()}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BarConfig(p)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler, starting from the defaults.
func (b *BarConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain BarConfig
	p := plain{Scale: scale.DefaultBarConfig()}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*b = BarConfig(p)
	return nil
}

// Duration is a time.Duration that can be unmarshaled from JSON/YAML strings.
type Duration time.Duration

// GetDuration returns the duration or a default if empty.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if s == "" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
