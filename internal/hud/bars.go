package hud

import (
	"github.com/wesleyorama2/perfhud/internal/hud/provider"
	"github.com/wesleyorama2/perfhud/internal/hud/scale"
)

// BarConfig describes one horizontal proportional bar.
type BarConfig struct {
	Key       string
	Label     string
	Unit      string
	Precision int
	Color     string

	Scale scale.BarConfig
}

// BarReading is a bar's render data for a frame.
type BarReading struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Unit      string `json:"unit,omitempty"`
	Precision int    `json:"precision"`
	Color     string `json:"color,omitempty"`

	scale.Reading
}

// Bars is a panel of bars, each with fully independent scale state.
// Bars read cache values directly; they do not pass through the graph
// signal pipeline.
type Bars struct {
	cfgs   []BarConfig
	states []*scale.Bar
}

// NewBars creates a panel for cfgs.
func NewBars(cfgs []BarConfig) *Bars {
	b := &Bars{}
	b.SetConfig(cfgs)
	return b
}

// Config returns a copy of the active configuration.
func (b *Bars) Config() []BarConfig {
	out := make([]BarConfig, len(b.cfgs))
	copy(out, b.cfgs)
	return out
}

// SetConfig replaces the bar descriptors. A bar at the same position with
// the same key keeps its history and smoothing state.
func (b *Bars) SetConfig(cfgs []BarConfig) {
	states := make([]*scale.Bar, len(cfgs))
	for i, c := range cfgs {
		if i < len(b.cfgs) && b.cfgs[i].Key == c.Key {
			states[i] = b.states[i]
			continue
		}
		states[i] = scale.NewBar(c.Scale.MaxSamples)
	}

	b.cfgs = append([]BarConfig(nil), cfgs...)
	b.states = states
}

// Len returns the number of bars.
func (b *Bars) Len() int {
	return len(b.cfgs)
}

// State returns the scale state of the i-th bar.
func (b *Bars) State(i int) *scale.Bar {
	if i < 0 || i >= len(b.states) {
		return nil
	}
	return b.states[i]
}

// Update reads each bar's metric from the cache and resolves its range.
func (b *Bars) Update(cache *provider.Cache) []BarReading {
	readings := make([]BarReading, len(b.cfgs))
	for i, c := range b.cfgs {
		value, ok := cache.Get(c.Key)
		readings[i] = BarReading{
			Key:       c.Key,
			Label:     labelOr(c.Label, c.Key),
			Unit:      c.Unit,
			Precision: c.Precision,
			Color:     c.Color,
			Reading:   b.states[i].Update(c.Scale, value, ok),
		}
	}
	return readings
}

// Reset clears every bar's history and smoothing state.
func (b *Bars) Reset() {
	for _, s := range b.states {
		s.Reset()
	}
}
