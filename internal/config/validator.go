package config

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/perfhud/internal/hud/scale"
	"github.com/wesleyorama2/perfhud/internal/output"
	"github.com/wesleyorama2/perfhud/pkg/jsonpath"
)

// MaxHistoryCapacity bounds graph and bar histories.
const MaxHistoryCapacity = 4096

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate validates the entire HUD configuration.
//
// Returns nil if valid, or a ValidationErrors containing all validation errors.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if c.Graph == nil && len(c.Bars) == 0 {
		errs.Add("", "at least one of graph or bars is required")
	}

	validateRun(&c.Run, errs)
	validateProviders(&c.Providers, errs)
	if c.Graph != nil {
		validateGraph(c.Graph, errs)
	}
	for i := range c.Bars {
		validateBar(fmt.Sprintf("bars[%d]", i), &c.Bars[i], errs)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateRun(r *RunConfig, errs *ValidationErrors) {
	if r.FPS < 0 {
		errs.Add("run.fps", "must not be negative")
	}
	if r.FPS > 1000 {
		errs.Add("run.fps", "must be at most 1000")
	}
	if r.Frames < 0 {
		errs.Add("run.frames", "must not be negative")
	}
	if r.Duration < 0 {
		errs.Add("run.duration", "must not be negative")
	}
}

func validateProviders(p *ProvidersConfig, errs *ValidationErrors) {
	if p.RefreshInterval < 0 {
		errs.Add("providers.refreshInterval", "must not be negative")
	}
	if p.PercentileWindow < 0 {
		errs.Add("providers.percentileWindow", "must not be negative")
	}

	seen := make(map[string]string)
	checkID := func(field, id string) {
		if id == "" {
			errs.Add(field, "id is required")
			return
		}
		if prev, ok := seen[id]; ok {
			errs.Add(field, fmt.Sprintf("duplicate provider id %q (already used by %s)", id, prev))
			return
		}
		seen[id] = field
	}

	for i, s := range p.Simulated {
		field := fmt.Sprintf("providers.simulated[%d]", i)
		checkID(field+".id", s.ID)
		if _, err := s.toProvider(); err != nil && s.ID != "" {
			errs.Add(field, err.Error())
		}
		if s.Period < 0 {
			errs.Add(field+".period", "must not be negative")
		}
		checkUnit(errs, field+".spikeChance", s.SpikeChance)
	}

	for i, j := range p.JSONPath {
		field := fmt.Sprintf("providers.jsonpath[%d]", i)
		checkID(field+".id", j.ID)
		if j.Path == "" {
			errs.Add(field+".path", "path is required")
		} else if _, err := jsonpath.Compile(j.Path); err != nil {
			errs.Add(field+".path", err.Error())
		}
	}

	for i, g := range p.Gatherer {
		field := fmt.Sprintf("providers.gatherer[%d]", i)
		checkID(field+".id", g.ID)
		if g.Family == "" {
			errs.Add(field+".family", "family is required")
		}
	}
}

func validateGraph(g *GraphConfig, errs *ValidationErrors) {
	if len(g.Curves) == 0 {
		errs.Add("graph.curves", "at least one curve is required")
	}
	if g.HistoryCapacity <= 0 || g.HistoryCapacity > MaxHistoryCapacity {
		errs.Add("graph.historyCapacity", fmt.Sprintf("must be between 1 and %d", MaxHistoryCapacity))
	}
	checkUnit(errs, "graph.smoothing", g.Smoothing)
	if g.Quantize < 0 {
		errs.Add("graph.quantize", "must not be negative")
	}

	s := g.Scale
	if s.MaxY <= s.MinY {
		errs.Add("graph.scale", fmt.Sprintf("maxY (%g) must be greater than minY (%g)", s.MaxY, s.MinY))
	}
	if s.MinSpan < 0 {
		errs.Add("graph.scale.minSpan", "must not be negative")
	}
	if s.Margin < 0 {
		errs.Add("graph.scale.margin", "must not be negative")
	}
	if s.StepQuantize < 0 {
		errs.Add("graph.scale.stepQuantize", "must not be negative")
	}
	checkUnit(errs, "graph.scale.smoothing", s.Smoothing)

	for i, c := range g.Curves {
		field := fmt.Sprintf("graph.curves[%d]", i)
		if c.Key == "" {
			errs.Add(field+".key", "key is required")
		}
		checkDisplay(errs, field, c.Precision, c.Color)
		if c.Smoothing != nil {
			checkUnit(errs, field+".smoothing", *c.Smoothing)
		}
		if c.Quantize != nil && *c.Quantize < 0 {
			errs.Add(field+".quantize", "must not be negative")
		}
	}
}

func validateBar(field string, b *BarConfig, errs *ValidationErrors) {
	if b.Key == "" {
		errs.Add(field+".key", "key is required")
	}
	checkDisplay(errs, field, b.Precision, b.Color)

	s := b.Scale
	if _, err := scale.ParseMode(string(s.Mode)); err != nil {
		errs.Add(field+".scale.mode", err.Error())
	}
	if s.Max <= s.Min {
		errs.Add(field+".scale", fmt.Sprintf("max (%g) must be greater than min (%g)", s.Max, s.Min))
	}
	if s.MinLimit != nil && s.MaxLimit != nil && *s.MaxLimit <= *s.MinLimit {
		errs.Add(field+".scale", fmt.Sprintf("maxLimit (%g) must be greater than minLimit (%g)", *s.MaxLimit, *s.MinLimit))
	}
	if s.MinSpan < 0 {
		errs.Add(field+".scale.minSpan", "must not be negative")
	}
	if s.Margin < 0 {
		errs.Add(field+".scale.margin", "must not be negative")
	}
	checkUnit(errs, field+".scale.smoothing", s.Smoothing)
	if s.MaxSamples <= 0 || s.MaxSamples > MaxHistoryCapacity {
		errs.Add(field+".scale.maxSamples", fmt.Sprintf("must be between 1 and %d", MaxHistoryCapacity))
	}
	if s.SampleCount <= 0 {
		errs.Add(field+".scale.sampleCount", "must be positive")
	}
	if s.LowerPercentile < 0 || s.LowerPercentile > 100 {
		errs.Add(field+".scale.lowerPercentile", "must be between 0 and 100")
	}
	if s.UpperPercentile < 0 || s.UpperPercentile > 100 {
		errs.Add(field+".scale.upperPercentile", "must be between 0 and 100")
	}
	if s.LowerPercentile > s.UpperPercentile {
		errs.Add(field+".scale", "lowerPercentile must not exceed upperPercentile")
	}
}

func checkUnit(errs *ValidationErrors, field string, v float64) {
	if v < 0 || v > 1 {
		errs.Add(field, fmt.Sprintf("must be between 0 and 1, got %g", v))
	}
}

func checkDisplay(errs *ValidationErrors, field string, precision int, color string) {
	if precision < 0 || precision > 10 {
		errs.Add(field+".precision", "must be between 0 and 10")
	}
	if !output.KnownColor(color) {
		errs.Add(field+".color", fmt.Sprintf("unknown color %q", color))
	}
}
