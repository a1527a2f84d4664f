package provider

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/wesleyorama2/perfhud/pkg/jsonpath"
)

// JSONPath reads a numeric field out of Context.Diagnostics.
type JSONPath struct {
	id   string
	path jsonpath.Path
}

// NewJSONPath creates a provider for id extracting expr (e.g. $.go.heap_mb).
func NewJSONPath(id, expr string) (*JSONPath, error) {
	p, err := jsonpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("metric %s: %w", id, err)
	}
	return &JSONPath{id: id, path: p}, nil
}

// ID returns the metric key.
func (j *JSONPath) ID() string { return j.id }

// Sample extracts the value, reporting false when the document or path is missing.
func (j *JSONPath) Sample(ctx *Context) (float64, bool) {
	return j.path.Float(ctx.Diagnostics)
}

// Gatherer reads one sample of an in-process Prometheus metric family.
//
// The first metric in the family whose labels include every matcher is
// used. Gauges, counters and untyped metrics report their value;
// summaries and histograms report their sample sum divided by count.
type Gatherer struct {
	id       string
	family   string
	matchers map[string]string
	gatherer prometheus.Gatherer
}

// NewGatherer creates a provider for id reading family. When g is nil the
// provider uses Context.Gatherer.
func NewGatherer(id, family string, matchers map[string]string, g prometheus.Gatherer) *Gatherer {
	return &Gatherer{
		id:       id,
		family:   family,
		matchers: matchers,
		gatherer: g,
	}
}

// ID returns the metric key.
func (g *Gatherer) ID() string { return g.id }

// Sample gathers and extracts the metric value.
func (g *Gatherer) Sample(ctx *Context) (float64, bool) {
	src := g.gatherer
	if src == nil {
		src = ctx.Gatherer
	}
	if src == nil {
		return 0, false
	}

	families, err := src.Gather()
	if err != nil && len(families) == 0 {
		return 0, false
	}

	for _, mf := range families {
		if mf.GetName() != g.family {
			continue
		}
		for _, m := range mf.GetMetric() {
			if !g.matches(m) {
				continue
			}
			return metricValue(mf.GetType(), m)
		}
	}
	return 0, false
}

func (g *Gatherer) matches(m *dto.Metric) bool {
	if len(g.matchers) == 0 {
		return true
	}

	found := 0
	for _, lp := range m.GetLabel() {
		if want, ok := g.matchers[lp.GetName()]; ok {
			if lp.GetValue() != want {
				return false
			}
			found++
		}
	}
	return found == len(g.matchers)
}

func metricValue(t dto.MetricType, m *dto.Metric) (float64, bool) {
	switch t {
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue(), true
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue(), true
	case dto.MetricType_UNTYPED:
		return m.GetUntyped().GetValue(), true
	case dto.MetricType_SUMMARY:
		s := m.GetSummary()
		return mean(s.GetSampleSum(), s.GetSampleCount())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return mean(h.GetSampleSum(), h.GetSampleCount())
	default:
		return 0, false
	}
}

func mean(sum float64, count uint64) (float64, bool) {
	if count == 0 {
		return 0, false
	}
	v := sum / float64(count)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
