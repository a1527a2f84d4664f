package output

import (
	"strconv"
	"strings"

	"github.com/wesleyorama2/perfhud/internal/hud"
)

// Vec4 is one 4-wide parameter slot as consumed by a GPU parameter block.
type Vec4 = [4]float32

// PackVec4 chunks values into 4-wide groups, zero padding the last one.
func PackVec4(values []float64) []Vec4 {
	out := make([]Vec4, (len(values)+3)/4)
	for i, v := range values {
		out[i/4][i%4] = float32(v)
	}
	return out
}

// CurveUniforms is the parameter block for one graph curve.
type CurveUniforms struct {
	Samples []Vec4
	Length  uint32
	Color   Vec4
	Label   string
}

// GraphUniforms is the parameter block for a whole graph.
type GraphUniforms struct {
	Curves []CurveUniforms
	MinY   float32
	MaxY   float32

	// Axis labels for the range
	MinLabel string
	MaxLabel string
}

// BarUniforms is the parameter block for one bar.
type BarUniforms struct {
	Norm  float32
	Color Vec4

	// Label is "<label>: <value>" or "<label>: n/a"
	Label    string
	MinLabel string
	MaxLabel string
}

// BindGraph maps a graph frame to its render parameters. Axis labels use
// the precision and unit of the first curve.
func BindGraph(frame hud.GraphFrame) GraphUniforms {
	u := GraphUniforms{
		Curves: make([]CurveUniforms, len(frame.Curves)),
		MinY:   float32(frame.Range.Min),
		MaxY:   float32(frame.Range.Max),
	}

	precision, unit := 1, ""
	if len(frame.Curves) > 0 {
		precision, unit = frame.Curves[0].Precision, frame.Curves[0].Unit
	}
	u.MinLabel = FormatValue(frame.Range.Min, precision, unit)
	u.MaxLabel = FormatValue(frame.Range.Max, precision, unit)

	for i, c := range frame.Curves {
		label := c.Label
		if c.Len > 0 {
			label += ": " + FormatValue(c.Latest, c.Precision, c.Unit)
		}
		u.Curves[i] = CurveUniforms{
			Samples: PackVec4(c.Samples),
			Length:  uint32(c.Len),
			Color:   RGBA(c.Color),
			Label:   label,
		}
	}
	return u
}

// BindBars maps bar readings to their render parameters.
func BindBars(readings []hud.BarReading) []BarUniforms {
	out := make([]BarUniforms, len(readings))
	for i, r := range readings {
		value := "n/a"
		if r.Available {
			value = FormatValue(r.Value, r.Precision, r.Unit)
		}
		out[i] = BarUniforms{
			Norm:     float32(r.Norm),
			Color:    RGBA(r.Color),
			Label:    r.Label + ": " + value,
			MinLabel: FormatValue(r.Range.Min, r.Precision, r.Unit),
			MaxLabel: FormatValue(r.Range.Max, r.Precision, r.Unit),
		}
	}
	return out
}

// FormatValue renders v with a fixed number of decimals and its unit.
// Percent signs attach directly; other units are space separated.
func FormatValue(v float64, precision int, unit string) string {
	if precision < 0 {
		precision = 0
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	switch {
	case unit == "":
		return s
	case unit == "%" || strings.HasPrefix(unit, "/"):
		return s + unit
	default:
		return s + " " + unit
	}
}
