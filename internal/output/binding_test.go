package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/perfhud/internal/hud"
	"github.com/wesleyorama2/perfhud/internal/hud/scale"
)

func TestPackVec4(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []Vec4
	}{
		{"empty", nil, []Vec4{}},
		{"exact", []float64{1, 2, 3, 4}, []Vec4{{1, 2, 3, 4}}},
		{"padded", []float64{1, 2, 3, 4, 5, 6}, []Vec4{{1, 2, 3, 4}, {5, 6, 0, 0}}},
		{"single", []float64{0.5}, []Vec4{{0.5, 0, 0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PackVec4(tt.values))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value     float64
		precision int
		unit      string
		want      string
	}{
		{16.666, 1, "ms", "16.7 ms"},
		{42, 0, "%", "42%"},
		{3.14159, 2, "", "3.14"},
		{60, 0, "/s", "60/s"},
		{1.5, -1, "MB", "2 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value, tt.precision, tt.unit))
		})
	}
}

func TestBindGraph(t *testing.T) {
	frame := hud.GraphFrame{
		Range: scale.Range{Min: 0, Max: 20},
		Curves: []hud.CurveFrame{
			{Key: "ft", Label: "Frame", Unit: "ms", Precision: 1, Color: "green", Samples: []float64{16, 17, 0, 0, 0}, Len: 2, Latest: 17},
			{Key: "idle", Label: "Idle", Samples: []float64{0, 0, 0, 0, 0}},
		},
	}

	u := BindGraph(frame)
	assert.Equal(t, float32(0), u.MinY)
	assert.Equal(t, float32(20), u.MaxY)
	assert.Equal(t, "0.0 ms", u.MinLabel)
	assert.Equal(t, "20.0 ms", u.MaxLabel)

	require.Len(t, u.Curves, 2)
	assert.Equal(t, []Vec4{{16, 17, 0, 0}, {0, 0, 0, 0}}, u.Curves[0].Samples)
	assert.Equal(t, uint32(2), u.Curves[0].Length)
	assert.Equal(t, RGBA("green"), u.Curves[0].Color)
	assert.Equal(t, "Frame: 17.0 ms", u.Curves[0].Label)

	assert.Equal(t, uint32(0), u.Curves[1].Length)
	assert.Equal(t, "Idle", u.Curves[1].Label, "no value label before the first sample")
}

func TestBindBars(t *testing.T) {
	readings := []hud.BarReading{
		{Label: "CPU", Unit: "%", Reading: scale.Reading{Value: 42, Available: true, Norm: 0.42, Range: scale.Range{Min: 0, Max: 100}}},
		{Label: "GPU", Unit: "%"},
	}

	u := BindBars(readings)
	require.Len(t, u, 2)
	assert.Equal(t, float32(0.42), u[0].Norm)
	assert.Equal(t, "CPU: 42%", u[0].Label)
	assert.Equal(t, "0%", u[0].MinLabel)
	assert.Equal(t, "100%", u[0].MaxLabel)

	assert.Equal(t, float32(0), u[1].Norm)
	assert.Equal(t, "GPU: n/a", u[1].Label)
}
