package provider

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// Frame time histogram range: 1 microsecond to 10 seconds, 3 significant figures
	frameHistMin     = 1
	frameHistMax     = int64(10 * time.Second / time.Microsecond)
	frameHistSigFigs = 3

	// frameHistWindows is the number of rotating sub-histograms
	frameHistWindows = 4

	// DefaultPercentileWindow is the number of frames covered by the rolling percentile
	DefaultPercentileWindow = 240
)

// FrameTimePercentile reports a rolling percentile of frame time in
// milliseconds, using a windowed HDR histogram.
//
// The window is split into frameHistWindows sub-histograms; every
// window/frameHistWindows frames the oldest one is dropped, so the reading
// covers roughly the last window frames without keeping raw samples.
type FrameTimePercentile struct {
	id          string
	quantile    float64
	rotateEvery int
	recorded    int
	hist        *hdrhistogram.WindowedHistogram
}

// NewFrameTimePercentile creates a provider for id reporting the given
// quantile (0-100) over roughly window frames.
func NewFrameTimePercentile(id string, quantile float64, window int) *FrameTimePercentile {
	if window <= 0 {
		window = DefaultPercentileWindow
	}
	rotateEvery := window / frameHistWindows
	if rotateEvery < 1 {
		rotateEvery = 1
	}

	return &FrameTimePercentile{
		id:          id,
		quantile:    quantile,
		rotateEvery: rotateEvery,
		hist:        hdrhistogram.NewWindowed(frameHistWindows, frameHistMin, frameHistMax, frameHistSigFigs),
	}
}

// ID returns the metric key.
func (p *FrameTimePercentile) ID() string { return p.id }

// Sample records the frame delta and returns the current percentile.
func (p *FrameTimePercentile) Sample(ctx *Context) (float64, bool) {
	if ctx.Delta <= 0 {
		return 0, false
	}

	micros := ctx.Delta.Microseconds()
	if micros < frameHistMin {
		micros = frameHistMin
	}
	if micros > frameHistMax {
		micros = frameHistMax
	}

	// RecordValue only fails outside the trackable range, which is clamped above.
	_ = p.hist.Current.RecordValue(micros)
	p.recorded++
	if p.recorded%p.rotateEvery == 0 {
		p.hist.Rotate()
	}

	merged := p.hist.Merge()
	if merged.TotalCount() == 0 {
		return 0, false
	}
	return float64(merged.ValueAtQuantile(p.quantile)) / 1000, true
}
