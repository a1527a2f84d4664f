// Package pacer schedules HUD frames at a target rate.
package pacer

import (
	"context"
	"time"
)

// Pacer decides when the next frame should start using the leaky bucket
// algorithm: credit accrues at the frame rate and each frame spends one
// unit. A frame loop that falls behind runs the next frame immediately,
// but at most MaxBurst frames of credit are kept, so a stall (a debugger
// pause, a slow terminal) does not cause a burst of catch-up frames.
//
// A Pacer is driven by a single frame loop and is not safe for
// concurrent use.
//
//	p := pacer.New(60)
//	for {
//	    now, err := p.Wait(ctx)
//	    if err != nil {
//	        break
//	    }
//	    hud.Tick(...)
//	}
type Pacer struct {
	fps       float64
	maxBurst  float64
	credit    float64   // frames owed, fractional
	lastFrame time.Time // start of the previous frame or its scheduled time

	frames int64
	late   int64
	waited time.Duration

	now func() time.Time
}

// New creates a pacer for fps frames per second. Non-positive rates
// default to one frame per second. The first frame is due immediately.
func New(fps float64) *Pacer {
	return newPacer(fps, 1, time.Now)
}

// NewWithBurst creates a pacer that keeps up to maxBurst frames of credit.
// Values below 1 mean strict pacing.
func NewWithBurst(fps, maxBurst float64) *Pacer {
	return newPacer(fps, maxBurst, time.Now)
}

func newPacer(fps, maxBurst float64, now func() time.Time) *Pacer {
	if fps <= 0 {
		fps = 1
	}
	if maxBurst < 1 {
		maxBurst = 1
	}
	return &Pacer{
		fps:       fps,
		maxBurst:  maxBurst,
		credit:    1,
		lastFrame: now(),
		now:       now,
	}
}

// Next returns when the next frame should start. A time in the past, or
// now, means the frame loop is behind and should run immediately.
func (p *Pacer) Next() time.Time {
	now := p.now()
	elapsed := now.Sub(p.lastFrame).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	p.credit += elapsed * p.fps
	if p.credit > p.maxBurst {
		p.credit = p.maxBurst
	}
	p.frames++

	if p.credit >= 1 {
		p.credit--
		p.lastFrame = now
		if p.frames > 1 {
			p.late++
		}
		return now
	}

	wait := time.Duration((1 - p.credit) / p.fps * float64(time.Second))
	p.credit = 0

	// lastFrame moves to the scheduled time so the sleep is not counted
	// as credit on the following call
	next := now.Add(wait)
	p.lastFrame = next
	p.waited += wait
	return next
}

// Wait blocks until the next frame is due and returns its start time.
// It returns ctx.Err() if ctx is done first.
func (p *Pacer) Wait(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	next := p.Next()
	wait := next.Sub(p.now())
	if wait <= 0 {
		return p.now(), nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	case <-timer.C:
		return p.now(), nil
	}
}

// SetFPS changes the target rate. Accrued credit is dropped so a lower
// rate does not start with a burst.
func (p *Pacer) SetFPS(fps float64) {
	if fps <= 0 {
		fps = 1
	}
	p.fps = fps
	p.credit = 0
	p.lastFrame = p.now()
}

// FPS returns the target rate.
func (p *Pacer) FPS() float64 {
	return p.fps
}

// Interval returns the target time between frames.
func (p *Pacer) Interval() time.Duration {
	return time.Duration(float64(time.Second) / p.fps)
}

// Stats describes how a pacer has scheduled frames so far.
type Stats struct {
	FPS    float64       `json:"fps"`
	Frames int64         `json:"frames"`
	Late   int64         `json:"late"`   // frames that started behind schedule
	Waited time.Duration `json:"waited"` // total time scheduled as sleep
}

// Stats returns the pacing statistics.
func (p *Pacer) Stats() Stats {
	return Stats{
		FPS:    p.fps,
		Frames: p.frames,
		Late:   p.late,
		Waited: p.waited,
	}
}
