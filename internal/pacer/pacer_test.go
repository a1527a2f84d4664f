package pacer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		fps      float64
		expected float64
	}{
		{"positive rate", 60, 60},
		{"zero rate defaults to 1", 0, 1},
		{"negative rate defaults to 1", -10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.fps)
			assert.Equal(t, tt.expected, p.FPS())
		})
	}
}

func TestPacer_FirstFrameImmediate(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := newPacer(100, 1, clock.Now)

	assert.Equal(t, clock.t, p.Next())
	assert.Equal(t, int64(0), p.Stats().Late)
}

func TestPacer_SteadyRate(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	start := clock.t
	p := newPacer(100, 1, clock.Now)

	_ = p.Next()
	for i := 1; i <= 5; i++ {
		next := p.Next()
		assert.Equal(t, start.Add(time.Duration(i)*10*time.Millisecond), next, "frame %d", i)
		clock.t = next
	}

	stats := p.Stats()
	assert.Equal(t, int64(6), stats.Frames)
	assert.Equal(t, int64(0), stats.Late)
	assert.Equal(t, 50*time.Millisecond, stats.Waited)
}

func TestPacer_StallDoesNotBurst(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := newPacer(100, 1, clock.Now)
	_ = p.Next()

	clock.Advance(time.Second)
	now := clock.t
	assert.Equal(t, now, p.Next(), "a late frame runs immediately")
	assert.Equal(t, now.Add(10*time.Millisecond), p.Next(), "but only one")
	assert.Equal(t, int64(1), p.Stats().Late)
}

func TestPacer_Burst(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := newPacer(100, 5, clock.Now)
	_ = p.Next()

	clock.Advance(time.Second)
	for i := 0; i < 5; i++ {
		assert.Equal(t, clock.t, p.Next(), "burst frame %d", i)
	}
	assert.True(t, p.Next().After(clock.t))
	assert.Equal(t, int64(5), p.Stats().Late)
}

func TestPacer_SetFPS(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := newPacer(1000, 1, clock.Now)
	_ = p.Next()
	clock.Advance(time.Second)

	p.SetFPS(2)
	assert.Equal(t, 2.0, p.FPS())
	assert.Equal(t, 500*time.Millisecond, p.Interval())
	assert.Equal(t, clock.t.Add(500*time.Millisecond), p.Next(), "accrued credit is dropped")

	p.SetFPS(0)
	assert.Equal(t, 1.0, p.FPS())
}

func TestPacer_Wait(t *testing.T) {
	p := New(1000)

	start := time.Now()
	for i := 0; i < 5; i++ {
		_, err := p.Wait(context.Background())
		require.NoError(t, err)
	}
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int64(5), p.Stats().Frames)
}

func TestPacer_WaitRespectsContext(t *testing.T) {
	p := New(1)
	_, err := p.Wait(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = p.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	cancelled, stop := context.WithCancel(context.Background())
	stop()
	_, err = p.Wait(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
