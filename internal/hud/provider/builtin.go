package provider

import (
	"time"

	"go.uber.org/zap"
)

// Built-in metric keys.
const (
	KeyFrameTime    = "frame_time_ms"
	KeyFrameTimeP99 = "frame_time_p99_ms"
	KeyFPS          = "fps"
	KeyEntityCount  = "entity_count"
	KeySystemCPU    = "system/cpu_usage"
	KeySystemMemory = "system/mem_usage"
	KeyProcessCPU   = "process/cpu_usage"
	KeyProcessMem   = "process/mem_mb"
)

// BuiltinKeys lists every built-in metric key in registration order.
func BuiltinKeys() []string {
	return []string{
		KeyFrameTime,
		KeyFPS,
		KeyFrameTimeP99,
		KeyEntityCount,
		KeySystemCPU,
		KeySystemMemory,
		KeyProcessCPU,
		KeyProcessMem,
	}
}

// DefaultsOptions configures the built-in providers.
type DefaultsOptions struct {
	// RefreshInterval throttles OS probes (default: 500ms)
	RefreshInterval time.Duration

	// PercentileWindow is the frame count covered by frame_time_p99_ms (default: 240)
	PercentileWindow int

	// DisableSystem skips the OS CPU/memory providers
	DisableSystem bool

	Logger *zap.Logger
}

// RegisterDefaults adds the built-in providers through Ensure, so any
// provider the caller registered earlier for the same key is kept.
// It returns the keys that were actually added.
func (r *Registry) RegisterDefaults(opts DefaultsOptions) []string {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.logger
	}

	candidates := []Provider{
		FrameTime(),
		FPS(),
		NewFrameTimePercentile(KeyFrameTimeP99, 99, opts.PercentileWindow),
		EntityCount(),
	}
	if !opts.DisableSystem {
		candidates = append(candidates,
			NewSystemCPU(opts.RefreshInterval, logger),
			NewSystemMemory(opts.RefreshInterval, logger),
			NewProcessCPU(opts.RefreshInterval, logger),
			NewProcessMemory(opts.RefreshInterval, logger),
		)
	}

	var added []string
	for _, p := range candidates {
		if r.Ensure(p) {
			added = append(added, p.ID())
		}
	}
	return added
}

// FrameTime reports the previous frame's duration in milliseconds.
func FrameTime() *Func {
	return NewFunc(KeyFrameTime, func(ctx *Context) (float64, bool) {
		if ctx.Delta <= 0 {
			return 0, false
		}
		return float64(ctx.Delta) / float64(time.Millisecond), true
	})
}

// FPS reports the instantaneous frame rate derived from the frame delta.
func FPS() *Func {
	return NewFunc(KeyFPS, func(ctx *Context) (float64, bool) {
		if ctx.Delta <= 0 {
			return 0, false
		}
		return 1 / ctx.Delta.Seconds(), true
	})
}

// EntityCount reports the application's live entity count.
func EntityCount() *Func {
	return NewFunc(KeyEntityCount, func(ctx *Context) (float64, bool) {
		if ctx.EntityCounter == nil {
			return 0, false
		}
		return float64(ctx.EntityCounter()), true
	})
}
