package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/perfhud/internal/config"
	"github.com/wesleyorama2/perfhud/internal/hud"
	"github.com/wesleyorama2/perfhud/internal/hud/provider"
	"github.com/wesleyorama2/perfhud/internal/logging"
	"github.com/wesleyorama2/perfhud/internal/output"
	"github.com/wesleyorama2/perfhud/internal/pacer"
)

const (
	// liveRedrawInterval throttles in-place terminal redraws
	liveRedrawInterval = 100 * time.Millisecond

	// lineUpdateInterval throttles one-line updates when not on a TTY
	lineUpdateInterval = time.Second
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a HUD at a target frame rate and render it in the terminal",
	Long: `Run samples every configured provider once per frame, feeds the graph
and bar estimators, and renders the result live.

Without --config a built-in HUD is used (frame time, FPS, CPU, memory):
  perfhud run

With a configuration file, limited to 600 frames:
  perfhud run --config hud.yaml --frames 600

Print the final frame as JSON (the live view goes to stderr):
  perfhud run --config hud.yaml --duration 10s --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runHUD(ctx, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// runOptions holds the run command settings. Zero values and negative
// frame counts defer to the configuration file.
type runOptions struct {
	ConfigPath string
	Frames     int
	FPS        float64
	Duration   time.Duration
	NoColor    bool
	Quiet      bool
	JSON       bool
	LogLevel   string
}

func runOptionsFromFlags(cmd *cobra.Command) (runOptions, error) {
	opts := runOptions{Frames: -1}
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	if cmd.Flags().Changed("frames") {
		opts.Frames, _ = cmd.Flags().GetInt("frames")
		if opts.Frames < 0 {
			return opts, fmt.Errorf("--frames must not be negative")
		}
	}
	opts.FPS, _ = cmd.Flags().GetFloat64("fps")
	opts.Duration, _ = cmd.Flags().GetDuration("duration")
	opts.NoColor, _ = cmd.Flags().GetBool("no-color")
	opts.Quiet, _ = cmd.Flags().GetBool("quiet")
	opts.JSON, _ = cmd.Flags().GetBool("json")
	opts.LogLevel, _ = cmd.Flags().GetString("log-level")
	return opts, nil
}

// loadRunConfig loads, overrides and validates the configuration.
func loadRunConfig(opts runOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigPath == "" {
		cfg = config.Default()
	} else {
		loaded, err := config.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.FPS > 0 {
		cfg.Run.FPS = opts.FPS
	}
	if opts.Frames >= 0 {
		cfg.Run.Frames = opts.Frames
	}
	if opts.Duration > 0 {
		cfg.Run.Duration = config.Duration(opts.Duration)
	}
	config.ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runMetrics are the frame loop's own Prometheus metrics. They live in
// the same in-process registry that gatherer providers read, so a HUD can
// graph its own loop.
type runMetrics struct {
	frames       prometheus.Counter
	frameSeconds prometheus.Histogram
	sampled      prometheus.Gauge
}

func newRunMetrics(reg prometheus.Registerer) *runMetrics {
	f := promauto.With(reg)
	return &runMetrics{
		frames: f.NewCounter(prometheus.CounterOpts{
			Name: "perfhud_frames_total",
			Help: "Frames ticked by the run loop.",
		}),
		frameSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "perfhud_frame_seconds",
			Help:    "Wall time between consecutive frames.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		sampled: f.NewGauge(prometheus.GaugeOpts{
			Name: "perfhud_providers_sampled",
			Help: "Providers that produced a value in the last frame.",
		}),
	}
}

// newGatherer builds the in-process registry with Go runtime and process
// collectors plus the run loop metrics.
func newGatherer() (*prometheus.Registry, *runMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, newRunMetrics(reg)
}

// diagnostics produces the per-frame JSON document read by JSONPath
// providers. Runtime stats are refreshed at most once per interval.
type diagnostics struct {
	interval time.Duration
	lastRead time.Time
	doc      diagnosticsDoc
}

type diagnosticsDoc struct {
	Frame   uint64             `json:"frame"`
	Go      goStats            `json:"go"`
	Metrics map[string]float64 `json:"metrics"`
}

type goStats struct {
	HeapMB      float64 `json:"heap_mb"`
	SysMB       float64 `json:"sys_mb"`
	Goroutines  int     `json:"goroutines"`
	GCCycles    uint32  `json:"gc_cycles"`
	LastPauseMS float64 `json:"last_pause_ms"`
}

// build returns the document for a frame. metrics is the previous frame's
// cache snapshot, so JSONPath providers can derive values from other keys.
func (d *diagnostics) build(frame uint64, now time.Time, metrics map[string]float64) []byte {
	if d.lastRead.IsZero() || now.Sub(d.lastRead) >= d.interval {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		d.doc.Go = goStats{
			HeapMB:      float64(ms.HeapAlloc) / (1 << 20),
			SysMB:       float64(ms.Sys) / (1 << 20),
			Goroutines:  runtime.NumGoroutine(),
			GCCycles:    ms.NumGC,
			LastPauseMS: float64(ms.PauseNs[(ms.NumGC+255)%256]) / 1e6,
		}
		d.lastRead = now
	}
	d.doc.Frame = frame
	d.doc.Metrics = metrics

	b, err := json.Marshal(d.doc)
	if err != nil {
		return nil
	}
	return b
}

// runHUD drives the frame loop until the frame or time limit is reached or
// ctx is cancelled.
func runHUD(ctx context.Context, opts runOptions, stdout, stderr io.Writer) error {
	logger, err := logging.New(logging.Options{Level: opts.LogLevel, Development: true, Output: stderr})
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadRunConfig(opts)
	if err != nil {
		return err
	}
	for _, key := range cfg.UnknownKeys() {
		logger.Warn("no provider for metric key; it will render empty", zap.String("key", key))
	}

	gatherer, metrics := newGatherer()
	registry := provider.NewRegistry(logger)
	if err := cfg.RegisterProviders(registry, gatherer, logger); err != nil {
		return err
	}
	h := hud.New(cfg.HUDOptions(registry, logger))

	// With --json the live view moves to stderr so stdout stays parseable
	consoleOut := stdout
	if opts.JSON {
		consoleOut = stderr
	}
	console := output.NewConsole(output.ConsoleConfig{
		Title:   cfg.Name,
		Writer:  consoleOut,
		Quiet:   opts.Quiet,
		NoColor: opts.NoColor,
	})

	pace := pacer.New(cfg.Run.FPS)
	logger.Debug("starting HUD run",
		zap.String("name", cfg.Name),
		zap.Float64("fps", cfg.Run.FPS),
		zap.Duration("interval", cfg.Run.FrameInterval()),
		zap.Int("frames", cfg.Run.Frames),
		zap.Duration("duration", time.Duration(cfg.Run.Duration)),
		zap.Strings("providers", registry.IDs()))

	var diag *diagnostics
	if len(cfg.Providers.JSONPath) > 0 {
		diag = &diagnostics{interval: time.Duration(cfg.Providers.RefreshInterval)}
	}

	console.PrintHeader()

	start := time.Now()
	var (
		last       time.Time
		frame      hud.Frame
		n          uint64
		lastRedraw time.Time
	)

	for {
		now, err := pace.Wait(ctx)
		if err != nil {
			break
		}

		n++
		pctx := &provider.Context{
			Frame:    n,
			Now:      now,
			Elapsed:  now.Sub(start),
			Gatherer: gatherer,
		}
		// The first frame has no previous frame to time
		if !last.IsZero() {
			pctx.Delta = now.Sub(last)
		}
		if diag != nil {
			pctx.Diagnostics = diag.build(n, now, h.Cache().Snapshot())
		}
		last = now

		frame = h.Tick(pctx)
		metrics.frames.Inc()
		if pctx.Delta > 0 {
			metrics.frameSeconds.Observe(pctx.Delta.Seconds())
		}
		metrics.sampled.Set(float64(frame.Sampled))

		if console.IsTTY() {
			if now.Sub(lastRedraw) >= liveRedrawInterval {
				console.Update(frame, pctx.Elapsed)
				lastRedraw = now
			}
		} else if now.Sub(lastRedraw) >= lineUpdateInterval {
			console.PrintNonInteractiveUpdate(frame, pctx.Elapsed)
			lastRedraw = now
		}

		if cfg.Run.Frames > 0 && n >= uint64(cfg.Run.Frames) {
			break
		}
		if cfg.Run.Duration > 0 && pctx.Elapsed >= time.Duration(cfg.Run.Duration) {
			break
		}
	}

	elapsed := time.Since(start)
	console.PrintSummary(frame, n, elapsed)
	stats := pace.Stats()
	logger.Debug("HUD run finished",
		zap.Uint64("frames", n),
		zap.Duration("elapsed", elapsed),
		zap.Int64("late_frames", stats.Late),
		zap.Duration("slept", stats.Waited))

	if opts.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(frame); err != nil {
			return fmt.Errorf("failed to write JSON frame: %w", err)
		}
	}
	return nil
}

func init() {
	runCmd.Flags().StringP("config", "c", "", "HUD configuration file (YAML or JSON)")
	runCmd.Flags().Int("frames", 0, "Stop after this many frames (0 = unlimited)")
	runCmd.Flags().Float64("fps", 0, "Target frame rate (overrides run.fps)")
	runCmd.Flags().Duration("duration", 0, "Stop after this long (e.g., 10s)")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	runCmd.Flags().BoolP("quiet", "q", false, "Disable the live view, print only the final frame summary")
	runCmd.Flags().Bool("json", false, "Print the final frame as JSON on stdout")
	runCmd.Flags().String("log-level", "warn", "Log level: debug, info, warn, error")
}
