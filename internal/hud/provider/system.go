package provider

import (
	"errors"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/wesleyorama2/perfhud/internal/logging"
)

// DefaultRefreshInterval is how often OS probes are re-read.
const DefaultRefreshInterval = 500 * time.Millisecond

// bytesPerMiB converts RSS bytes to MiB.
const bytesPerMiB = 1 << 20

var errNoCPUData = errors.New("cpu: no usage data reported")

// Probe wraps an OS counter read behind a refresh throttle.
//
// OS counters are far more expensive than a frame, so a probe re-reads at
// most once per interval (measured on Context.Now) and reports its last
// reading in between. A failed read yields no value until the next
// refresh; each distinct error is logged once at debug level.
type Probe struct {
	id       string
	read     func() (float64, error)
	interval time.Duration
	logger   *zap.Logger

	lastRead time.Time
	value    float64
	valid    bool
	lastErr  string
}

// NewProbe creates a throttled provider for id around read.
func NewProbe(id string, interval time.Duration, read func() (float64, error), logger *zap.Logger) *Probe {
	if interval < 0 {
		interval = 0
	}
	return &Probe{
		id:       id,
		read:     read,
		interval: interval,
		logger:   logging.OrNop(logger),
	}
}

// ID returns the metric key.
func (p *Probe) ID() string { return p.id }

// Sample returns the cached reading, refreshing it when the interval elapsed.
func (p *Probe) Sample(ctx *Context) (float64, bool) {
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}

	if !p.lastRead.IsZero() && now.Sub(p.lastRead) < p.interval {
		return p.value, p.valid
	}
	p.lastRead = now

	v, err := p.read()
	if err != nil {
		if msg := err.Error(); msg != p.lastErr {
			p.lastErr = msg
			p.logger.Debug("metric probe failed", zap.String("metric", p.id), zap.Error(err))
		}
		p.valid = false
		return 0, false
	}

	p.lastErr = ""
	p.value = v
	p.valid = true
	return v, true
}

// NewSystemCPU reports total system CPU usage in percent.
func NewSystemCPU(interval time.Duration, logger *zap.Logger) *Probe {
	return NewProbe(KeySystemCPU, interval, func() (float64, error) {
		// Interval 0 compares against the previous call, so this never blocks.
		percents, err := cpu.Percent(0, false)
		if err != nil {
			return 0, err
		}
		if len(percents) == 0 {
			return 0, errNoCPUData
		}
		return percents[0], nil
	}, logger)
}

// NewSystemMemory reports system memory usage in percent.
func NewSystemMemory(interval time.Duration, logger *zap.Logger) *Probe {
	return NewProbe(KeySystemMemory, interval, func() (float64, error) {
		vm, err := mem.VirtualMemory()
		if err != nil {
			return 0, err
		}
		return vm.UsedPercent, nil
	}, logger)
}

// NewProcessCPU reports this process's CPU usage in percent.
func NewProcessCPU(interval time.Duration, logger *zap.Logger) *Probe {
	var proc *process.Process
	return NewProbe(KeyProcessCPU, interval, func() (float64, error) {
		if proc == nil {
			p, err := process.NewProcess(int32(os.Getpid()))
			if err != nil {
				return 0, err
			}
			proc = p
		}
		return proc.Percent(0)
	}, logger)
}

// NewProcessMemory reports this process's resident set size in MiB.
func NewProcessMemory(interval time.Duration, logger *zap.Logger) *Probe {
	var proc *process.Process
	return NewProbe(KeyProcessMem, interval, func() (float64, error) {
		if proc == nil {
			p, err := process.NewProcess(int32(os.Getpid()))
			if err != nil {
				return 0, err
			}
			proc = p
		}
		info, err := proc.MemoryInfo()
		if err != nil {
			return 0, err
		}
		return float64(info.RSS) / bytesPerMiB, nil
	}, logger)
}
