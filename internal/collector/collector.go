package collector

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/janyksteenbeek/hostcheckr/internal/command"
	"github.com/janyksteenbeek/hostcheckr/internal/config"
)

const memoryUnavailable = "Memory stats unavailable (Not Linux)"

// Collector samples memory, load, root disk usage and the auxiliary
// service. A failing source leaves its metric at the zero-pressure default.
type Collector struct {
	log    *slog.Logger
	runner command.Runner

	getLoadAvg   func(context.Context) (*load.AvgStat, error)
	getMemStats  func(context.Context) (*mem.VirtualMemoryStat, error)
	getDiskUsage func(context.Context, string) (*disk.UsageStat, error)
}

// New creates a collector backed by gopsutil. runner is used for the
// auxiliary service lookup; log may be nil.
func New(runner command.Runner, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if runner == nil {
		runner = command.ExecRunner{}
	}
	return &Collector{
		log:          log.With("component", "collector"),
		runner:       runner,
		getLoadAvg:   load.AvgWithContext,
		getMemStats:  mem.VirtualMemoryWithContext,
		getDiskUsage: disk.UsageWithContext,
	}
}

// Collect gathers all sources. It never fails.
func (c *Collector) Collect(ctx context.Context) *Metrics {
	metrics := &Metrics{
		Details:     map[string]any{},
		CollectedAt: time.Now().UTC().Format(time.RFC3339),
	}

	c.collectMemory(ctx, metrics)
	c.collectLoad(ctx, metrics)
	c.collectDisk(ctx, metrics)
	c.collectAuxService(ctx, metrics)

	return metrics
}

func (c *Collector) collectMemory(ctx context.Context, metrics *Metrics) {
	vm, err := c.getMemStats(ctx)
	if err != nil {
		c.log.Debug("memory source unavailable", "error", err)
		metrics.Details[DetailErrorMemory] = memoryUnavailable
		return
	}

	used := safeSub(vm.Total, vm.Available)
	metrics.MemoryPercent = percentOf(used, vm.Total)
	metrics.Details[DetailMemoryUsedMB] = int(used / 1024 / 1024)
	metrics.Details[DetailMemoryTotalMB] = int(vm.Total / 1024 / 1024)
}

func (c *Collector) collectLoad(ctx context.Context, metrics *Metrics) {
	avg, err := c.getLoadAvg(ctx)
	if err != nil {
		c.log.Debug("load average unavailable", "error", err)
		metrics.Details[DetailErrorLoad] = err.Error()
		return
	}
	if avg.Load1 < 0 || math.IsNaN(avg.Load1) {
		return
	}
	metrics.CPULoad = math.Round(avg.Load1*100) / 100
}

func (c *Collector) collectDisk(ctx context.Context, metrics *Metrics) {
	usage, err := c.getDiskUsage(ctx, config.RootMount)
	if err != nil {
		c.log.Debug("root filesystem stats unavailable", "error", err)
		metrics.Details[DetailErrorDisk] = err.Error()
		return
	}

	// Free is f_bavail, the space left to unprivileged users.
	metrics.DiskPercent = percentOf(safeSub(usage.Total, usage.Free), usage.Total)
}

func (c *Collector) collectAuxService(ctx context.Context, metrics *Metrics) {
	err := command.RunWithTimeout(ctx, c.runner, config.LivenessTimeout,
		config.ProcessSearchBin, config.AuxServiceName)
	if err != nil {
		c.log.Debug("auxiliary service not detected", "service", config.AuxServiceName, "error", err)
		return
	}
	metrics.AuxServiceActive = true
}

// percentOf returns floor(part/total*100) clamped to 0..100.
func percentOf(part, total uint64) int {
	if total == 0 {
		return 0
	}
	p := part * 100 / total
	if p > 100 {
		return 100
	}
	return int(p)
}

func safeSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
