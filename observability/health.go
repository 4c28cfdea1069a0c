package observability

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// SelfStats is the health snapshot served to platform probes.
type SelfStats struct {
	Status     string  `json:"status"`
	Pid        int     `json:"pid"`
	Uptime     string  `json:"uptime"`
	RssBytes   uint64  `json:"rss_bytes"`
	CpuPercent float64 `json:"cpu_percent"`
	AllocMemMb uint64  `json:"alloc_mem_mb"`
	NumGC      uint32  `json:"num_gc"`
	Goroutines int     `json:"goroutines"`
}

type HealthReporter struct {
	log       *slog.Logger
	proc      *process.Process
	startedAt time.Time
}

func NewHealthReporter(log *slog.Logger) *HealthReporter {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process stats unavailable", "error", err)
	}
	return &HealthReporter{log: log, proc: p, startedAt: time.Now()}
}

// Snapshot collects memory and CPU figures for the current process.
// Figures gopsutil cannot read are left at zero; the service is still reported up.
func (h *HealthReporter) Snapshot() SelfStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := SelfStats{
		Status:     "UP",
		Pid:        os.Getpid(),
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
		AllocMemMb: m.Alloc / 1024 / 1024,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
	if h.proc == nil {
		return stats
	}
	if memInfo, err := h.proc.MemoryInfo(); err == nil {
		stats.RssBytes = memInfo.RSS
	} else {
		h.log.Debug("Failed to read memory info", "error", err)
	}
	if cpu, err := h.proc.CPUPercent(); err == nil {
		stats.CpuPercent = cpu
	} else {
		h.log.Debug("Failed to read cpu usage", "error", err)
	}
	return stats
}
