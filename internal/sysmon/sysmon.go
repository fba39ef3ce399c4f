// Package sysmon samples host CPU and memory usage. The readings are
// exported with the run metrics and shown by the REPL status command.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of host resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sources of the readings, replaced in tests.
var (
	cpuPercent    = func() ([]float64, error) { return cpu.Percent(0, false) }
	memoryPercent = func() (float64, error) {
		vmem, err := mem.VirtualMemory()
		if err != nil || vmem == nil {
			return 0, err
		}
		return vmem.UsedPercent, nil
	}
)

// Sample collects a host CPU and memory snapshot. CPU usage is the delta
// since the previous call, so the first call in a process may read 0.
// A reading that fails is reported as 0.
func Sample() Stats {
	var s Stats
	if pcts, err := cpuPercent(); err == nil && len(pcts) > 0 {
		s.CPUPercent = clamp(pcts[0])
	}
	if pct, err := memoryPercent(); err == nil {
		s.MemPercent = clamp(pct)
	}
	return s
}

func clamp(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
