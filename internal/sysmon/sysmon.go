// Package sysmon samples host and process resource usage for health
// reports.
package sysmon

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // host-wide, 0.0 .. 100.0
	MemPercent float64 // host-wide, 0.0 .. 100.0
	MemTotal   uint64  // host memory in bytes

	HeapAlloc  uint64 // bytes in use by this process
	NumGC      uint32
	Goroutines int
}

// Sample collects one snapshot. CPU usage is the delta since the previous
// call (interval 0), so the first sample of a process may read 0. Host
// values are left at zero when the platform does not report them.
func Sample(ctx context.Context) Stats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Stats{
		HeapAlloc:  ms.HeapAlloc,
		NumGC:      ms.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}

	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
	}
	return s
}
