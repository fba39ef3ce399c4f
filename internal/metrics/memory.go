package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc uint64 // bytes in use by application
	Sys       uint64 // total bytes obtained from OS
	NumGC     uint32 // number of completed GC cycles
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct {
	read func(*runtime.MemStats)
}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{read: runtime.ReadMemStats}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	mc.read(&m)
	return MemorySnapshot{
		HeapAlloc: m.HeapAlloc,
		Sys:       m.Sys,
		NumGC:     m.NumGC,
	}
}

// memoryGauges exposes the last snapshot taken at the end of a run.
type memoryGauges struct {
	heapAlloc prometheus.Gauge
	sys       prometheus.Gauge
	numGC     prometheus.Gauge
}

func newMemoryGauges(reg prometheus.Registerer) memoryGauges {
	g := memoryGauges{
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap bytes in use when the run finished.",
		}),
		sys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sys_bytes",
			Help:      "Bytes obtained from the OS when the run finished.",
		}),
		numGC: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "gc_cycles",
			Help:      "Completed GC cycles when the run finished.",
		}),
	}
	reg.MustRegister(g.heapAlloc, g.sys, g.numGC)
	return g
}

func (g memoryGauges) set(s MemorySnapshot) {
	g.heapAlloc.Set(float64(s.HeapAlloc))
	g.sys.Set(float64(s.Sys))
	g.numGC.Set(float64(s.NumGC))
}
