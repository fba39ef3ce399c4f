package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/fibfizz/internal/sysmon"
)

// hostGauges exposes host CPU and memory usage sampled at the end of a run.
type hostGauges struct {
	cpu prometheus.Gauge
	mem prometheus.Gauge
}

func newHostGauges(reg prometheus.Registerer) hostGauges {
	g := hostGauges{
		cpu: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "host",
			Name:      "cpu_percent",
			Help:      "Host CPU usage when the run finished.",
		}),
		mem: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "host",
			Name:      "memory_percent",
			Help:      "Host memory usage when the run finished.",
		}),
	}
	reg.MustRegister(g.cpu, g.mem)
	return g
}

func (g hostGauges) set(s sysmon.Stats) {
	g.cpu.Set(s.CPUPercent)
	g.mem.Set(s.MemPercent)
}
