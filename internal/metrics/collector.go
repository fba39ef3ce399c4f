package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/fibfizz/internal/fizzbuzz"
	"github.com/agbru/fibfizz/internal/orchestration"
	"github.com/agbru/fibfizz/internal/sysmon"
)

const namespace = "fibfizz"

// numberLabel is the result label value for terms that pass through
// unlabelled.
const numberLabel = "number"

// Run status label values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Collector owns a Prometheus registry describing one or more runs.
type Collector struct {
	registry     *prometheus.Registry
	records      *prometheus.CounterVec
	lastPosition prometheus.Gauge
	runs         *prometheus.CounterVec
	duration     prometheus.Gauge
	memory       memoryGauges
	memCollector *MemoryCollector
	host         hostGauges
	sampleHost   func() sysmon.Stats
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Records emitted, by classification result.",
		}, []string{"result"}),
		lastPosition: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_position",
			Help:      "Position of the last emitted record.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed runs, by status.",
		}, []string{"status"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		memCollector: NewMemoryCollector(),
		sampleHost:   sysmon.Sample,
	}
	reg.MustRegister(c.records, c.lastPosition, c.runs, c.duration)
	c.memory = newMemoryGauges(reg)
	c.host = newHostGauges(reg)

	// Pre-create every series so a run that never hits a label still
	// exports it as zero.
	for _, name := range resultLabels() {
		c.records.WithLabelValues(name)
	}
	c.runs.WithLabelValues(StatusOK)
	c.runs.WithLabelValues(StatusFailed)
	return c
}

// Gatherer exposes the registry for inspection.
func (c *Collector) Gatherer() prometheus.Gatherer { return c.registry }

// Sink wraps next so that every record it accepts is counted. Records that
// next rejects are not counted.
func (c *Collector) Sink(next orchestration.Sink) orchestration.Sink {
	return orchestration.SinkFunc(func(rec orchestration.Record) error {
		if err := next.Emit(rec); err != nil {
			return err
		}
		c.records.WithLabelValues(resultLabel(rec)).Inc()
		c.lastPosition.Set(float64(rec.Position))
		return nil
	})
}

// ObserveRun records the outcome of a finished run along with process
// memory and host usage snapshots.
func (c *Collector) ObserveRun(summary orchestration.Summary, runErr error) {
	status := StatusOK
	if runErr != nil {
		status = StatusFailed
	}
	c.runs.WithLabelValues(status).Inc()
	c.duration.Set(summary.Elapsed.Seconds())
	c.memory.set(c.memCollector.Snapshot())
	c.host.set(c.sampleHost())
}

// WriteTextfile writes the registry to path atomically in the text
// exposition format understood by node_exporter's textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}

func resultLabel(rec orchestration.Record) string {
	if rec.Result.IsLabel() {
		return rec.Result.Label().String()
	}
	return numberLabel
}

func resultLabels() []string {
	names := make([]string, 0, len(fizzbuzz.Labels)+1)
	for _, l := range fizzbuzz.Labels {
		names = append(names, l.String())
	}
	return append(names, numberLabel)
}
