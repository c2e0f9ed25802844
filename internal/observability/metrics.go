package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects seeding and benchmark measurements for one process run.
// The tools are one-shot, so the registry is dumped as a node_exporter textfile
// instead of being scraped.
type Metrics struct {
	Registry *prometheus.Registry

	SeedRows      prometheus.Counter
	SeedBatches   prometheus.Counter
	BatchDuration prometheus.Histogram

	QueryDuration *prometheus.HistogramVec
	QueryRows     prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		SeedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "indexbench",
			Subsystem: "seed",
			Name:      "rows_total",
			Help:      "Rows written by the bulk seeder.",
		}),
		SeedBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "indexbench",
			Subsystem: "seed",
			Name:      "batches_total",
			Help:      "Batch writes performed by the bulk seeder.",
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "indexbench",
			Subsystem: "seed",
			Name:      "batch_duration_seconds",
			Help:      "Latency of a single batch write.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "indexbench",
			Subsystem: "bench",
			Name:      "query_duration_seconds",
			Help:      "Benchmark query latency by full_name index presence.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"index"}), // index=present|absent
		QueryRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "indexbench",
			Subsystem: "bench",
			Name:      "query_rows",
			Help:      "Rows returned by the last benchmark query.",
		}),
	}
	reg.MustRegister(m.SeedRows, m.SeedBatches, m.BatchDuration, m.QueryDuration, m.QueryRows)
	return m
}

// ObserveBatch records one completed batch write.
func (m *Metrics) ObserveBatch(rows int, d time.Duration) {
	m.SeedRows.Add(float64(rows))
	m.SeedBatches.Inc()
	m.BatchDuration.Observe(d.Seconds())
}

// ObserveQuery records one benchmark query execution.
func (m *Metrics) ObserveQuery(rows int, d time.Duration, indexed bool) {
	label := "absent"
	if indexed {
		label = "present"
	}
	m.QueryDuration.WithLabelValues(label).Observe(d.Seconds())
	m.QueryRows.Set(float64(rows))
}

// WriteTextfile writes the registry in text exposition format. Empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
