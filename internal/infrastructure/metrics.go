package infrastructure

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Load outcomes recorded in the status label
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// LoaderMetrics records dataset load outcomes. A nil *LoaderMetrics is valid
// and records nothing.
type LoaderMetrics struct {
	loads    *prometheus.CounterVec
	rows     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewLoaderMetrics creates the loader collectors and registers them with reg
func NewLoaderMetrics(reg prometheus.Registerer) (*LoaderMetrics, error) {
	m := &LoaderMetrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "housing",
			Subsystem: "dataset",
			Name:      "loads_total",
			Help:      "Dataset loads by outcome.",
		}, []string{"dataset", "status"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "housing",
			Subsystem: "dataset",
			Name:      "rows_total",
			Help:      "Rows returned by successful dataset loads.",
		}, []string{"dataset"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "housing",
			Subsystem: "dataset",
			Name:      "load_duration_seconds",
			Help:      "Time spent reading and reshaping one dataset file.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"dataset"}),
	}

	for _, c := range []prometheus.Collector{m.loads, m.rows, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveLoad records one load attempt
func (m *LoaderMetrics) ObserveLoad(dataset string, started time.Time, rows int, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(dataset).Observe(time.Since(started).Seconds())
	if err != nil {
		m.loads.WithLabelValues(dataset, StatusFailure).Inc()
		return
	}
	m.loads.WithLabelValues(dataset, StatusSuccess).Inc()
	m.rows.WithLabelValues(dataset).Add(float64(rows))
}

// WriteTextfile dumps everything gathered by g in the node-exporter textfile format
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
