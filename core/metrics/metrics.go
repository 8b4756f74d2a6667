package metrics

import (
	"errors"
	"fmt"
	"time"

	"imgdiff/core/report"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeClean   = "clean"
	OutcomeChanged = "changed"
	OutcomeError   = "error"
)

// Observer captures telemetry for batch runs.
type Observer interface {
	RecordRun(duration time.Duration, summary report.Summary, err error)
}

// PrometheusObserver exports batch run metrics to Prometheus.
type PrometheusObserver struct {
	runs     *prometheus.CounterVec
	duration prometheus.Histogram
	entries  *prometheus.CounterVec
}

// NewPrometheusObserver registers the run metrics under namespace.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = "imgdiff"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_runs_total",
			Help:      "Batch runs by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_run_duration_seconds",
			Help:      "Wall time of batch runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_entries_total",
			Help:      "Report entries by category.",
		}, []string{"category"}),
	}

	collectors := []prometheus.Collector{o.runs, o.duration, o.entries}
	for i, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				collectors[i] = are.ExistingCollector
				continue
			}
			return nil, fmt.Errorf("register batch metric: %w", err)
		}
	}
	o.runs = collectors[0].(*prometheus.CounterVec)
	o.duration = collectors[1].(prometheus.Histogram)
	o.entries = collectors[2].(*prometheus.CounterVec)
	return o, nil
}

// RecordRun tracks one run. Entry counts are only added for successful runs.
func (o *PrometheusObserver) RecordRun(duration time.Duration, summary report.Summary, err error) {
	if o == nil {
		return
	}
	o.duration.Observe(duration.Seconds())

	switch {
	case err != nil:
		o.runs.WithLabelValues(OutcomeError).Inc()
		return
	case summary.New+summary.Diff+summary.Removed == 0:
		o.runs.WithLabelValues(OutcomeClean).Inc()
	default:
		o.runs.WithLabelValues(OutcomeChanged).Inc()
	}

	o.entries.WithLabelValues("new").Add(float64(summary.New))
	o.entries.WithLabelValues("diff").Add(float64(summary.Diff))
	o.entries.WithLabelValues("match").Add(float64(summary.Match))
	o.entries.WithLabelValues("removed").Add(float64(summary.Removed))
}

type nopObserver struct{}

func (nopObserver) RecordRun(time.Duration, report.Summary, error) {}

// Nop returns an Observer that records nothing.
func Nop() Observer { return nopObserver{} }
