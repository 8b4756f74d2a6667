// Package metrics exports batch run telemetry to Prometheus.
//
// An Observer records the duration and outcome of every run and the number
// of entries per report category. NewPrometheusObserver registers the
// collectors on the given registerer; Nop discards everything and is used by
// the CLI, which has no scrape endpoint.
package metrics
