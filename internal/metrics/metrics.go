// Package metrics exposes Prometheus counters and histograms for the
// analysis and suggestion pipelines. The engine itself never starts an
// HTTP listener; cmd/bha wires prometheus/client_golang/prometheus/promhttp
// onto an optional --metrics-addr listener, the same split kraklabs-cie
// uses between pkg/ingestion/metrics.go and cmd/cie's own listener.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// durationBuckets mirrors kraklabs-cie's pkg/ingestion/metrics.go bucket
// choice: fine-grained below one second, coarser out to ten.
var durationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

type engineMetrics struct {
	once sync.Once

	analyzerRuns    *prometheus.CounterVec
	analyzerSkips   *prometheus.CounterVec
	analyzerSeconds *prometheus.HistogramVec

	generatorRuns    *prometheus.CounterVec
	suggestionsEmitted *prometheus.CounterVec
	generatorSeconds *prometheus.HistogramVec

	exportsTotal  *prometheus.CounterVec
	exportSeconds *prometheus.HistogramVec
}

var m engineMetrics

func (e *engineMetrics) init() {
	e.once.Do(func() {
		e.analyzerRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bha_analyzer_runs_total", Help: "Analyzer passes attempted, by analyzer name.",
		}, []string{"analyzer"})
		e.analyzerSkips = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bha_analyzer_skips_total", Help: "Analyzer passes skipped after returning an error.",
		}, []string{"analyzer"})
		e.analyzerSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "bha_analyzer_seconds", Help: "Analyzer pass duration.", Buckets: durationBuckets,
		}, []string{"analyzer"})

		e.generatorRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bha_generator_runs_total", Help: "Suggestion generator passes attempted, by type.",
		}, []string{"generator"})
		e.suggestionsEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bha_suggestions_emitted_total", Help: "Suggestions emitted, by type.",
		}, []string{"generator"})
		e.generatorSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "bha_generator_seconds", Help: "Suggestion generator pass duration.", Buckets: durationBuckets,
		}, []string{"generator"})

		e.exportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bha_exports_total", Help: "Completed exports, by format.",
		}, []string{"format"})
		e.exportSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "bha_export_seconds", Help: "Export duration.", Buckets: durationBuckets,
		}, []string{"format"})

		prometheus.MustRegister(
			e.analyzerRuns, e.analyzerSkips, e.analyzerSeconds,
			e.generatorRuns, e.suggestionsEmitted, e.generatorSeconds,
			e.exportsTotal, e.exportSeconds,
		)
	})
}

// RecordAnalyzerRun records one analyzer pass: whether it was skipped
// (returned an error) and how long it ran.
func RecordAnalyzerRun(analyzer string, skipped bool, seconds float64) {
	m.init()
	m.analyzerRuns.WithLabelValues(analyzer).Inc()
	if skipped {
		m.analyzerSkips.WithLabelValues(analyzer).Inc()
	}
	m.analyzerSeconds.WithLabelValues(analyzer).Observe(seconds)
}

// RecordGeneratorRun records one suggestion generator pass.
func RecordGeneratorRun(generator string, emitted int, seconds float64) {
	m.init()
	m.generatorRuns.WithLabelValues(generator).Inc()
	m.suggestionsEmitted.WithLabelValues(generator).Add(float64(emitted))
	m.generatorSeconds.WithLabelValues(generator).Observe(seconds)
}

// RecordExport records one completed export.
func RecordExport(format string, seconds float64) {
	m.init()
	m.exportsTotal.WithLabelValues(format).Inc()
	m.exportSeconds.WithLabelValues(format).Observe(seconds)
}
