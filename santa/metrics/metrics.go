// Package metrics holds the Prometheus collectors for a single matching run.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run owns a private registry so that concurrent runs in tests do not share counters.
// A nil *Run is valid and records nothing.
type Run struct {
	Registry *prometheus.Registry

	// santa_classifications_total{emotion}
	Classifications *prometheus.CounterVec
	// santa_query_failures_total
	QueryFailures prometheus.Counter
	// santa_query_duration_seconds
	QueryDuration prometheus.Histogram
	// santa_assignments_total{kind=preferred|fallback}
	Assignments *prometheus.CounterVec
}

func New() *Run {
	r := &Run{
		Registry: prometheus.NewRegistry(),
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "santa_classifications_total",
			Help: "Participants classified, by resulting emotion label",
		}, []string{"emotion"}),
		QueryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "santa_query_failures_total",
			Help: "Profile store queries that failed and were downgraded to the default label",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "santa_query_duration_seconds",
			Help:    "Profile store query latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		Assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "santa_assignments_total",
			Help: "Giver to receiver assignments, by whether the preference table was satisfied",
		}, []string{"kind"}),
	}
	r.Registry.MustRegister(r.Classifications, r.QueryFailures, r.QueryDuration, r.Assignments)
	return r
}

func (r *Run) RecordClassification(emotion string) {
	if r == nil {
		return
	}
	r.Classifications.WithLabelValues(emotion).Inc()
}

func (r *Run) RecordQuery(d time.Duration, err error) {
	if r == nil {
		return
	}
	r.QueryDuration.Observe(d.Seconds())
	if err != nil {
		r.QueryFailures.Inc()
	}
}

func (r *Run) RecordAssignment(preferred bool) {
	if r == nil {
		return
	}
	kind := "fallback"
	if preferred {
		kind = "preferred"
	}
	r.Assignments.WithLabelValues(kind).Inc()
}

// WriteTextfile dumps the registry in the text exposition format, suitable for a
// node_exporter textfile collector.
func (r *Run) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.Registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
