// Package prom provides a prometheus-backed implementation of the
// use.Observer interface.
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NetPo4ki/go-usewith/use"
)

// Metrics implements use.Observer on top of prometheus collectors.
type Metrics struct {
	started     prometheus.Counter
	finished    *prometheus.CounterVec
	releases    *prometheus.CounterVec
	useDuration prometheus.Histogram
}

var _ use.Observer = (*Metrics)(nil)

// New registers the collectors with reg and returns the observer. Outcome
// labels are "ok", "error" and "panic" for operations, "ok" and "error" for
// releases.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		started: factory.NewCounter(prometheus.CounterOpts{
			Name: "usewith_operations_started_total",
			Help: "Scoped-use operations started.",
		}),
		finished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "usewith_operations_finished_total",
			Help: "Scoped-use operations finished, by outcome.",
		}, []string{"outcome"}),
		releases: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "usewith_releases_total",
			Help: "Resource releases, by outcome.",
		}, []string{"outcome"}),
		useDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "usewith_operation_duration_seconds",
			Help:    "Duration of scoped-use operations.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// UseStarted increments the started counter.
func (m *Metrics) UseStarted(_ context.Context) { m.started.Inc() }

// UseFinished records the outcome and duration of an operation.
func (m *Metrics) UseFinished(_ context.Context, dur time.Duration, err error, panicked bool) {
	outcome := "ok"
	switch {
	case panicked:
		outcome = "panic"
	case err != nil:
		outcome = "error"
	}
	m.finished.WithLabelValues(outcome).Inc()
	m.useDuration.Observe(dur.Seconds())
}

// ResourceReleased records the outcome of a release.
func (m *Metrics) ResourceReleased(_ context.Context, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.releases.WithLabelValues(outcome).Inc()
}
