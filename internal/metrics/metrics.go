// Package metrics records launch outcomes and stage timings with Prometheus.
//
// The launcher is a one-shot process that cannot be scraped, so the registry is
// written in text exposition format for the node exporter textfile collector.
package metrics

import (
	"context"

	"github.com/aretw0/x3launch/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a private registry fed by lifecycle hooks.
type Recorder struct {
	registry      *prometheus.Registry
	launches      *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	lastSuccess   prometheus.Gauge
}

// New creates a Recorder with its metrics registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		launches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "x3launch_launch_total",
				Help: "Launch runs by outcome",
			},
			[]string{"outcome"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "x3launch_stage_duration_seconds",
				Help:    "Time spent in each launch stage",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"stage"},
		),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "x3launch_last_success_timestamp_seconds",
			Help: "Unix time of the last successful launch",
		}),
	}
	r.registry.MustRegister(r.launches, r.stageDuration, r.lastSuccess)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Hooks returns lifecycle hooks that feed the recorder.
func (r *Recorder) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageLeave: func(ctx context.Context, e *domain.StageEvent) {
			r.stageDuration.WithLabelValues(string(e.Stage)).Observe(e.Elapsed.Seconds())
		},
		OnOutcome: func(ctx context.Context, e *domain.OutcomeEvent) {
			r.launches.WithLabelValues(string(e.Result.Outcome)).Inc()
			if e.Result.Succeeded() {
				r.lastSuccess.Set(float64(e.Timestamp.Unix()))
			}
		},
	}
}

// WriteTextfile writes the registry to path in text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
