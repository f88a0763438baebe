package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "promowatch"

// Metrics holds the counters of one batch run on a private registry so
// they can be pushed as a group when the process exits.
type Metrics struct {
	Registry *prometheus.Registry

	Runs              *prometheus.CounterVec
	Promotions        prometheus.Counter
	SkippedPromotions prometheus.Counter
	ReviewFlags       prometheus.Counter
	AlertsSent        prometheus.Counter
	LastSuccess       prometheus.Gauge
	RunDuration       prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Runs by result",
			},
			[]string{"result"},
		),
		Promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotions_total",
			Help:      "Promotions reconciled",
		}),
		SkippedPromotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotions_skipped_total",
			Help:      "Malformed promotions left out of a snapshot",
		}),
		ReviewFlags: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "review_flags_total",
			Help:      "Review flags raised",
		}),
		AlertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_sent_total",
			Help:      "Alert emails delivered",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a run",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}

	m.Registry.MustRegister(
		m.Runs,
		m.Promotions,
		m.SkippedPromotions,
		m.ReviewFlags,
		m.AlertsSent,
		m.LastSuccess,
		m.RunDuration,
	)
	return m
}

// ObserveRun records the outcome and duration of a run.
func (m *Metrics) ObserveRun(start time.Time, err error) {
	m.RunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.Runs.WithLabelValues("failure").Inc()
		return
	}
	m.Runs.WithLabelValues("success").Inc()
	m.LastSuccess.SetToCurrentTime()
}

// Push sends the registry to a Pushgateway under job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	return push.New(url, job).Gatherer(m.Registry).PushContext(ctx)
}
