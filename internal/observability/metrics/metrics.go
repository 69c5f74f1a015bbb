package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

const (
	SyncOutcomeFirstWrite = "first_write"
	SyncOutcomeMerged     = "merged"
	SyncOutcomeOverwrite  = "overwrite"
)

// Metrics exposes application-level instruments.
type Metrics struct {
	registry *prometheus.Registry

	syncTotal     *prometheus.CounterVec
	lockWait      prometheus.Histogram
	webhookEvents *prometheus.CounterVec
	feeFallbacks  prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		syncTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachpay_purchase_sync_total",
			Help: "Purchase sync operations by outcome.",
		}, []string{"kind", "outcome"}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "coachpay_purchase_lock_wait_seconds",
			Help:    "Time spent waiting for the purchase lease.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachpay_webhook_events_total",
			Help: "Inbound payment webhook events by provider and type.",
		}, []string{"provider", "type"}),
		feeFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coachpay_fee_schedule_fallbacks_total",
			Help: "Fee schedule resolutions that fell back to the default schedule.",
		}),
	}

	registry.MustRegister(m.syncTotal, m.lockWait, m.webhookEvents, m.feeFallbacks)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordSync(kind, outcome string) {
	if m == nil {
		return
	}
	m.syncTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveLockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.Observe(d.Seconds())
}

func (m *Metrics) RecordWebhookEvent(provider, eventType string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(provider, eventType).Inc()
}

func (m *Metrics) RecordFeeFallback() {
	if m == nil {
		return
	}
	m.feeFallbacks.Inc()
}

var Module = fx.Module("observability.metrics",
	fx.Provide(New),
)
