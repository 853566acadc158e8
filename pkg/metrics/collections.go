package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CollectionMetrics records activity on the persisted collections.
type CollectionMetrics struct {
	saveDuration  *prometheus.HistogramVec
	saves         *prometheus.CounterVec
	loadFailures  *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewCollectionMetrics registers the collection metrics on the provided registerer.
func NewCollectionMetrics(reg prometheus.Registerer) *CollectionMetrics {
	if reg == nil {
		return &CollectionMetrics{}
	}
	saveDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collection_save_duration_seconds",
		Help:    "Duration of collection save operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"namespace"})
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_saves_total",
		Help: "Collection save operations.",
	}, []string{"namespace"})
	loadFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_load_failures_total",
		Help: "Collection loads recovered from corrupt or unreadable payloads.",
	}, []string{"namespace"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_notifications_total",
		Help: "Change notifications published to observers.",
	}, []string{"namespace"})
	reg.MustRegister(saveDuration, saves, loadFailures, notifications)
	return &CollectionMetrics{
		saveDuration:  saveDuration,
		saves:         saves,
		loadFailures:  loadFailures,
		notifications: notifications,
	}
}

// ObserveSave records a completed save with its duration.
func (c *CollectionMetrics) ObserveSave(namespace string, duration time.Duration) {
	if c == nil || c.saves == nil {
		return
	}
	label := normalizeLabel(namespace)
	c.saves.WithLabelValues(label).Inc()
	c.saveDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// IncLoadFailure counts a load that degraded to an empty collection.
func (c *CollectionMetrics) IncLoadFailure(namespace string) {
	if c == nil || c.loadFailures == nil {
		return
	}
	c.loadFailures.WithLabelValues(normalizeLabel(namespace)).Inc()
}

// IncNotification counts a published change notification.
func (c *CollectionMetrics) IncNotification(namespace string) {
	if c == nil || c.notifications == nil {
		return
	}
	c.notifications.WithLabelValues(normalizeLabel(namespace)).Inc()
}

func normalizeLabel(namespace string) string {
	if namespace == "" {
		return "unknown"
	}
	return namespace
}
