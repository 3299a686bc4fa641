// Package metrics exposes Prometheus instruments for the sync subsystem.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	queueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "field_sync",
			Name:      "queue_depth",
			Help:      "Queued mutations by status.",
		},
		[]string{"status"},
	)

	syncItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "field_sync",
			Name:      "sync_items_total",
			Help:      "Processed queue items by outcome.",
		},
		[]string{"outcome"},
	)

	syncCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "field_sync",
			Name:      "sync_cycles_total",
			Help:      "Sync cycles by trigger.",
		},
		[]string{"trigger"},
	)

	conflictsDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "field_sync",
			Name:      "conflicts_detected_total",
			Help:      "Version conflicts detected during submission.",
		},
	)

	conflictsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "field_sync",
			Name:      "conflicts_resolved_total",
			Help:      "Conflicts resolved by strategy.",
		},
		[]string{"strategy"},
	)

	gatewayOnline = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "field_sync",
			Name:      "gateway_online",
			Help:      "1 when the gateway is reachable, 0 otherwise.",
		},
	)

	cycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "field_sync",
			Name:      "cycle_duration_seconds",
			Help:      "Wall-clock duration of sync cycles.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			queueDepth,
			syncItems,
			syncCycles,
			conflictsDetected,
			conflictsResolved,
			gatewayOnline,
			cycleDuration,
		)
	})
}

// SetQueueDepth records the current number of items in a queue status.
func SetQueueDepth(status string, depth int) {
	queueDepth.WithLabelValues(status).Set(float64(depth))
}

// IncSyncItem counts one processed item with the given outcome
// ("succeeded", "failed", "conflict", "deferred").
func IncSyncItem(outcome string) {
	syncItems.WithLabelValues(outcome).Inc()
}

// IncSyncCycle counts one started cycle by trigger label.
func IncSyncCycle(trigger string) {
	syncCycles.WithLabelValues(trigger).Inc()
}

// IncConflictDetected counts one detected version conflict.
func IncConflictDetected() {
	conflictsDetected.Inc()
}

// IncConflictResolved counts one resolved conflict by strategy label.
func IncConflictResolved(strategy string) {
	conflictsResolved.WithLabelValues(strategy).Inc()
}

// SetGatewayOnline records current gateway reachability.
func SetGatewayOnline(online bool) {
	if online {
		gatewayOnline.Set(1)
		return
	}
	gatewayOnline.Set(0)
}

// ObserveCycleDuration records how long a finished cycle took.
func ObserveCycleDuration(seconds float64) {
	cycleDuration.Observe(seconds)
}
