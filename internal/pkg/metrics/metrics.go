// Package metrics registers the Prometheus instruments for the tracking
// service. Counters are registered once at init time via promauto and shared
// by the application layer and background jobs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransitionsTotal counts committed lifecycle transitions by trigger
	// ("manual"/"automatic") and resulting status.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracking_transitions_total",
		Help: "Committed lifecycle transitions by trigger and resulting status.",
	}, []string{"trigger", "to_status"})

	// LocationSamplesTotal counts processed location samples by outcome
	// ("accepted"/"skipped").
	LocationSamplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracking_location_samples_total",
		Help: "Processed courier location samples by outcome.",
	}, []string{"outcome"})

	// MutationConflictsTotal counts mutations rejected by optimistic
	// concurrency checks, by kind ("version_conflict"/"operation_in_progress").
	MutationConflictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracking_mutation_conflicts_total",
		Help: "Mutations rejected by version or operation lock checks.",
	}, []string{"kind"})

	// ExpiredLocksReleasedTotal counts operation locks reclaimed by the
	// background sweeper.
	ExpiredLocksReleasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracking_expired_locks_released_total",
		Help: "Operation locks reclaimed after their TTL elapsed.",
	})

	// NotificationsTotal counts published transition notifications by
	// recipient role.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracking_notifications_total",
		Help: "Published transition notifications by recipient role.",
	}, []string{"recipient"})
)
