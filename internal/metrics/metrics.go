// Package metrics defines the prometheus collectors for tracker activity.
// Collectors register against the default registry; exposing them over HTTP
// (or not) is the embedding application's concern.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Tracker label values.
const (
	TrackerStopwatch = "stopwatch"
	TrackerTimer     = "timer"
)

var (
	SessionsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clockcore_sessions_started_total",
			Help: "Total tracking sessions started (first resume after creation or reset)",
		},
		[]string{"tracker"},
	)

	SessionsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clockcore_sessions_completed_total",
			Help: "Total tracking sessions completed via stop",
		},
		[]string{"tracker"},
	)

	SessionSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clockcore_session_seconds",
			Help:    "Accounted duration of completed sessions in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"tracker"},
	)

	LapsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clockcore_laps_recorded_total",
			Help: "Total stopwatch laps recorded, including the final split on stop",
		},
	)
)

func init() {
	prometheus.MustRegister(
		SessionsStarted,
		SessionsCompleted,
		SessionSeconds,
		LapsRecorded,
	)
}
