package prom

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline counters. Rejections and drops are per-reason so a noisy discovery
// provider shows up in the metrics before anyone reads the logs.
var (
	EventsDiscovered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trafficdb_events_discovered_total",
			Help: "Raw candidate events returned by the discovery service.",
		},
		[]string{"category"},
	)

	EventsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trafficdb_events_rejected_total",
			Help: "Candidates dropped by validation, by reason.",
		},
		[]string{"reason"},
	)

	CategoryFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trafficdb_category_failures_total",
			Help: "Discovery requests that failed after retries, by category.",
		},
		[]string{"category"},
	)

	GeocodeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trafficdb_geocode_failures_total",
			Help: "Event locations that could not be resolved to coordinates.",
		},
	)

	EventsDroppedDistance = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trafficdb_events_dropped_distance_total",
			Help: "Geocoded events discarded for being too far from the city center.",
		},
	)

	EventsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trafficdb_events_saved_total",
			Help: "New event records appended to a city store.",
		},
	)
)

func init() {
	promRegister(EventsDiscovered)
	promRegister(EventsRejected)
	promRegister(CategoryFailures)
	promRegister(GeocodeFailures)
	promRegister(EventsDroppedDistance)
	promRegister(EventsSaved)
}
