package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	published = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_events_published_total",
			Help: "Events published to the bus",
		},
		[]string{"topic"},
	)

	publishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_publish_failures_total",
			Help: "Publish attempts that returned an error",
		},
		[]string{"topic"},
	)

	eventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_events_processed_total",
			Help: "Events handled successfully by the consumer",
		},
		[]string{"topic"},
	)

	eventsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bus_events_failed_total",
			Help: "Events whose handler returned an error (message still marked)",
		},
		[]string{"topic"},
	)
)
