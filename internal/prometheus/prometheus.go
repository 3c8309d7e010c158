package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const ArchstrapSubsystem = "archstrap"

var (
	TotalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name:      "total_requests",
		Subsystem: ArchstrapSubsystem,
		Help:      "total number of http requests made to archstrap",
	})
)

var (
	ComposeRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name:      "total_compose_requests",
		Subsystem: ArchstrapSubsystem,
		Help:      "total number of compose requests made to archstrap",
	})
)

var (
	ComposeSuccesses = promauto.NewCounter(prometheus.CounterOpts{
		Name:      "total_successful_compose_requests",
		Subsystem: ArchstrapSubsystem,
		Help:      "total number of compose requests that produced a script",
	})
)

var (
	ComposeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name:      "total_failed_compose_requests",
		Subsystem: ArchstrapSubsystem,
		Help:      "total number of compose requests rejected as invalid",
	})
)

var (
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:      "http_duration_seconds",
		Subsystem: ArchstrapSubsystem,
		Help:      "Duration of HTTP requests.",
		Buckets:   []float64{.025, .05, .075, .1, .2, .5, .75, 1, 1.5, 2, 3, 4, 5, 6, 8, 10, 12, 14, 16, 20},
	}, []string{"method", "path"})
)
