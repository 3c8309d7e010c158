package prometheus

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsMiddleware counts and times every request on the routes it wraps.
// Requests to a compose endpoint also feed the compose outcome counters,
// judged from the response status once the handler has run; handlers never
// touch the counters themselves.
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		TotalRequests.Inc()
		compose := strings.HasSuffix(c.Path(), "/compose")
		if compose {
			ComposeRequests.Inc()
		}

		timer := prometheus.NewTimer(httpDuration.WithLabelValues(c.Request().Method, c.Path()))
		defer timer.ObserveDuration()

		err := next(c)
		if compose {
			if err == nil && c.Response().Status < http.StatusBadRequest {
				ComposeSuccesses.Inc()
			} else {
				ComposeFailures.Inc()
			}
		}
		return err
	}
}
