package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "daily_todos_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 1, 3},
	},
	[]string{"method", "route"},
)

// metricsMiddleware observes request duration labelled by the matched route
// pattern, so ids never become label values. Fiber reuses request buffers, so
// label strings are copied before the collector keeps them.
func metricsMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	method := utils.CopyString(c.Method())
	route := utils.CopyString(c.Route().Path)
	requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	return err
}
