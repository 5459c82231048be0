package middleware

import (
	"context"
	"slices"

	"github.com/freightdocs/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

var profilingSkipPaths = []string{"/health", "/health/ready", "/metrics"}

// Profiling attaches route and method pyroscope labels to the request
// goroutine. It is a no-op when the profiler is not running.
func Profiling(profiler *telemetry.Profiler) gin.HandlerFunc {
	if !profiler.IsEnabled() {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || slices.Contains(profilingSkipPaths, route) {
			c.Next()
			return
		}

		labels := map[string]string{
			telemetry.ProfilingLabelRoute:  route,
			telemetry.ProfilingLabelMethod: c.Request.Method,
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
