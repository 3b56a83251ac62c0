package middleware

import (
	"strconv"
	"time"

	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware adds prometheus metrics to track HTTP requests
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		// Record metrics after the request is processed
		status := c.Response().Status
		method := c.Request().Method
		path := c.Path()
		statusStr := strconv.Itoa(status)

		prometheus.HttpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()

		duration := time.Since(start).Seconds()
		prometheus.HttpRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		return err
	}
}
