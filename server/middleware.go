package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aouyang1/go-climate-forecast/metrics"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
)

// accessLogger logs every request once it completes
func accessLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.HTTPActiveRequests.Inc()
		defer m.HTTPActiveRequests.Dec()

		// unmatched routes share one label for cardinality control
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// rateLimiter allows limit requests per client IP every window and responds 429 with an
// ErrorResponse once exceeded
func rateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	limited, _ := json.Marshal(ErrorResponse{
		Error: "rate limit exceeded, retry after " + window.String(),
		Kind:  "rate_limited",
	})

	limiter := httprate.NewRateLimiter(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentTypeJSON)
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write(limited)
		}),
	)

	return func(c *gin.Context) {
		allowed := false
		limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed = true
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !allowed {
			c.Abort()
		}
	}
}
