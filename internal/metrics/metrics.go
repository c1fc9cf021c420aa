package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_http_requests_total",
		Help: "The total number of handled HTTP requests",
	}, []string{"method", "path", "status"})

	// RenderFallbacks counts every time stored content could not be
	// rendered and degraded to a placeholder.
	RenderFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_document_render_fallbacks_total",
		Help: "The total number of document renders that degraded to the fallback fragment",
	})
)

func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
