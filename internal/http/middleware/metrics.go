package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/personnel-backend/internal/observability"
)

const unmatchedRoute = "unmatched"

// Metrics records latency and in-flight counts per route template. Paths in
// skip are served without being observed.
func Metrics(m *observability.Metrics, skip ...string) gin.HandlerFunc {
	skipped := toSet(skip)
	return func(c *gin.Context) {
		if m == nil || skipped[c.Request.URL.Path] {
			c.Next()
			return
		}
		m.ApiInflightInc()
		defer m.ApiInflightDec()
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
