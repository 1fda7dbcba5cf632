// README: Request logging middleware with request ids.
package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-ID"

// Logging writes one line per request: id, method, path, status, latency
// and the caller key, plus the plan role for authenticated callers.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()
		line := fmt.Sprintf("[%s] %s %s %d %s caller=%s", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond), CallerKey(c))
		if role := CallerRole(c); role != "" {
			line += " role=" + role
		}
		log.Print(line)
	}
}
