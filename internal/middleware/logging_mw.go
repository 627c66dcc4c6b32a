package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorLoggingMiddleware logs request context for every response that ends
// in a server error, so 5xx bodies can stay generic for clients.
func ErrorLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			log.Printf("Server Error: status=%d method=%s path=%s client=%s errors=%v",
				status, c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Errors.Errors())
		}
	}
}

// RequestSizeLimit rejects request bodies larger than maxBytes before they
// reach handler logic.
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
