package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key for the request id
const RequestIDKey = "request_id"

// RequestIDHeader is the HTTP header carrying the request id
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a unique id, reusing the caller-supplied
// header when present, and echoes it back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID retrieves the request id from the gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
