package middleware

import (
	"go-ems/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Caller-supplied IDs longer than this are replaced, not truncated.
const maxRequestIDLen = 64

// RequestID propagates the caller's X-Request-ID, generating one when the
// header is missing or unusable. The ID is echoed back on the response so
// clients can correlate logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = uuid.New().String()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(
			contextutil.WithRequestID(c.Request.Context(), rid),
		)

		c.Header("X-Request-ID", rid)
		c.Next()
	}
}
