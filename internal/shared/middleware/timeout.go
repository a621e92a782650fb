package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/logger"

	"github.com/gin-gonic/gin"
)

// Timeout puts a deadline on the request context. Repositories pass that
// context to GORM, so a slow search is cancelled by the driver instead of
// holding a pooled connection; the handler then answers with ERROR-004.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if IsTimeout(c) {
			logger.FromContext(c.Request.Context()).Warn("Request deadline exceeded",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"timeout", timeout.String(),
				"status", c.Writer.Status(),
			)
		}
	}
}

// IsTimeout reports whether the request deadline has passed
func IsTimeout(c *gin.Context) bool {
	return errors.Is(c.Request.Context().Err(), context.DeadlineExceeded)
}
