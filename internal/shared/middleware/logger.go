package middleware

import (
	"log/slog"
	"time"

	sharedContext "github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/logger"

	"github.com/gin-gonic/gin"
)

// LoggerMiddleware binds a request logger (request_id) to the request context
// and writes one access log line per request. Search criteria arrive in the
// query string, so it is logged as is.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery

		reqLogger := slog.Default().With("request_id", GetRequestID(c))
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), reqLogger))

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
		}
		if rawQuery != "" {
			fields = append(fields, "query", rawQuery)
		}
		if accountID := c.GetString(sharedContext.AccountIDKey); accountID != "" {
			fields = append(fields, "account_id", accountID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			reqLogger.Error("Request processed", fields...)
		case status >= 400:
			reqLogger.Warn("Request processed", fields...)
		default:
			reqLogger.Info("Request processed", fields...)
		}
	}
}
