package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	logs "github.com/ranorsolutions/http-common-go/pkg/log/logger"
)

func RequestLogger(log *logs.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		format := "HTTP request method=%s path=%s status=%d duration_ms=%d request_id=%s"
		args := []interface{}{
			strings.ToUpper(c.Request.Method),
			path,
			status,
			time.Since(start).Milliseconds(),
			RequestID(c),
		}

		switch {
		case status >= 500:
			log.Error(format, args...)
		case status >= 400:
			log.Warn(format, args...)
		default:
			log.Info(format, args...)
		}
	}
}
