package middleware

import (
	"net"
	"time"

	"github.com/gin-gonic/gin"

	"catalog/pkg/logger"
)

// LoggerOptions tunes request logging.
type LoggerOptions struct {
	// RemoteEndpoint adds the peer address and port to every entry.
	RemoteEndpoint bool
}

// Logger middleware puts log into the request context and logs every
// request with timing and status.
func Logger(log *logger.Logger, opts LoggerOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), log))

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		}
		if opts.RemoteEndpoint {
			host, port, err := net.SplitHostPort(c.Request.RemoteAddr)
			if err != nil {
				host = c.Request.RemoteAddr
			}
			fields = append(fields, "remote_addr", host, "remote_port", port)
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, "error", errs)
		}

		log.WithContext(c.Request.Context()).Infow("http request", fields...)
	}
}
