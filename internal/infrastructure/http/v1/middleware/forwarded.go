package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderForwardedProto = "X-Forwarded-Proto"
	HeaderForwardedHost  = "X-Forwarded-Host"
)

// DefaultForwardLimit is the number of proxy hops trusted by ForwardedHeaders.
const DefaultForwardLimit = 2

// ForwardedHeaders applies X-Forwarded-For/Proto/Host set by a reverse proxy
// to the request. At most limit entries are consumed from the right of each
// header; the last consumed entry wins.
func ForwardedHeaders(limit int) gin.HandlerFunc {
	if limit < 1 {
		limit = DefaultForwardLimit
	}

	return func(c *gin.Context) {
		r := c.Request

		if ip := forwardedValue(r.Header.Get(HeaderForwardedFor), limit); ip != "" {
			if parsed := net.ParseIP(strings.Trim(ip, "[]")); parsed != nil {
				r.RemoteAddr = net.JoinHostPort(parsed.String(), "0")
			}
		}
		if proto := forwardedValue(r.Header.Get(HeaderForwardedProto), limit); proto != "" {
			r.URL.Scheme = strings.ToLower(proto)
		}
		if host := forwardedValue(r.Header.Get(HeaderForwardedHost), limit); host != "" {
			r.Host = host
		}

		c.Next()
	}
}

func forwardedValue(header string, limit int) string {
	if header == "" {
		return ""
	}
	parts := strings.Split(header, ",")
	idx := len(parts) - limit
	if idx < 0 {
		idx = 0
	}
	return strings.TrimSpace(parts[idx])
}

// RequestScheme reports the scheme the client used, honouring ForwardedHeaders.
func RequestScheme(c *gin.Context) string {
	if s := c.Request.URL.Scheme; s != "" {
		return s
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
