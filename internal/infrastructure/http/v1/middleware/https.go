package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultHSTSMaxAge is the max-age advertised by HSTS.
const DefaultHSTSMaxAge = 60 * 24 * time.Hour

// HTTPSRedirect sends plain-HTTP requests to the HTTPS endpoint with 307.
// Port 443 is left out of the target URL.
func HTTPSRedirect(httpsPort int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if RequestScheme(c) == "https" {
			c.Next()
			return
		}

		host := hostOnly(c.Request.Host)
		if httpsPort != 0 && httpsPort != 443 {
			host = net.JoinHostPort(host, strconv.Itoa(httpsPort))
		} else if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}

		c.Redirect(http.StatusTemporaryRedirect, "https://"+host+c.Request.URL.RequestURI())
		c.Abort()
	}
}

// HSTS sets Strict-Transport-Security on HTTPS responses, including
// subdomains and preload. Loopback hosts are skipped.
func HSTS(maxAge time.Duration) gin.HandlerFunc {
	value := "max-age=" + strconv.FormatInt(int64(maxAge/time.Second), 10) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		if RequestScheme(c) == "https" && !isLoopbackHost(hostOnly(c.Request.Host)) {
			c.Header("Strict-Transport-Security", value)
		}
		c.Next()
	}
}

func hostOnly(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return strings.Trim(hostport, "[]")
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
