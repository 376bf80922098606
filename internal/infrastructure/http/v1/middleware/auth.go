package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog/internal/core/apperror"
	appctx "catalog/internal/core/context"
	"catalog/pkg/logger"
)

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*appctx.Principal, error)
}

// Auth middleware requires a valid bearer token and stores the principal in
// the request context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		principal, err := validator.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Debug(c.Request.Context(), "token rejected", "error", err)
			abortUnauthorized(c, "invalid token")
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func setPrincipal(c *gin.Context, p *appctx.Principal) {
	c.Request = c.Request.WithContext(appctx.WithPrincipal(c.Request.Context(), p))
	c.Set("subject", p.Subject)
	c.Set("scopes", p.Scopes)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
