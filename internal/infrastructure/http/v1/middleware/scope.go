package middleware

import (
	"github.com/gin-gonic/gin"

	"catalog/internal/core/apperror"
	appctx "catalog/internal/core/context"
)

// OAuth2 scopes accepted by the catalog API.
const (
	ScopeCatalog    = "catalog"
	ScopeCatalogBFF = "catalog.bff"
)

// RequireAnyScope lets the request through when the token carries at least
// one of scopes. Must run after Auth.
func RequireAnyScope(scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := appctx.GetPrincipal(c.Request.Context())
		if p == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		for _, s := range scopes {
			if p.HasScope(s) {
				c.Next()
				return
			}
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient scope").
				WithDetail("required_scopes", scopes),
		)
		c.Abort()
	}
}
