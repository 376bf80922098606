// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// DictionaryRouteHandler is implemented by handlers of name-only entities
// (brands and types).
type DictionaryRouteHandler interface {
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterDictionaryRoutes registers single-entity routes for a dictionary.
// The list route is served by the catalog handler.
//
// Usage:
//
//	h := handlers.NewBrandHandler(base, brandService, mapper)
//	RegisterDictionaryRoutes(group.Group("/catalogbrands"), h, read, write)
func RegisterDictionaryRoutes(group *gin.RouterGroup, handler DictionaryRouteHandler, read, write gin.HandlerFunc) {
	group.GET("/:id", read, handler.Get)
	group.POST("", write, handler.Create)
	group.PUT("", write, handler.Update)
	group.DELETE("/:id", write, handler.Delete)
}
