package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog/internal/infrastructure/storage/postgres"
)

// Version is reported by the info endpoint; set with -ldflags at build time.
var Version = "dev"

// Database is what the health checks need from the connection pool.
type Database interface {
	Ping(ctx context.Context) error
	Stats() postgres.PoolStats
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	db          Database
	environment string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db Database, environment string) *HealthHandler {
	return &HealthHandler{db: db, environment: environment}
}

// Live handles the liveness check (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles the readiness check (is the service ready to accept traffic?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"database": "unhealthy",
			},
		})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"database": "healthy",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, gin.H{
		"app":         "catalog",
		"version":     Version,
		"environment": h.environment,
		"database":    h.db.Stats(),
	})
}
