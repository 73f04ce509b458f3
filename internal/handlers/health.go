package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spotilink/internal/cache"
)

// HealthHandler reports service liveness and cache reachability
type HealthHandler struct {
	cache cache.Cache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(c cache.Cache) *HealthHandler {
	return &HealthHandler{cache: c}
}

// Health handles GET /health. A broken cache degrades the report but
// not the status code; the service still converts without it.
func (h *HealthHandler) Health(c *gin.Context) {
	cacheStatus := "ok"
	if err := h.cache.Health(c.Request.Context()); err != nil {
		cacheStatus = "unavailable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cache":  cacheStatus,
	})
}
