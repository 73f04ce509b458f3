package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spotilink/internal/config"
)

// CORSMiddleware echoes the Origin header back only for allow-listed
// origins and rejects everything else outright. Requests without an
// Origin header (server-to-server callers) pass through.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if !cfg.OriginAllowed(origin) {
				c.Header("Cache-Control", errorCacheControl)
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
