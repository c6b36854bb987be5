package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/kinsman/brandsite/backend/go-services/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterOps mounts /health, /ready and /metrics.
func RegisterOps(r *gin.Engine, s store.Store, started time.Time) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// ready only when the document store answers a ping
	r.GET("/ready", func(c *gin.Context) {
		uptime := time.Since(started).Round(time.Second).String()
		if s == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": gin.H{"store": false}, "uptime": uptime})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": gin.H{"store": false}, "error": err.Error(), "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": gin.H{"store": true}, "backend": s.Name(), "uptime": uptime})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// WithCORS allows every origin, method and header.
func WithCORS(h http.Handler) http.Handler {
	return cors.AllowAll().Handler(h)
}
