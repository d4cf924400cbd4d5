package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finanzbot/internal/common/logger"
)

// ReadyFunc reports whether the backing stores are reachable.
type ReadyFunc func(ctx context.Context) error

// NewRouter registers every route on a fresh engine.
func NewRouter(h *Handler, ready ReadyFunc, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Format(time.RFC3339)})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "time": time.Now().Format(time.RFC3339)})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/classify", h.Classify)
		v1.POST("/sessions", h.CreateSession)

		s := v1.Group("/sessions/:id")
		s.PUT("/company", h.SubmitCompany)
		s.GET("/analysis", h.GetAnalysis)
		s.POST("/messages", h.PostMessage)
		s.GET("/messages", h.GetMessages)
		s.DELETE("/messages", h.ClearMessages)
	}
	return r
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request", map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}
