package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports why a dependency is not ready, or nil.
type Check func() error

type Handler struct {
	checks   map[string]Check
	gatherer gin.HandlerFunc
}

func NewHandler(checks map[string]Check, metrics gin.HandlerFunc) *Handler {
	return &Handler{
		checks:   checks,
		gatherer: metrics,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("/live", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
		if h.gatherer != nil {
			health.GET("/metrics", h.gatherer)
		}
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP", "time": time.Now().UTC()})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	failures := gin.H{}
	for name, check := range h.checks {
		if err := check(); err != nil {
			failures[name] = err.Error()
		}
	}
	if len(failures) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"reasons": failures,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
