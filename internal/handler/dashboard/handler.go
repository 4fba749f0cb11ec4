package dashboard

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/permission"
	"github.com/jwalitptl/practice-dashboard/internal/store"
	"github.com/jwalitptl/practice-dashboard/pkg/httputil"
)

type Store interface {
	Stats() model.DashboardStats
	RefreshStats(ctx context.Context) (model.DashboardStats, string)
	Load(ctx context.Context) store.LoadReport
	LoadedAt() time.Time
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard", middleware.Require(permission.ViewDashboard))
	{
		dashboard.GET("", h.GetStats)
		dashboard.POST("/refresh", h.RefreshStats)
		dashboard.POST("/reload", h.Reload)
	}
}

type statsResponse struct {
	Stats    model.DashboardStats `json:"stats"`
	Source   string               `json:"source,omitempty"`
	LoadedAt time.Time            `json:"loadedAt"`
}

type reloadResponse struct {
	statsResponse
	Report store.LoadReport `json:"report"`
}

func (h *Handler) GetStats(c *gin.Context) {
	httputil.RespondWithSuccess(c, statsResponse{
		Stats:    h.store.Stats(),
		LoadedAt: h.store.LoadedAt(),
	})
}

// RefreshStats refetches only the summary, computing it locally when the
// backend cannot serve it.
func (h *Handler) RefreshStats(c *gin.Context) {
	stats, source := h.store.RefreshStats(c.Request.Context())
	httputil.RespondWithSuccess(c, statsResponse{
		Stats:    stats,
		Source:   source,
		LoadedAt: h.store.LoadedAt(),
	})
}

// Reload re-runs the full bootstrap. It never fails: unavailable
// collections are replaced by demo data, as the report shows.
func (h *Handler) Reload(c *gin.Context) {
	report := h.store.Load(c.Request.Context())
	httputil.RespondWithSuccess(c, reloadResponse{
		statsResponse: statsResponse{
			Stats:    h.store.Stats(),
			Source:   report.Stats,
			LoadedAt: h.store.LoadedAt(),
		},
		Report: report,
	})
}
