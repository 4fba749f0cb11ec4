package instrumenttype

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/practice-dashboard/internal/handler"
	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/permission"
	"github.com/jwalitptl/practice-dashboard/pkg/httputil"
)

type Store interface {
	InstrumentTypes() []model.InstrumentType
	CreateInstrumentType(ctx context.Context, in model.InstrumentTypeInput) (model.InstrumentType, error)
	UpdateInstrumentType(ctx context.Context, id string, in model.InstrumentTypeInput) (model.InstrumentType, error)
	DeleteInstrumentType(ctx context.Context, id string) error
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	types := r.Group("/instrument-types", middleware.Require(permission.ManageInstruments))
	{
		types.GET("", h.List)
		types.POST("", h.Create)
		types.PATCH("/:id", h.Update)
		types.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.store.InstrumentTypes())
}

func (h *Handler) Create(c *gin.Context) {
	var req model.InstrumentTypeInput
	if !handler.BindJSON(c, &req) {
		return
	}
	handler.StampCreator(c, &req.CreatedBy)

	t, err := h.store.CreateInstrumentType(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, t)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.InstrumentTypeInput
	if !handler.BindJSON(c, &req) {
		return
	}

	t, err := h.store.UpdateInstrumentType(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, t)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.DeleteInstrumentType(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
