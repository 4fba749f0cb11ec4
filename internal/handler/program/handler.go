package program

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/practice-dashboard/internal/handler"
	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/permission"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
	"github.com/jwalitptl/practice-dashboard/pkg/httputil"
)

const dateLayout = "2006-01-02"

type Store interface {
	Programs() []model.ProgramDetails
	Program(ctx context.Context, id string) (model.ProgramDetails, error)
	ActivitiesForDate(programID string, date time.Time) ([]model.ProgramActivity, error)
	CreateProgram(ctx context.Context, in model.ProgramInput) (model.ProgramDetails, error)
	UpdateProgram(ctx context.Context, id string, in model.ProgramInput) (model.ProgramDetails, error)
	DeleteProgram(ctx context.Context, id string) error
	CreateActivity(ctx context.Context, programID string, in model.ActivityInput) (model.ProgramActivity, error)
	UpdateActivity(ctx context.Context, programID, activityID string, in model.ActivityInput) (model.ProgramActivity, error)
	DeleteActivity(ctx context.Context, programID, activityID string) error
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	programs := r.Group("/programs", middleware.Require(permission.ManagePrograms))
	{
		programs.GET("", h.ListPrograms)
		programs.POST("", h.CreateProgram)
		programs.GET("/:id", h.GetProgram)
		programs.PATCH("/:id", h.UpdateProgram)
		programs.DELETE("/:id", h.DeleteProgram)

		programs.GET("/:id/activities", h.ListActivities)
		programs.POST("/:id/activities", h.CreateActivity)
		programs.PATCH("/:id/activities/:activityId", h.UpdateActivity)
		programs.DELETE("/:id/activities/:activityId", h.DeleteActivity)
	}
}

func (h *Handler) ListPrograms(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.store.Programs())
}

func (h *Handler) GetProgram(c *gin.Context) {
	p, err := h.store.Program(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) CreateProgram(c *gin.Context) {
	var req model.ProgramInput
	if !handler.BindJSON(c, &req) {
		return
	}
	handler.StampCreator(c, &req.CreatedBy)

	p, err := h.store.CreateProgram(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, p)
}

func (h *Handler) UpdateProgram(c *gin.Context) {
	var req model.ProgramInput
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.store.UpdateProgram(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) DeleteProgram(c *gin.Context) {
	if err := h.store.DeleteProgram(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListActivities lists a program's activities, or only those falling on the
// weekday of ?date=YYYY-MM-DD.
func (h *Handler) ListActivities(c *gin.Context) {
	id := c.Param("id")
	raw := c.Query("date")
	if raw == "" {
		p, err := h.store.Program(c.Request.Context(), id)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, p.Activities)
		return
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("date must use the YYYY-MM-DD format"))
		return
	}
	activities, err := h.store.ActivitiesForDate(id, date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, activities)
}

func (h *Handler) CreateActivity(c *gin.Context) {
	var req model.ActivityInput
	if !handler.BindJSON(c, &req) {
		return
	}
	handler.StampCreator(c, &req.CreatedBy)

	a, err := h.store.CreateActivity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, a)
}

func (h *Handler) UpdateActivity(c *gin.Context) {
	var req model.ActivityInput
	if !handler.BindJSON(c, &req) {
		return
	}

	a, err := h.store.UpdateActivity(c.Request.Context(), c.Param("id"), c.Param("activityId"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, a)
}

func (h *Handler) DeleteActivity(c *gin.Context) {
	if err := h.store.DeleteActivity(c.Request.Context(), c.Param("id"), c.Param("activityId")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
