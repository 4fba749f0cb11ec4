package patient

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
	Patients(filters model.PatientFilters) ([]model.Patient, int)
	Patient(id string) (model.Patient, error)
	CreatePatient(ctx context.Context, in model.PatientInput) (model.Patient, error)
	UpdatePatient(ctx context.Context, id string, in model.PatientInput) (model.Patient, error)
	DeletePatient(ctx context.Context, id string) error
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients", middleware.Require(permission.ManagePatients))
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.PATCH("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

// ListPatients serves one "load more" window of the patient table.
func (h *Handler) ListPatients(c *gin.Context) {
	var filters model.PatientFilters
	if !handler.BindQuery(c, &filters) {
		return
	}
	w := filters.Window.Normalize()
	filters.Window = w

	items, total := h.store.Patients(filters)
	httputil.RespondWithWindow(c, items, w.Offset, w.Limit, total)
}

func (h *Handler) GetPatient(c *gin.Context) {
	p, err := h.store.Patient(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.PatientInput
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.store.CreatePatient(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, p)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	var req model.PatientInput
	if !handler.BindJSON(c, &req) {
		return
	}

	p, err := h.store.UpdatePatient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	if err := h.store.DeletePatient(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
