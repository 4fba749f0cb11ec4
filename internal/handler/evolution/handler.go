package evolution

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/practice-dashboard/internal/handler"
	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/permission"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
	"github.com/jwalitptl/practice-dashboard/pkg/httputil"
)

type Store interface {
	Patient(id string) (model.Patient, error)
	Evolution(patientID string) ([]model.EvolutionEntry, error)
	AddEvolution(ctx context.Context, patientID string, in model.EvolutionInput, recordedBy string) (model.EvolutionEntry, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	evolution := r.Group("/patients/:id/evolution", middleware.Require(permission.ViewEvolution))
	{
		evolution.GET("", h.List)
		evolution.POST("", middleware.Require(permission.ManagePatients), h.Add)
	}
}

// List returns a patient's evolution log. Callers that do not manage
// patients may only read the log of the patient record linked to their own
// user.
func (h *Handler) List(c *gin.Context) {
	if !middleware.CapabilitiesFrom(c).Has(permission.ManagePatients) && !h.ownsPatient(c) {
		httputil.RespondWithError(c, apperrors.Forbidden("permission denied"))
		return
	}

	entries, err := h.store.Evolution(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entries)
}

func (h *Handler) ownsPatient(c *gin.Context) bool {
	user := middleware.UserFrom(c)
	if user == nil || user.ID == "" {
		return false
	}
	p, err := h.store.Patient(c.Param("id"))
	return err == nil && p.UserID != nil && *p.UserID == user.ID
}

func (h *Handler) Add(c *gin.Context) {
	var req model.EvolutionInput
	if !handler.BindJSON(c, &req) {
		return
	}

	recordedBy := ""
	if id := handler.CurrentUserID(c); id != nil {
		recordedBy = *id
	}
	entry, err := h.store.AddEvolution(c.Request.Context(), c.Param("id"), req, recordedBy)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, entry)
}
