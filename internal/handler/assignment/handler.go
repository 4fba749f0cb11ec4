package assignment

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	"github.com/jwalitptl/practice-dashboard/internal/service/permission"
	"github.com/jwalitptl/practice-dashboard/internal/store"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
	"github.com/jwalitptl/practice-dashboard/pkg/httputil"
)

type Store interface {
	Assignments(ctx context.Context, userID, token string) store.AssignmentList
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/assignments/:userId", h.ListAssignments)
}

// ListAssignments returns a patient user's assigned instruments. Staff may
// look up anyone; other users only themselves. The caller's token is
// forwarded so the backend applies its own access rules.
func (h *Handler) ListAssignments(c *gin.Context) {
	userID := c.Param("userId")
	caps := middleware.CapabilitiesFrom(c)
	if !caps.Has(permission.ManagePatients) {
		user := middleware.UserFrom(c)
		if user == nil || user.ID != userID {
			httputil.RespondWithError(c, apperrors.Forbidden("permission denied"))
			return
		}
	}

	httputil.RespondWithSuccess(c, h.store.Assignments(c.Request.Context(), userID, middleware.TokenFrom(c)))
}
