package me

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/permission"
	"github.com/jwalitptl/practice-dashboard/pkg/httputil"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", h.GetMe)
}

type meResponse struct {
	User         *model.User            `json:"user"`
	Capabilities permission.Capabilities `json:"capabilities"`
}

// GetMe returns the caller and what the dashboard lets them do.
func (h *Handler) GetMe(c *gin.Context) {
	httputil.RespondWithSuccess(c, meResponse{
		User:         middleware.UserFrom(c),
		Capabilities: middleware.CapabilitiesFrom(c),
	})
}
