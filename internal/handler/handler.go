// Package handler holds helpers shared by the resource handlers.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
	"github.com/jwalitptl/practice-dashboard/pkg/httputil"
)

// BindJSON decodes the request body into req and answers 400 when it is
// malformed or fails validation.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			httputil.RespondWithError(c, err)
			return false
		}
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return false
	}
	return true
}

// BindQuery is BindJSON for query strings.
func BindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			httputil.RespondWithError(c, err)
			return false
		}
		httputil.RespondWithError(c, apperrors.BadRequest("invalid query parameters", err))
		return false
	}
	return true
}

// CurrentUserID returns the authenticated user's id, or nil.
func CurrentUserID(c *gin.Context) *string {
	user := middleware.UserFrom(c)
	if user == nil || user.ID == "" {
		return nil
	}
	id := user.ID
	return &id
}

// StampCreator fills an unset createdBy field with the caller's id.
func StampCreator(c *gin.Context, createdBy **string) {
	if *createdBy == nil {
		*createdBy = CurrentUserID(c)
	}
}
