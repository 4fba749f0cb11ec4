package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
	pkgvalidator "github.com/jwalitptl/practice-dashboard/pkg/validator"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Window describes one "load more" slice of a collection.
type Window struct {
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	HasMore    bool `json:"has_more"`
	NextOffset *int `json:"next_offset,omitempty"`
}

// WindowedResponse wraps one window of items
type WindowedResponse struct {
	Items  interface{} `json:"items"`
	Window Window      `json:"window"`
}

type statusCoder interface {
	StatusCode() int
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response carrying a user-visible message.
func RespondWithError(c *gin.Context, err error) {
	RespondWithErrorData(c, err, nil)
}

// RespondWithErrorData sends an error response that also reports data, such
// as the part of a multi-step operation applied before it failed.
func RespondWithErrorData(c *gin.Context, err error, data interface{}) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"
	var fields map[string]string

	var verrs validator.ValidationErrors
	var appErr *apperrors.AppError
	var coder statusCoder
	switch {
	case errors.As(err, &verrs):
		statusCode = http.StatusBadRequest
		message = "validation failed"
		fields = pkgvalidator.Fields(verrs)
	case errors.As(err, &appErr):
		statusCode = appErr.StatusCode()
		message = appErr.Message
	case errors.As(err, &coder):
		statusCode = coder.StatusCode()
		message = err.Error()
		if e, ok := coder.(error); ok {
			message = e.Error()
		}
	}

	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Data:    data,
		Error: &Error{
			Code:    statusCode,
			Message: message,
			Fields:  fields,
		},
	})
}

// RespondWithWindow sends items[offset:offset+limit] of a filtered collection.
func RespondWithWindow(c *gin.Context, items interface{}, offset, limit, total int) {
	w := Window{
		Offset: offset,
		Limit:  limit,
		Total:  total,
	}
	if next := offset + limit; next < total {
		w.HasMore = true
		w.NextOffset = &next
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: WindowedResponse{
			Items:  items,
			Window: w,
		},
	})
}
