package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", NotFound("patient", nil), http.StatusNotFound},
		{"bad request", BadRequest("bad", nil), http.StatusBadRequest},
		{"validation", Validation("name is required"), http.StatusBadRequest},
		{"unauthorized", Unauthorized(nil), http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"internal", Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
		{"upstream keeps status", Upstream(http.StatusConflict, "duplicated", nil), http.StatusConflict},
		{"upstream default", Upstream(0, "down", nil), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestAsUnwrapsChain(t *testing.T) {
	err := fmt.Errorf("creating type: %w", Validation("name is required"))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "name is required", appErr.Message)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}
