package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a failed backend request. Status is zero for transport failures.
type Error struct {
	Status  int
	Message string
	Method  string
	Path    string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the failure onto the status the dashboard should see.
func (e *Error) StatusCode() int {
	if e.Status == 0 {
		return http.StatusBadGateway
	}
	return e.Status
}

// IsTransport reports whether err is a backend failure that never produced
// an HTTP response (connection refused, timeout, open breaker).
func IsTransport(err error) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Status == 0
	}
	return false
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Status == http.StatusNotFound
}

// messageFromBody extracts the human readable message of an error response.
// The backend sends either a string or a list of strings under "message".
func messageFromBody(status int, body []byte) string {
	var payload struct {
		Message interface{} `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch m := payload.Message.(type) {
		case string:
			if strings.TrimSpace(m) != "" {
				return m
			}
		case []interface{}:
			parts := make([]string, 0, len(m))
			for _, p := range m {
				if s, ok := p.(string); ok && strings.TrimSpace(s) != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		}
	}
	return fmt.Sprintf("status %d", status)
}
