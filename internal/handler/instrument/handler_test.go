package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/answers"
	"github.com/jwalitptl/practice-dashboard/internal/service/permission"
	apperrors "github.com/jwalitptl/practice-dashboard/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type statusErr struct{ status int }

func (e statusErr) Error() string   { return "upstream failure" }
func (e statusErr) StatusCode() int { return e.status }

// syncStore answers SyncAnswers with a canned result.
type syncStore struct {
	Store
	summary answers.Summary
	err     error
}

func (s syncStore) SyncAnswers(ctx context.Context, questionID string, labels []string) (answers.Summary, error) {
	s.summary.QuestionID = questionID
	return s.summary, s.err
}

func putAnswers(t *testing.T, store Store, labels []string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextCapabilities, permission.Resolve("admin"))
	})
	NewHandler(store).RegisterRoutes(r.Group(""))

	body, err := json.Marshal(map[string]interface{}{"labels": labels})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/questions/12/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSyncAnswersFailureReportsAppliedWrites(t *testing.T) {
	store := syncStore{
		summary: answers.Summary{
			Created: []model.QuestionAnswer{{ID: "120", Label: "Nunca"}},
			Answers: []model.QuestionAnswer{{ID: "120", Label: "Nunca"}},
			Failed:  &answers.FailedOp{Operation: answers.OpCreate, Label: "Siempre", Message: "boom"},
		},
		err: fmt.Errorf("failed to synchronize answers of question 12: %w", statusErr{http.StatusBadGateway}),
	}

	w, resp := putAnswers(t, store, []string{"Nunca", "Siempre"})
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, resp, "data")

	var summary answers.Summary
	require.NoError(t, json.Unmarshal(resp["data"], &summary))
	assert.Equal(t, "12", summary.QuestionID)
	require.Len(t, summary.Created, 1)
	assert.Equal(t, "Nunca", summary.Created[0].Label)
	require.NotNil(t, summary.Failed)
	assert.Equal(t, answers.OpCreate, summary.Failed.Operation)
	assert.Equal(t, "Siempre", summary.Failed.Label)
}

func TestSyncAnswersValidationFailureHasNoSummary(t *testing.T) {
	store := syncStore{err: apperrors.Validation("radio questions need at least 2 different options")}

	w, resp := putAnswers(t, store, []string{"Solo"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, resp, "data")
}

func TestSyncAnswersRequiresCapability(t *testing.T) {
	r := gin.New()
	NewHandler(syncStore{}).RegisterRoutes(r.Group(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/questions/12/answers", bytes.NewReader([]byte(`{"labels":["a","b"]}`))))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
