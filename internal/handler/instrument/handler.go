package instrument

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/practice-dashboard/internal/handler"
	"github.com/jwalitptl/practice-dashboard/internal/middleware"
	"github.com/jwalitptl/practice-dashboard/internal/model"
	"github.com/jwalitptl/practice-dashboard/internal/service/answers"
	"github.com/jwalitptl/practice-dashboard/internal/service/permission"
	"github.com/jwalitptl/practice-dashboard/pkg/httputil"
)

type Store interface {
	Instruments() []model.Instrument
	GetInstrumentDetails(ctx context.Context, id string) (model.Instrument, error)
	CreateInstrument(ctx context.Context, in model.InstrumentInput) (model.Instrument, error)
	UpdateInstrument(ctx context.Context, id string, in model.InstrumentInput) (model.Instrument, error)
	DeleteInstrument(ctx context.Context, id string) error

	Question(id string) (model.Question, error)
	CreateQuestion(ctx context.Context, instrumentID string, in model.QuestionInput) (model.Question, error)
	UpdateQuestion(ctx context.Context, id string, in model.QuestionInput) (model.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
	SyncAnswers(ctx context.Context, questionID string, labels []string) (answers.Summary, error)
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	gate := middleware.Require(permission.ManageInstruments)

	instruments := r.Group("/instruments", gate)
	{
		instruments.GET("", h.ListInstruments)
		instruments.POST("", h.CreateInstrument)
		instruments.GET("/:id", h.GetInstrument)
		instruments.PATCH("/:id", h.UpdateInstrument)
		instruments.DELETE("/:id", h.DeleteInstrument)
		instruments.POST("/:id/questions", h.CreateQuestion)
	}

	questions := r.Group("/questions", gate)
	{
		questions.GET("/:id", h.GetQuestion)
		questions.PATCH("/:id", h.UpdateQuestion)
		questions.DELETE("/:id", h.DeleteQuestion)
		questions.PUT("/:id/answers", h.SyncAnswers)
	}
}

func (h *Handler) ListInstruments(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.store.Instruments())
}

// GetInstrument returns the instrument with its questions and their answers
// freshly fetched.
func (h *Handler) GetInstrument(c *gin.Context) {
	inst, err := h.store.GetInstrumentDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, inst)
}

func (h *Handler) CreateInstrument(c *gin.Context) {
	var req model.InstrumentInput
	if !handler.BindJSON(c, &req) {
		return
	}
	handler.StampCreator(c, &req.CreatedBy)

	inst, err := h.store.CreateInstrument(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, inst)
}

func (h *Handler) UpdateInstrument(c *gin.Context) {
	var req model.InstrumentInput
	if !handler.BindJSON(c, &req) {
		return
	}

	inst, err := h.store.UpdateInstrument(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, inst)
}

func (h *Handler) DeleteInstrument(c *gin.Context) {
	if err := h.store.DeleteInstrument(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetQuestion(c *gin.Context) {
	q, err := h.store.Question(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, q)
}

func (h *Handler) CreateQuestion(c *gin.Context) {
	var req model.QuestionInput
	if !handler.BindJSON(c, &req) {
		return
	}
	handler.StampCreator(c, &req.CreatedBy)

	q, err := h.store.CreateQuestion(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, q)
}

func (h *Handler) UpdateQuestion(c *gin.Context) {
	var req model.QuestionInput
	if !handler.BindJSON(c, &req) {
		return
	}

	q, err := h.store.UpdateQuestion(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, q)
}

func (h *Handler) DeleteQuestion(c *gin.Context) {
	if err := h.store.DeleteQuestion(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SyncAnswers makes the question's stored answers match the submitted
// labels and reports the writes performed.
func (h *Handler) SyncAnswers(c *gin.Context) {
	var req model.AnswerLabelsInput
	if !handler.BindJSON(c, &req) {
		return
	}

	summary, err := h.store.SyncAnswers(c.Request.Context(), c.Param("id"), req.Labels)
	if err != nil {
		if summary.Failed != nil {
			httputil.RespondWithErrorData(c, err, summary)
			return
		}
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, summary)
}
