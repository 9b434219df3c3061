package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"intervue/internal/middleware"
	"intervue/internal/models"
	"intervue/internal/repositories"
	"intervue/internal/utils"
)

type QuestionHandler struct {
	questions *repositories.QuestionRepository
	logger    *zap.Logger
}

func NewQuestionHandler(questions *repositories.QuestionRepository, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, logger: logger}
}

func (h *QuestionHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpsertQuestionRequest](r)
	user := middleware.GetUser(r)

	question := &models.Question{
		TopicID:           req.TopicID,
		QuestionText:      req.QuestionText,
		Difficulty:        utils.NormalizeDifficulty(req.Difficulty),
		ExpectedKeyPoints: datatypes.NewJSONSlice(req.ExpectedKeyPoints),
		CreatedBy:         user.ID,
	}
	if err := h.questions.Create(r.Context(), question); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, question)
}

func (h *QuestionHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpsertQuestionRequest](r)

	question, err := h.questions.Update(r.Context(), chi.URLParam(r, "id"), &models.Question{
		TopicID:           req.TopicID,
		QuestionText:      req.QuestionText,
		Difficulty:        utils.NormalizeDifficulty(req.Difficulty),
		ExpectedKeyPoints: datatypes.NewJSONSlice(req.ExpectedKeyPoints),
	})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, question)
}

func (h *QuestionHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.questions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
