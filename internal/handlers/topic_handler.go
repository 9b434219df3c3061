package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"intervue/internal/middleware"
	"intervue/internal/models"
	"intervue/internal/repositories"
	"intervue/internal/utils"
)

type TopicHandler struct {
	topics    *repositories.TopicRepository
	questions *repositories.QuestionRepository
	logger    *zap.Logger
}

func NewTopicHandler(topics *repositories.TopicRepository, questions *repositories.QuestionRepository, logger *zap.Logger) *TopicHandler {
	return &TopicHandler{topics: topics, questions: questions, logger: logger}
}

func (h *TopicHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, topics)
}

func (h *TopicHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpsertTopicRequest](r)
	user := middleware.GetUser(r)

	topic := &models.Topic{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   user.ID,
	}
	if err := h.topics.Create(r.Context(), topic); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, topic)
}

func (h *TopicHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpsertTopicRequest](r)

	topic, err := h.topics.Update(r.Context(), chi.URLParam(r, "id"), &models.Topic{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, topic)
}

func (h *TopicHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.topics.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QuestionsHandler lists the question pool of one topic.
func (h *TopicHandler) QuestionsHandler(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "id")
	if _, err := h.topics.GetByID(r.Context(), topicID); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	questions, err := h.questions.GetByTopic(r.Context(), topicID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, questions)
}
