package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"intervue/internal/llm"
	"intervue/internal/repositories"
	"intervue/internal/sessions"
	"intervue/internal/utils"
)

// writeDomainError maps session/repository/evaluation errors to HTTP
// responses with machine-readable codes. Unrecognized errors become opaque
// 500s and are logged.
func writeDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, repositories.ErrSessionNotFound):
		utils.Error(w, http.StatusNotFound, "session_not_found", "Session not found")
	case errors.Is(err, repositories.ErrTestNotFound):
		utils.Error(w, http.StatusNotFound, "test_not_found", "Test not found")
	case errors.Is(err, repositories.ErrTopicNotFound):
		utils.Error(w, http.StatusNotFound, "topic_not_found", "Topic not found")
	case errors.Is(err, repositories.ErrScoreNotFound):
		utils.Error(w, http.StatusNotFound, "score_not_found", "Score not found")
	case errors.Is(err, repositories.ErrQuestionNotFound):
		utils.Error(w, http.StatusBadRequest, "question_not_found", "Question no longer exists")
	case errors.Is(err, sessions.ErrForbidden):
		utils.Error(w, http.StatusForbidden, "forbidden", "Session belongs to another user")
	case errors.Is(err, sessions.ErrSessionNotActive):
		utils.Error(w, http.StatusBadRequest, "session_not_active", "Session already ended")
	case errors.Is(err, sessions.ErrNoQuestionsAvailable):
		utils.Error(w, http.StatusBadRequest, "no_questions_available", "No questions available for this test")
	case errors.Is(err, sessions.ErrSessionBusy):
		utils.Error(w, http.StatusConflict, "session_busy", "Another submission for this session is in flight")
	case llm.IsUpstreamError(err), llm.IsParseError(err):
		logger.Error("evaluation error", zap.Error(err))
		utils.Error(w, http.StatusBadGateway, "evaluation_failed", "Failed to evaluate answer, please resubmit")
	default:
		logger.Error("unhandled error", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
