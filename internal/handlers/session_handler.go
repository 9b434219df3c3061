package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"intervue/internal/middleware"
	"intervue/internal/models"
	"intervue/internal/sessions"
	"intervue/internal/utils"
)

// SessionHandler exposes the interview session lifecycle over HTTP. All
// routes require an authenticated user; the handler never touches storage
// directly, everything goes through the session manager.
type SessionHandler struct {
	manager *sessions.Manager
	logger  *zap.Logger
}

func NewSessionHandler(manager *sessions.Manager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, logger: logger}
}

func (h *SessionHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartSessionRequest](r)
	user := middleware.GetUser(r)

	resp, err := h.manager.Start(r.Context(), user.ID, sessions.StartOptions{
		TestID:  req.TestID,
		TopicID: req.TopicID,
	})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitAnswerRequest](r)
	user := middleware.GetUser(r)

	resp, err := h.manager.SubmitAnswer(r.Context(), user, req.SessionID, req.Answer)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	detail, err := h.manager.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

func (h *SessionHandler) TurnsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	turns, err := h.manager.Turns(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, turns)
}

func (h *SessionHandler) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	score, err := h.manager.GetScore(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, score)
}

func (h *SessionHandler) QuitHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	session, err := h.manager.Quit(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, session)
}

func (h *SessionHandler) RecentHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	summaries, err := h.manager.Recent(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, summaries)
}

func (h *SessionHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	summaries, err := h.manager.History(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, summaries)
}

func (h *SessionHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	stats, err := h.manager.Stats(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}
