package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"intervue/internal/handlers"
	"intervue/internal/middleware"
	"intervue/internal/models"
)

// SessionRoutes registers the interview session surface. Everything here
// requires an authenticated user.
func SessionRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, authenticate func(http.Handler) http.Handler) {
	router.Route("/api/sessions", func(r chi.Router) {
		r.Use(authenticate)
		r.With(middleware.ValidateRequest[*models.StartSessionRequest]()).Post("/start", sessionHandler.StartHandler)
		r.With(middleware.ValidateRequest[*models.SubmitAnswerRequest]()).Post("/answer", sessionHandler.AnswerHandler)
		r.Get("/recent", sessionHandler.RecentHandler)
		r.Get("/history", sessionHandler.HistoryHandler)
		r.Get("/{id}", sessionHandler.GetHandler)
		r.Get("/{id}/turns", sessionHandler.TurnsHandler)
		r.Get("/{id}/score", sessionHandler.ScoreHandler)
		r.Post("/{id}/quit", sessionHandler.QuitHandler)
	})

	router.With(authenticate).Get("/api/stats", sessionHandler.StatsHandler)
}
