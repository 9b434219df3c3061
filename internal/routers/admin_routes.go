package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"intervue/internal/handlers"
	"intervue/internal/middleware"
	"intervue/internal/models"
)

// AdminRoutes registers the question-bank management surface. Listings are
// readable by any authenticated user (students browse topics and tests);
// mutations are admin-only.
func AdminRoutes(router *chi.Mux, topicHandler *handlers.TopicHandler, questionHandler *handlers.QuestionHandler, testHandler *handlers.TestHandler, authenticate func(http.Handler) http.Handler) {
	router.Route("/api/topics", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", topicHandler.ListHandler)
		r.Get("/{id}/questions", topicHandler.QuestionsHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.With(middleware.ValidateRequest[*models.UpsertTopicRequest]()).Post("/", topicHandler.CreateHandler)
			r.With(middleware.ValidateRequest[*models.UpsertTopicRequest]()).Put("/{id}", topicHandler.UpdateHandler)
			r.Delete("/{id}", topicHandler.DeleteHandler)
		})
	})

	router.Route("/api/questions", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", questionHandler.ListHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.With(middleware.ValidateRequest[*models.UpsertQuestionRequest]()).Post("/", questionHandler.CreateHandler)
			r.With(middleware.ValidateRequest[*models.UpsertQuestionRequest]()).Put("/{id}", questionHandler.UpdateHandler)
			r.Delete("/{id}", questionHandler.DeleteHandler)
		})
	})

	router.Route("/api/tests", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", testHandler.ListHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.With(middleware.ValidateRequest[*models.UpsertTestRequest]()).Post("/", testHandler.CreateHandler)
			r.With(middleware.ValidateRequest[*models.UpsertTestRequest]()).Put("/{id}", testHandler.UpdateHandler)
			r.Delete("/{id}", testHandler.DeleteHandler)
		})
	})
}
