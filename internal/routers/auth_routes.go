package routers

import (
	"github.com/go-chi/chi/v5"

	"intervue/internal/handlers"
	"intervue/internal/middleware"
	"intervue/internal/models"
)

func AuthRoutes(router *chi.Mux, authHandler *handlers.AuthHandler) {
	router.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.RegisterRequest]()).Post("/register", authHandler.RegisterHandler)
		r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", authHandler.LoginHandler)
	})
}
