package middleware

import (
	"context"
	"net/http"

	"intervue/internal/models"
	"intervue/internal/repositories"
	"intervue/internal/utils"
)

const currentUserKey contextKey = "current_user"

// Authenticate validates the bearer token and loads the authenticated user
// into the request context. The DB lookup keeps role changes effective
// without waiting for token expiry.
func Authenticate(users *repositories.UserRepository, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid token")
				return
			}
			userID, err := utils.UserIDFromClaims(claims)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid token")
				return
			}
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "unauthorized", "Unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin users. Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil || user.Role != models.RoleAdmin {
			utils.Error(w, http.StatusForbidden, "forbidden", "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser retrieves the authenticated user from the request context.
func GetUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(currentUserKey).(*models.User)
	return user
}
