package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"intervue/internal/middleware"
	"intervue/internal/models"
	"intervue/internal/repositories"
	"intervue/internal/utils"
)

// AuthHandler manages registration and login.
type AuthHandler struct {
	users     *repositories.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthHandler(users *repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.RegisterRequest](r)

	username := utils.NormalizeUsername(req.Username)
	if existing, err := h.users.GetByUsername(r.Context(), username); err == nil && existing != nil {
		utils.Error(w, http.StatusConflict, "username_taken", "Username is already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to hash password")
		return
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		FullName:     req.FullName,
		Email:        req.Email,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to create user")
		return
	}

	h.logger.Info("user registered", zap.String("user_id", user.ID))
	utils.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	user, err := h.users.GetByUsername(r.Context(), utils.NormalizeUsername(req.Username))
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			h.logger.Error("login lookup failed", zap.Error(err))
		}
		utils.Error(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		return
	}

	token, err := utils.SignToken(h.jwtSecret, user.ID, user.Username, h.tokenTTL)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "internal_error", "Failed to sign token")
		return
	}

	utils.JSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
