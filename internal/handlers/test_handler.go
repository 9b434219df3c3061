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

type TestHandler struct {
	tests  *repositories.TestRepository
	logger *zap.Logger
}

func NewTestHandler(tests *repositories.TestRepository, logger *zap.Logger) *TestHandler {
	return &TestHandler{tests: tests, logger: logger}
}

func (h *TestHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tests, err := h.tests.GetAll(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, tests)
}

func (h *TestHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpsertTestRequest](r)
	user := middleware.GetUser(r)

	test := &models.Test{
		Name:            req.Name,
		Description:     req.Description,
		QuestionIDs:     datatypes.NewJSONSlice(req.QuestionIDs),
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		CreatedBy:       user.ID,
	}
	if err := h.tests.Create(r.Context(), test); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, test)
}

// UpdateHandler edits a test's definition. Sessions already created from it
// keep their question-id snapshot.
func (h *TestHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpsertTestRequest](r)

	test, err := h.tests.Update(r.Context(), chi.URLParam(r, "id"), &models.Test{
		Name:            req.Name,
		Description:     req.Description,
		QuestionIDs:     datatypes.NewJSONSlice(req.QuestionIDs),
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
	})
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, test)
}

func (h *TestHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tests.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
