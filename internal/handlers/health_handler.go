package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"intervue/internal/llm"
	"intervue/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

type HealthHandler struct {
	db        *gorm.DB
	evaluator llm.Evaluator
}

func NewHealthHandler(db *gorm.DB, evaluator llm.Evaluator) *HealthHandler {
	return &HealthHandler{db: db, evaluator: evaluator}
}

func (h *HealthHandler) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "intervue",
		"version": "1.0.0",
	})
}

func (h *HealthHandler) ReadyzHandler(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true

	if h.evaluator == nil {
		checks["evaluator"] = ReadinessCheck{Status: "failed", Message: "Evaluation provider not initialized"}
		allChecksPass = false
	} else {
		checks["evaluator"] = ReadinessCheck{Status: "ok"}
	}

	if h.db == nil {
		checks["database"] = ReadinessCheck{Status: "failed", Message: "Database not initialized"}
		allChecksPass = false
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
		checks["database"] = ReadinessCheck{Status: "failed", Message: "Database unreachable"}
		allChecksPass = false
	} else {
		checks["database"] = ReadinessCheck{Status: "ok"}
	}

	resp := ReadinessResponse{Status: "ready", Service: "intervue", Checks: checks}
	statusCode := http.StatusOK
	if !allChecksPass {
		resp.Status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}
	utils.JSON(w, statusCode, resp)
}
