package handlers

import (
	"net/http"

	"jrs-backend/internal/health"
	"jrs-backend/pkg/utils"
)

type HealthHandler struct {
	Checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.Check(r.Context())

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.RespondJSON(w, code, status)
}
