package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"jrs-backend/internal/models"
	"jrs-backend/internal/repositories"
	"jrs-backend/pkg/utils"
)

type AuditLogHandler struct {
	Repo *repositories.AuditLogRepository
}

func NewAuditLogHandler(repo *repositories.AuditLogRepository) *AuditLogHandler {
	return &AuditLogHandler{Repo: repo}
}

func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Repo.List(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to list audit logs")
		return
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *AuditLogHandler) ListJobAuditLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Repo.ListByJob(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to list audit logs")
		return
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}
