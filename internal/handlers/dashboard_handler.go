package handlers

import (
	"net/http"

	"jrs-backend/internal/services"
	"jrs-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}
	utils.RespondJSON(w, http.StatusOK, stats)
}
