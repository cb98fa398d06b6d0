package handlers

import (
	"net/http"

	"jrs-backend/internal/monitoring"
	"jrs-backend/pkg/utils"
)

type MonitoringHandler struct {
	Monitor *monitoring.Monitor
}

func NewMonitoringHandler(monitor *monitoring.Monitor) *MonitoringHandler {
	return &MonitoringHandler{Monitor: monitor}
}

func (h *MonitoringHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.Monitor.Snapshot(r.Context()))
}
