package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"jrs-backend/internal/services"
	"jrs-backend/internal/timeutil"
	"jrs-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// ExportJobs streams the full jobs workbook as an .xlsx download.
func (h *ReportHandler) ExportJobs(w http.ResponseWriter, r *http.Request) {
	buf, err := h.Service.JobsWorkbook(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to build workbook")
		return
	}

	filename := fmt.Sprintf("jobs-%s.xlsx", timeutil.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// BillingPDF renders the billing note for one job.
func (h *ReportHandler) BillingPDF(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	buf, err := h.Service.BillingPDF(r.Context(), jobID)
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "billing-"+jobID+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
