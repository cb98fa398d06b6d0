package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jrs-backend/internal/lifecycle"
	"jrs-backend/internal/middleware"
	"jrs-backend/internal/models"
	"jrs-backend/internal/services"
	"jrs-backend/internal/storage"
	"jrs-backend/pkg/utils"
)

type JobHandler struct {
	Service  *services.JobService
	PodStore *storage.PodStore // nil when object storage is not configured
}

func NewJobHandler(service *services.JobService, podStore *storage.PodStore) *JobHandler {
	return &JobHandler{Service: service, PodStore: podStore}
}

// statusFromError maps the lifecycle sentinels onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrCostLocked),
		errors.Is(err, lifecycle.ErrNotReviewable),
		errors.Is(err, lifecycle.ErrAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(err, lifecycle.ErrReasonRequired),
		errors.Is(err, services.ErrMissingRoute),
		errors.Is(err, services.ErrMissingCarrier),
		errors.Is(err, services.ErrDropOutOfRange),
		errors.Is(err, services.ErrNotYetCompleted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.List(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []*models.Job{}
	}
	utils.RespondJSON(w, http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Job not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	requesterID, _ := middleware.GetUserIDFromContext(r.Context())

	job, err := h.Service.Create(r.Context(), &req, actorFromRequest(r), requesterID)
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, job)
}

func (h *JobHandler) AssignJob(w http.ResponseWriter, r *http.Request) {
	var req models.AssignJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job, err := h.Service.Assign(r.Context(), mux.Vars(r)["id"], &req, actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) CompleteJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.Service.Complete(r.Context(), mux.Vars(r)["id"], actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

// UploadPOD receives a proof-of-delivery file for one drop, stores it and
// marks the drop completed.
func (h *JobHandler) UploadPOD(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dropIndex, err := strconv.Atoi(vars["drop"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid drop index")
		return
	}

	podURL := ""
	if h.PodStore != nil {
		file, header, err := r.FormFile("pod")
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "POD file required")
			return
		}
		defer file.Close()

		podURL, err = h.PodStore.UploadPOD(r.Context(), vars["id"], dropIndex,
			header.Header.Get("Content-Type"), file)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to store POD")
			return
		}
	}

	job, err := h.Service.CompleteDrop(r.Context(), vars["id"], dropIndex, podURL)
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	var req models.CancelJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job, err := h.Service.Cancel(r.Context(), mux.Vars(r)["id"], req.Reason, actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) ApproveJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.Service.Approve(r.Context(), mux.Vars(r)["id"], actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) RejectJob(w http.ResponseWriter, r *http.Request) {
	var req models.AccountingDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job, err := h.Service.Reject(r.Context(), mux.Vars(r)["id"], req.Reason, actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) SetBilling(w http.ResponseWriter, r *http.Request) {
	var req models.BillingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job, err := h.Service.SetBilling(r.Context(), mux.Vars(r)["id"], &req, actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job, err := h.Service.MarkPaid(r.Context(), mux.Vars(r)["id"], &req, actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) SetBaseCost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cost   float64 `json:"cost"`
		Reason string  `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job, err := h.Service.SetBaseCost(r.Context(), mux.Vars(r)["id"], req.Cost, req.Reason, actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) SetSellingPrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Price  float64 `json:"price"`
		Reason string  `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job, err := h.Service.SetSellingPrice(r.Context(), mux.Vars(r)["id"], req.Price, req.Reason, actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) AddExtraCharge(w http.ResponseWriter, r *http.Request) {
	var req models.ExtraChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job, err := h.Service.AddExtraCharge(r.Context(), mux.Vars(r)["id"], &req, actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

func (h *JobHandler) RemoveExtraCharge(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reason := r.URL.Query().Get("reason")

	job, err := h.Service.RemoveExtraCharge(r.Context(), vars["id"], vars["charge_id"], reason, actorFromRequest(r))
	if err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, job)
}

// DeleteJob is the admin hard-delete. The audit record is written before
// the row goes away.
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	var req models.CancelJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.Service.HardDelete(r.Context(), mux.Vars(r)["id"], req.Reason, actorFromRequest(r)); err != nil {
		utils.RespondError(w, statusFromError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
