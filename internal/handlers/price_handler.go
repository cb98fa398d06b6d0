package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"jrs-backend/internal/models"
	"jrs-backend/internal/services"
	"jrs-backend/pkg/utils"
)

type PriceHandler struct {
	Service *services.PriceService
}

func NewPriceHandler(service *services.PriceService) *PriceHandler {
	return &PriceHandler{Service: service}
}

func (h *PriceHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.List(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to load price catalog")
		return
	}
	if records == nil {
		records = []models.PriceRecord{}
	}
	utils.RespondJSON(w, http.StatusOK, records)
}

// ReplaceCatalog swaps the whole catalog. Partial patches don't exist; the
// admin screen always sends the full list.
func (h *PriceHandler) ReplaceCatalog(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.Service.Replace(r.Context(), req.Records); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int{"records": len(req.Records)})
}

// Quote resolves a lane for the booking form. A miss is a 200 with
// available=false, not an error.
func (h *PriceHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	drops, _ := strconv.Atoi(q.Get("drops"))

	quote, err := h.Service.Quote(r.Context(),
		q.Get("origin"), q.Get("destination"), q.Get("truck_type"),
		q.Get("subcontractor"), drops)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to resolve price")
		return
	}
	utils.RespondJSON(w, http.StatusOK, quote)
}
