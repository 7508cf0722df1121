package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

const (
	defaultAlternativesLimit = 5
	maxAlternativesLimit     = 20
)

// MedicineHandler handles catalog requests
type MedicineHandler struct {
	catalog    *services.CatalogService
	comparison *services.ComparisonService
}

// NewMedicineHandler creates a new medicine handler
func NewMedicineHandler(catalog *services.CatalogService, comparison *services.ComparisonService) *MedicineHandler {
	return &MedicineHandler{catalog: catalog, comparison: comparison}
}

type medicineListResponse struct {
	Medicines []*entities.Medicine `json:"medicines"`
	Count     int                  `json:"count"`
}

// ListMedicines handles GET /api/medicines?q=&category=. q wins over
// category; neither lists the whole catalog.
func (h *MedicineHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	var (
		medicines []*entities.Medicine
		err       error
	)
	switch {
	case query != "":
		medicines, err = h.catalog.SearchMedicines(r.Context(), query)
	case category != "":
		medicines, err = h.catalog.ListByCategory(r.Context(), category)
	default:
		medicines, err = h.catalog.ListMedicines(r.Context())
	}
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if medicines == nil {
		medicines = []*entities.Medicine{}
	}

	respondWithJSON(w, http.StatusOK, medicineListResponse{Medicines: medicines, Count: len(medicines)})
}

// GetMedicine handles GET /api/medicines/{id}
func (h *MedicineHandler) GetMedicine(w http.ResponseWriter, r *http.Request) {
	medicine, err := h.catalog.GetMedicine(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, medicine)
}

// GetAlternatives handles GET /api/medicines/{id}/alternatives?limit=
func (h *MedicineHandler) GetAlternatives(w http.ResponseWriter, r *http.Request) {
	limit := defaultAlternativesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAlternativesLimit {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 20")
			return
		}
		limit = n
	}

	alternatives, err := h.comparison.FindAlternatives(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, medicineListResponse{Medicines: alternatives, Count: len(alternatives)})
}

type interactionsRequest struct {
	MedicineIDs []string `json:"medicine_ids"`
}

// CheckInteractions handles POST /api/medicines/interactions
func (h *MedicineHandler) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	var req interactionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if len(req.MedicineIDs) < 2 {
		respondWithAppError(w, r, apperrors.NewValidationError("at least 2 medicine_ids are required"))
		return
	}

	check, err := h.catalog.CheckDrugInteractions(r.Context(), req.MedicineIDs)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, check)
}
