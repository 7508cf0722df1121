package handlers

import (
	"fmt"
	"net/http"

	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

// ComparisonHandler handles medicine comparison requests
type ComparisonHandler struct {
	comparison   *services.ComparisonService
	maxMedicines int
}

// NewComparisonHandler creates a new comparison handler. maxMedicines caps
// how many ids one request may compare.
func NewComparisonHandler(comparison *services.ComparisonService, maxMedicines int) *ComparisonHandler {
	return &ComparisonHandler{comparison: comparison, maxMedicines: maxMedicines}
}

type comparisonRequest struct {
	MedicineIDs []string                     `json:"medicine_ids"`
	Criteria    *entities.ComparisonCriteria `json:"criteria,omitempty"`
}

type comparisonResponse struct {
	*entities.ComparisonResult
	Report string `json:"report"`
}

// Compare handles POST /api/comparisons. Omitted criteria enable every axis.
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req comparisonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if h.maxMedicines > 0 && len(req.MedicineIDs) > h.maxMedicines {
		respondWithAppError(w, r, apperrors.NewValidationError(
			fmt.Sprintf("at most %d medicines can be compared at once", h.maxMedicines)))
		return
	}

	criteria := entities.AllCriteria()
	if req.Criteria != nil {
		criteria = *req.Criteria
	}

	result, err := h.comparison.CompareMedicines(r.Context(), req.MedicineIDs, criteria)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, comparisonResponse{
		ComparisonResult: result,
		Report:           services.GenerateComparisonReport(result),
	})
}
