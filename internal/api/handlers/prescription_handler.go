package handlers

import (
	"net/http"

	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
)

// PrescriptionHandler handles prescription review requests
type PrescriptionHandler struct {
	prescriptions *services.PrescriptionService
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(prescriptions *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptions: prescriptions}
}

type prescriptionAnalysisResponse struct {
	*entities.PrescriptionAnalysis
	Report string `json:"report"`
}

// Analyze handles POST /api/prescriptions/analyze
func (h *PrescriptionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var p entities.Prescription
	if err := decodeJSON(w, r, &p); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	analysis, err := h.prescriptions.AnalyzePrescription(r.Context(), &p)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prescriptionAnalysisResponse{
		PrescriptionAnalysis: analysis,
		Report:               services.GeneratePrescriptionReport(analysis),
	})
}

// Extract handles POST /api/prescriptions/extract
func (h *PrescriptionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	p, err := h.prescriptions.ExtractFromText(r.Context(), req.Text)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}
