package handlers

import (
	"net/http"

	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/infrastructure/observability"
)

// AuthenticityHandler handles batch verification requests
type AuthenticityHandler struct {
	authenticity *services.AuthenticityService
	metrics      *observability.Metrics
}

// NewAuthenticityHandler creates a new authenticity handler. metrics may be
// nil.
func NewAuthenticityHandler(authenticity *services.AuthenticityService, metrics *observability.Metrics) *AuthenticityHandler {
	return &AuthenticityHandler{authenticity: authenticity, metrics: metrics}
}

type verifyResponse struct {
	Check  *entities.AuthenticityCheck `json:"check"`
	Recall entities.RecallStatus       `json:"recall"`
	Report string                      `json:"report"`
}

// Verify handles POST /api/authenticity/verify
func (h *AuthenticityHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req services.VerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	check, err := h.authenticity.VerifyMedicine(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	recall, err := h.authenticity.CheckRecallStatus(r.Context(), req.MedicineID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	observability.RecordVerification(r.Context(), h.metrics, string(check.VerificationStatus))

	respondWithJSON(w, http.StatusOK, verifyResponse{
		Check:  check,
		Recall: recall,
		Report: services.GenerateAuthenticityReport(check, &recall),
	})
}
