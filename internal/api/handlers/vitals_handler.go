package handlers

import (
	"net/http"
	"strings"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/triage"
	"github.com/pharmavault/backend/internal/vitals"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

// VitalsHandler exposes the deterministic vital-sign and symptom analysis.
// It has no dependencies.
type VitalsHandler struct{}

// NewVitalsHandler creates a new vitals handler
func NewVitalsHandler() *VitalsHandler {
	return &VitalsHandler{}
}

type textRequest struct {
	Text string `json:"text"`
}

type analyzeRequest struct {
	Text   string               `json:"text,omitempty"`
	Vitals *entities.VitalSigns `json:"vitals,omitempty"`
}

type analyzeResponse struct {
	Vitals   entities.VitalSigns         `json:"vitals"`
	Analysis entities.VitalSignsAnalysis `json:"analysis"`
}

type textResponse struct {
	Response string `json:"response"`
}

func (h *VitalsHandler) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return "", false
	}
	if strings.TrimSpace(req.Text) == "" {
		respondWithAppError(w, r, apperrors.NewValidationError("text is required"))
		return "", false
	}
	return req.Text, true
}

// Parse handles POST /api/vitals/parse
func (h *VitalsHandler) Parse(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readText(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, vitals.Parse(text))
}

// Analyze handles POST /api/vitals/analyze. The body carries either free
// text or already structured readings; structured readings win.
func (h *VitalsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	var v entities.VitalSigns
	switch {
	case req.Vitals != nil:
		v = *req.Vitals
	case strings.TrimSpace(req.Text) != "":
		v = vitals.Parse(req.Text)
	default:
		respondWithAppError(w, r, apperrors.NewValidationError("either text or vitals is required"))
		return
	}

	respondWithJSON(w, http.StatusOK, analyzeResponse{Vitals: v, Analysis: vitals.Analyze(v)})
}

// Respond handles POST /api/vitals/respond
func (h *VitalsHandler) Respond(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readText(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, textResponse{Response: vitals.GenerateResponse(text)})
}

type triageResponse struct {
	Response string   `json:"response"`
	Symptoms []string `json:"symptoms"`
}

// Triage handles POST /api/triage
func (h *VitalsHandler) Triage(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readText(w, r)
	if !ok {
		return
	}

	detected := triage.DetectSymptoms(text)
	keys := make([]string, len(detected))
	for i, s := range detected {
		keys[i] = s.Key
	}
	respondWithJSON(w, http.StatusOK, triageResponse{
		Response: triage.GenerateMedicalResponse(text),
		Symptoms: keys,
	})
}
