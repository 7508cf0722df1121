package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/api/handlers"
	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/triage"
	"github.com/pharmavault/backend/internal/vitals"
)

func TestVitalsHandler_Parse(t *testing.T) {
	h := handlers.NewVitalsHandler()

	w := doJSON(t, h.Parse, http.MethodPost, "/api/vitals/parse", `{"text":"HR: 72 bpm, BP 118/76 mmHg"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var v entities.VitalSigns
	decodeBody(t, w, &v)
	require.NotNil(t, v.HeartRate)
	assert.Equal(t, 72, *v.HeartRate)
	require.NotNil(t, v.SystolicBP)
	assert.Equal(t, 118, *v.SystolicBP)
	assert.Nil(t, v.BloodSugar)
}

func TestVitalsHandler_ParseRequiresText(t *testing.T) {
	h := handlers.NewVitalsHandler()

	w := doJSON(t, h.Parse, http.MethodPost, "/api/vitals/parse", `{"text":"  "}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "text is required", errorMessage(t, w))

	w = doJSON(t, h.Parse, http.MethodPost, "/api/vitals/parse", `{"body":"HR 70"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h.Parse, http.MethodPost, "/api/vitals/parse", ``, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "request body is required", errorMessage(t, w))
}

func TestVitalsHandler_AnalyzeText(t *testing.T) {
	h := handlers.NewVitalsHandler()

	w := doJSON(t, h.Analyze, http.MethodPost, "/api/vitals/analyze",
		`{"text":"Heart rate: 45 bpm, Blood pressure: 190/120 mmHg"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Analysis entities.VitalSignsAnalysis `json:"analysis"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, entities.OverallConcerning, body.Analysis.Overall)
	assert.True(t, body.Analysis.UrgentCare)
}

func TestVitalsHandler_AnalyzeStructured(t *testing.T) {
	h := handlers.NewVitalsHandler()

	w := doJSON(t, h.Analyze, http.MethodPost, "/api/vitals/analyze",
		`{"text":"HR 150","vitals":{"heart_rate":72}}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Vitals   entities.VitalSigns         `json:"vitals"`
		Analysis entities.VitalSignsAnalysis `json:"analysis"`
	}
	decodeBody(t, w, &body)
	require.NotNil(t, body.Vitals.HeartRate)
	assert.Equal(t, 72, *body.Vitals.HeartRate)
	assert.Equal(t, entities.OverallNormal, body.Analysis.Overall)

	w = doJSON(t, h.Analyze, http.MethodPost, "/api/vitals/analyze", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVitalsHandler_RespondAndTriage(t *testing.T) {
	h := handlers.NewVitalsHandler()

	text := "BP 140/90 and pulse 80"
	w := doJSON(t, h.Respond, http.MethodPost, "/api/vitals/respond", `{"text":"`+text+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var respond map[string]string
	decodeBody(t, w, &respond)
	assert.Equal(t, vitals.GenerateResponse(text), respond["response"])

	symptoms := "I have a fever and a cough"
	w = doJSON(t, h.Triage, http.MethodPost, "/api/triage", `{"text":"`+symptoms+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tri struct {
		Response string   `json:"response"`
		Symptoms []string `json:"symptoms"`
	}
	decodeBody(t, w, &tri)
	assert.Equal(t, triage.GenerateMedicalResponse(symptoms), tri.Response)
	assert.ElementsMatch(t, []string{"fever", "cough"}, tri.Symptoms)
}
