package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/api/handlers"
	"github.com/pharmavault/backend/internal/api/routes"
	"github.com/pharmavault/backend/internal/application/services"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := catalog.NewSeededMemoryAdapter()
	catalogService := services.NewCatalogService(repo, nil)
	comparison := services.NewComparisonService(repo)
	assistant := services.NewAssistantService(catalogService, nil, nil, 0)

	router := routes.NewRouter(routes.Handlers{
		Medicine:     handlers.NewMedicineHandler(catalogService, comparison),
		Comparison:   handlers.NewComparisonHandler(comparison, 4),
		Vitals:       handlers.NewVitalsHandler(),
		Authenticity: handlers.NewAuthenticityHandler(services.NewAuthenticityService(repo), nil),
		Prescription: handlers.NewPrescriptionHandler(services.NewPrescriptionService(repo)),
		Assistant:    handlers.NewAssistantHandler(assistant, services.NewConversationService(assistant, catalogService)),
	}, nil, nil, nil)

	srv := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Routes(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/medicines", "", http.StatusOK},
		{http.MethodGet, "/api/medicines/med-001", "", http.StatusOK},
		{http.MethodGet, "/api/medicines/med-999", "", http.StatusNotFound},
		{http.MethodGet, "/api/medicines/med-001/alternatives", "", http.StatusOK},
		{http.MethodPost, "/api/medicines/interactions", `{"medicine_ids":["med-001","med-003"]}`, http.StatusOK},
		{http.MethodPost, "/api/comparisons", `{"medicine_ids":["med-001","med-003"]}`, http.StatusOK},
		{http.MethodPost, "/api/vitals/parse", `{"text":"HR 72"}`, http.StatusOK},
		{http.MethodPost, "/api/triage", `{"text":"I feel dizzy"}`, http.StatusOK},
		{http.MethodPost, "/api/prescriptions/extract", `{"text":"Patient: A B"}`, http.StatusOK},
		{http.MethodPost, "/api/assistant/messages", `{"content":"hello"}`, http.StatusOK},
		{http.MethodPost, "/api/conversations", "", http.StatusCreated},
		{http.MethodGet, "/api/conversations/missing", "", http.StatusNotFound},
		{http.MethodDelete, "/api/medicines/med-001", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/comparisons", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/api/comparisons", "application/json", bytes.NewBufferString(`{"medicine_ids":["med-001"]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "at least 2 medicines are required for comparison", body["error"])
}
