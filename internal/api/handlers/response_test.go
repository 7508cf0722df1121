package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pharmavault/backend/pkg/errors"
)

func TestRespondWithAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperrors.NewNotFoundError("medicine not found"), http.StatusNotFound, "medicine not found"},
		{"validation", apperrors.NewValidationError("query is required"), http.StatusBadRequest, "query is required"},
		{"insufficient input", apperrors.NewInsufficientInputError("need two medicines"), http.StatusBadRequest, "need two medicines"},
		{"external", apperrors.NewExternalError("search unavailable", errors.New("dial tcp")), http.StatusBadGateway, "search unavailable"},
		{"internal hides detail", apperrors.NewInternalError("db exploded", errors.New("pq: boom")), http.StatusInternalServerError, "internal server error"},
		{"unknown type", &apperrors.AppError{Type: "CONFLICT", Message: "taken"}, http.StatusInternalServerError, "internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondWithAppError(w, httptest.NewRequest(http.MethodGet, "/api/medicines", nil), tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
}
