package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(&config.OpenAIConfig{
		APIKey:             "sk-test",
		BaseURL:            srv.URL + "/",
		RateLimitPerMinute: -1,
	})
	c.retry.InitialDelay = time.Millisecond
	c.retry.MaxDelay = time.Millisecond
	return c, &calls
}

func okResponse(text string) map[string]any {
	return map[string]any{
		"output": []map[string]any{
			{"content": []map[string]any{{"type": "output_text", "text": text}}},
		},
	}
}

func TestGenerateResponse_NotConfigured(t *testing.T) {
	c := NewClient(&config.OpenAIConfig{})
	assert.False(t, c.Available())
	assert.Equal(t, NotConfiguredMessage, c.GenerateResponse(context.Background(), "hi", nil))
}

func TestGenerateResponse_Success(t *testing.T) {
	var payload map[string]any
	var auth string
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(okResponse("  Take it with food.  "))
	})

	medicine := &entities.Medicine{Name: "Metformin", GenericName: "Metformin Hydrochloride", UsedFor: []string{"Type 2 diabetes mellitus"}}
	got := c.GenerateResponse(context.Background(), "how do I take metformin?", []*entities.Medicine{medicine})

	assert.Equal(t, "Take it with food.", got)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, assistantSystemPrompt, payload["instructions"])

	input := payload["input"].([]any)[0].(map[string]any)["content"].(string)
	assert.Contains(t, input, "- Medicine: Metformin (Metformin Hydrochloride)")
	assert.Contains(t, input, "User Query: how do I take metformin?")
}

func TestGenerateResponse_FailureMessages(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		want      string
		wantCalls int32
	}{
		{"unauthorized is not retried", http.StatusUnauthorized, InvalidKeyMessage, 1},
		{"forbidden is not retried", http.StatusForbidden, InvalidKeyMessage, 1},
		{"rate limit is retried", http.StatusTooManyRequests, AtCapacityMessage, 3},
		{"server error is retried", http.StatusBadGateway, GenericFailureMessage, 3},
		{"bad request is not retried", http.StatusBadRequest, GenericFailureMessage, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			assert.Equal(t, tt.want, c.GenerateResponse(context.Background(), "q", nil))
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(calls))
		})
	}
}

func TestGenerateResponse_RecoversAfterTransientError(t *testing.T) {
	var n int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(okResponse("ok"))
	})

	assert.Equal(t, "ok", c.GenerateResponse(context.Background(), "q", nil))
}

func TestGenerateResponse_EmptyOutput(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"output": []any{}})
	})

	assert.Equal(t, GenericFailureMessage, c.GenerateResponse(context.Background(), "q", nil))
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestBuildMedicineContext(t *testing.T) {
	assert.Equal(t, noContextLine, buildMedicineContext(nil))

	out := buildMedicineContext([]*entities.Medicine{{
		Name:                 "Amoxicillin",
		GenericName:          "Amoxicillin Trihydrate",
		Price:                149.99,
		PrescriptionRequired: true,
		PregnancyCategory:    "B",
	}})
	assert.Contains(t, out, "Price: ₹149.99")
	assert.Contains(t, out, "Prescription: Required")
	assert.Contains(t, out, "Status: Out of Stock")
	assert.Contains(t, out, "Pregnancy Category: B")
}

func TestIsFailureMessage(t *testing.T) {
	assert.True(t, IsFailureMessage(AtCapacityMessage))
	assert.True(t, IsFailureMessage(NotConfiguredMessage))
	assert.False(t, IsFailureMessage("Paracetamol is used for fever."))
}
