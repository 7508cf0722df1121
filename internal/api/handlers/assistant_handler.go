package handlers

import (
	"net/http"
	"strings"

	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

// AssistantHandler handles one-shot assistant questions and conversations
type AssistantHandler struct {
	assistant     *services.AssistantService
	conversations *services.ConversationService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistant *services.AssistantService, conversations *services.ConversationService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, conversations: conversations}
}

type messageRequest struct {
	Content    string `json:"content"`
	MedicineID string `json:"medicine_id,omitempty"`
}

// Reply handles POST /api/assistant/messages
func (h *AssistantHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondWithAppError(w, r, apperrors.NewValidationError("content is required"))
		return
	}

	reply, err := h.assistant.Reply(r.Context(), req.Content, req.MedicineID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reply)
}

type createConversationRequest struct {
	MedicineID string `json:"medicine_id,omitempty"`
}

// CreateConversation handles POST /api/conversations. The body is optional.
func (h *AssistantHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var req createConversationRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithAppError(w, r, err)
			return
		}
	}

	conv, err := h.conversations.Create(r.Context(), req.MedicineID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conv)
}

// ListConversations handles GET /api/conversations
func (h *AssistantHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	conversations := h.conversations.List(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]any{
		"conversations": conversations,
		"count":         len(conversations),
	})
}

// GetConversation handles GET /api/conversations/{id}
func (h *AssistantHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.conversations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// DeleteConversation handles DELETE /api/conversations/{id}
func (h *AssistantHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.conversations.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectMedicine handles PUT /api/conversations/{id}/medicine
func (h *AssistantHandler) SelectMedicine(w http.ResponseWriter, r *http.Request) {
	var req createConversationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	conv, err := h.conversations.SelectMedicine(r.Context(), r.PathValue("id"), req.MedicineID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// SendMessage handles POST /api/conversations/{id}/messages
func (h *AssistantHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	id := r.PathValue("id")
	if req.MedicineID != "" {
		if _, err := h.conversations.SelectMedicine(r.Context(), id, req.MedicineID); err != nil {
			respondWithAppError(w, r, err)
			return
		}
	}

	conv, err := h.conversations.SendMessage(r.Context(), id, req.Content)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

type questionRequest struct {
	Question entities.QuestionType `json:"question"`
}

// AskQuestion handles POST /api/conversations/{id}/questions
func (h *AssistantHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	conv, err := h.conversations.AskPredefined(r.Context(), r.PathValue("id"), req.Question)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}
