package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/api/handlers"
	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/triage"
)

type fixedAssistant struct {
	reply string
}

func (f fixedAssistant) Available() bool { return true }

func (f fixedAssistant) GenerateResponse(context.Context, string, []*entities.Medicine) string {
	return f.reply
}

func newAssistantHandler(withAI bool) *handlers.AssistantHandler {
	catalogService := services.NewCatalogService(catalog.NewSeededMemoryAdapter(), nil)
	var assistant *services.AssistantService
	if withAI {
		assistant = services.NewAssistantService(catalogService, fixedAssistant{reply: "Take it with water."}, nil, 0)
	} else {
		assistant = services.NewAssistantService(catalogService, nil, nil, 0)
	}
	return handlers.NewAssistantHandler(assistant, services.NewConversationService(assistant, catalogService))
}

func TestAssistantHandler_Reply(t *testing.T) {
	h := newAssistantHandler(false)

	w := doJSON(t, h.Reply, http.MethodPost, "/api/assistant/messages", `{"content":"I have a headache"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reply services.AssistantReply
	decodeBody(t, w, &reply)
	assert.Equal(t, services.ReplySourceTriage, reply.Source)
	assert.Equal(t, triage.GenerateMedicalResponse("I have a headache"), reply.Content)

	w = doJSON(t, h.Reply, http.MethodPost, "/api/assistant/messages", `{"content":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssistantHandler_ReplyWithMedicine(t *testing.T) {
	h := newAssistantHandler(true)

	w := doJSON(t, h.Reply, http.MethodPost, "/api/assistant/messages", `{"content":"How do I take it?","medicine_id":"med-001"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reply services.AssistantReply
	decodeBody(t, w, &reply)
	assert.Equal(t, services.ReplySourceAI, reply.Source)
	assert.Equal(t, "med-001", reply.RelatedMedicineID)

	w = doJSON(t, h.Reply, http.MethodPost, "/api/assistant/messages", `{"content":"How do I take it?","medicine_id":"med-999"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssistantHandler_ConversationLifecycle(t *testing.T) {
	h := newAssistantHandler(true)

	w := doJSON(t, h.CreateConversation, http.MethodPost, "/api/conversations", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var conv entities.Conversation
	decodeBody(t, w, &conv)
	id := map[string]string{"id": conv.ID}

	w = doJSON(t, h.SendMessage, http.MethodPost, "/api/conversations/"+conv.ID+"/messages", `{"content":"Is it safe for children?","medicine_id":"med-001"}`, id)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &conv)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "med-001", conv.SelectedMedicineID)
	assert.Equal(t, "Take it with water.", conv.Messages[1].Content)

	w = doJSON(t, h.AskQuestion, http.MethodPost, "/api/conversations/"+conv.ID+"/questions", `{"question":"dosage"}`, id)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &conv)
	require.Len(t, conv.Messages, 4)
	assert.Contains(t, conv.Messages[3].Content, "**Dosage information for Paracetamol:**")

	w = doJSON(t, h.SelectMedicine, http.MethodPut, "/api/conversations/"+conv.ID+"/medicine", `{"medicine_id":""}`, id)
	require.Equal(t, http.StatusOK, w.Code)
	var cleared entities.Conversation
	decodeBody(t, w, &cleared)
	assert.Empty(t, cleared.SelectedMedicineID)

	w = doJSON(t, h.ListConversations, http.MethodGet, "/api/conversations", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
	}
	decodeBody(t, w, &list)
	assert.Equal(t, 1, list.Count)

	w = doJSON(t, h.DeleteConversation, http.MethodDelete, "/api/conversations/"+conv.ID, "", id)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, h.GetConversation, http.MethodGet, "/api/conversations/"+conv.ID, "", id)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssistantHandler_QuestionNeedsMedicine(t *testing.T) {
	h := newAssistantHandler(false)

	w := doJSON(t, h.CreateConversation, http.MethodPost, "/api/conversations", `{}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var conv entities.Conversation
	decodeBody(t, w, &conv)

	w = doJSON(t, h.AskQuestion, http.MethodPost, "/api/conversations/"+conv.ID+"/questions", `{"question":"usage"}`, map[string]string{"id": conv.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
