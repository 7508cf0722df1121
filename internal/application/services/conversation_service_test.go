package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/triage"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

func newConversationService(ai *stubAssistant) *services.ConversationService {
	catalogService := services.NewCatalogService(catalog.NewSeededMemoryAdapter(), nil)
	var assistant *services.AssistantService
	if ai == nil {
		assistant = services.NewAssistantService(catalogService, nil, nil, 0)
	} else {
		assistant = services.NewAssistantService(catalogService, ai, nil, 0)
	}
	return services.NewConversationService(assistant, catalogService)
}

func TestConversationService_SendMessageCreatesConversation(t *testing.T) {
	service := newConversationService(nil)
	ctx := context.Background()

	content := "I have had a headache since this morning"
	conv, err := service.SendMessage(ctx, "", content)
	require.NoError(t, err)

	_, err = uuid.Parse(conv.ID)
	assert.NoError(t, err)
	assert.Equal(t, "I have had a headache since th...", conv.Title)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, entities.MessageRoleUser, conv.Messages[0].Role)
	assert.Equal(t, content, conv.Messages[0].Content)
	assert.Equal(t, entities.MessageRoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, triage.GenerateMedicalResponse(content), conv.Messages[1].Content)
	assert.NotEqual(t, conv.Messages[0].ID, conv.Messages[1].ID)

	stored, err := service.Get(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 2)
}

func TestConversationService_ShortTitleKeptWhole(t *testing.T) {
	service := newConversationService(nil)
	ctx := context.Background()

	conv, err := service.Create(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "New Conversation", conv.Title)

	conv, err = service.SendMessage(ctx, conv.ID, "fever")
	require.NoError(t, err)
	assert.Equal(t, "fever", conv.Title)

	conv, err = service.SendMessage(ctx, conv.ID, "and a cough that will not go away at all")
	require.NoError(t, err)
	assert.Equal(t, "fever", conv.Title)
	assert.Len(t, conv.Messages, 4)
}

func TestConversationService_SelectedMedicineFlowsToAssistant(t *testing.T) {
	ai := &stubAssistant{available: true, reply: "Take it after meals."}
	service := newConversationService(ai)
	ctx := context.Background()

	conv, err := service.Create(ctx, "med-004")
	require.NoError(t, err)

	conv, err = service.SendMessage(ctx, conv.ID, "When should I take it?")
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"med-004"}}, ai.contexts)
	assert.Equal(t, "med-004", conv.Messages[0].RelatedMedicineID)
	assert.Equal(t, "med-004", conv.Messages[1].RelatedMedicineID)

	conv, err = service.SelectMedicine(ctx, conv.ID, "")
	require.NoError(t, err)
	assert.Empty(t, conv.SelectedMedicineID)

	_, err = service.SelectMedicine(ctx, conv.ID, "med-999")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestConversationService_Errors(t *testing.T) {
	service := newConversationService(nil)
	ctx := context.Background()

	_, err := service.Get(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = service.SendMessage(ctx, "missing", "hello")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = service.SendMessage(ctx, "", "   ")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.Create(ctx, "med-999")
	assert.True(t, apperrors.IsNotFound(err))

	assert.True(t, apperrors.IsNotFound(service.Delete(ctx, "missing")))
}

func TestConversationService_ListAndDelete(t *testing.T) {
	service := newConversationService(nil)
	ctx := context.Background()

	first, err := service.Create(ctx, "")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := service.Create(ctx, "")
	require.NoError(t, err)

	list := service.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	require.NoError(t, service.Delete(ctx, second.ID))
	list = service.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestConversationService_ConcurrentSends(t *testing.T) {
	service := newConversationService(nil)
	ctx := context.Background()

	conv, err := service.Create(ctx, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := service.SendMessage(ctx, conv.ID, fmt.Sprintf("question %d about a cough", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := service.Get(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Messages, 40)
}

func TestConversationService_AskPredefined(t *testing.T) {
	ai := &stubAssistant{available: true}
	service := newConversationService(ai)
	ctx := context.Background()

	conv, err := service.Create(ctx, "")
	require.NoError(t, err)

	_, err = service.AskPredefined(ctx, conv.ID, entities.QuestionDosage)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.SelectMedicine(ctx, conv.ID, "med-001")
	require.NoError(t, err)

	_, err = service.AskPredefined(ctx, conv.ID, entities.QuestionType("price"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	conv, err = service.AskPredefined(ctx, conv.ID, entities.QuestionSideEffects)
	require.NoError(t, err)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "What are the side effects of this medicine?", conv.Messages[0].Content)
	assert.Contains(t, conv.Messages[1].Content, "**Potential side effects of Paracetamol:**")
	assert.Equal(t, "med-001", conv.Messages[1].RelatedMedicineID)
	assert.Zero(t, ai.calls)
}

func TestAnswerQuestion(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	m := &entities.Medicine{
		Name:         "Amoxicillin",
		Dosage:       "500mg every 8 hours",
		Description:  "Penicillin antibiotic.",
		UsedFor:      []string{"Bacterial infections"},
		Alternatives: []string{"Azithromycin", "Cephalexin"},
		ExpiryDate:   "2027-08-15",
	}

	assert.Equal(t,
		"Here are alternatives for Amoxicillin:\n• Azithromycin\n• Cephalexin\n\nPlease consult your healthcare provider before switching medications.",
		services.AnswerQuestion(entities.QuestionAlternatives, m, now))

	assert.Contains(t, services.AnswerQuestion(entities.QuestionDosage, m, now), "**Dosage information for Amoxicillin:**\n\n500mg every 8 hours")

	assert.Equal(t,
		"Amoxicillin is commonly used for:\n• Bacterial infections\n\nPenicillin antibiotic.\n\nAlways use as directed by your healthcare provider.",
		services.AnswerQuestion(entities.QuestionUsage, m, now))

	assert.Contains(t, services.AnswerQuestion(entities.QuestionSideEffects, m, now), "I don't have detailed information about side effects for Amoxicillin.")

	expiry := services.AnswerQuestion(entities.QuestionExpiryDate, m, now)
	assert.Contains(t, expiry, "The expiry date for Amoxicillin is August 15, 2027.")
	assert.NotContains(t, expiry, "has expired")

	m.ExpiryDate = "2026-01-01"
	assert.Contains(t, services.AnswerQuestion(entities.QuestionExpiryDate, m, now), "⚠️ **This medicine has expired and should not be used.**")

	m.ExpiryDate = "soon"
	assert.Equal(t,
		"The expiry information for Amoxicillin is not available or invalid. Please check the physical packaging.",
		services.AnswerQuestion(entities.QuestionExpiryDate, m, now))
}

// unreachableNames fails name lookups the way a dropped database connection
// would.
type unreachableNames struct {
	*catalog.MemoryAdapter
}

func (unreachableNames) GetByName(context.Context, string) (*entities.Medicine, error) {
	return nil, apperrors.NewInternalError("catalog unreachable", fmt.Errorf("connection reset"))
}

func TestConversationService_FailedReplyLeavesConversationUnchanged(t *testing.T) {
	catalogService := services.NewCatalogService(unreachableNames{catalog.NewSeededMemoryAdapter()}, nil)
	ai := &stubAssistant{available: true, reply: "ok"}
	assistant := services.NewAssistantService(catalogService, ai, nil, 0)
	service := services.NewConversationService(assistant, catalogService)
	ctx := context.Background()

	conv, err := service.Create(ctx, "")
	require.NoError(t, err)

	_, err = service.SendMessage(ctx, conv.ID, "Is paracetamol safe with coffee?")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))

	stored, err := service.Get(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Messages)
	assert.Equal(t, "New Conversation", stored.Title)
	assert.Equal(t, conv.UpdatedAt, stored.UpdatedAt)
	assert.Zero(t, ai.calls)

	// a conversation started by the failed message is not kept
	_, err = service.SendMessage(ctx, "", "Is paracetamol safe with coffee?")
	require.Error(t, err)
	assert.Len(t, service.List(ctx), 1)
}

func TestConversationService_DetectedMedicineBecomesSelection(t *testing.T) {
	ai := &stubAssistant{available: true, reply: "Paracetamol relieves pain and fever."}
	service := newConversationService(ai)
	ctx := context.Background()

	conv, err := service.SendMessage(ctx, "", "What is paracetamol for?")
	require.NoError(t, err)
	assert.Equal(t, "med-001", conv.SelectedMedicineID)
	assert.Equal(t, [][]string{{"med-001"}}, ai.contexts)

	// later messages use the detected medicine without naming it
	conv, err = service.SendMessage(ctx, conv.ID, "How often can I take it?")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"med-001"}, {"med-001"}}, ai.contexts)
	assert.Equal(t, "med-001", conv.Messages[2].RelatedMedicineID)

	// an explicit selection is not replaced by a name in the text
	conv, err = service.SelectMedicine(ctx, conv.ID, "med-004")
	require.NoError(t, err)
	conv, err = service.SendMessage(ctx, conv.ID, "Is paracetamol better?")
	require.NoError(t, err)
	assert.Equal(t, "med-004", conv.SelectedMedicineID)
}
