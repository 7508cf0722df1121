package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/entities"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

const (
	defaultConversationTitle = "New Conversation"
	titleLength              = 30
)

// QuestionText is the user-visible wording of each predefined question.
var QuestionText = map[entities.QuestionType]string{
	entities.QuestionAlternatives: "Show me alternatives for this medicine",
	entities.QuestionDosage:       "What is the dosage of this medicine?",
	entities.QuestionUsage:        "What is this medicine used for?",
	entities.QuestionSideEffects:  "What are the side effects of this medicine?",
	entities.QuestionExpiryDate:   "What is the expiry date of this medicine?",
}

// ConversationService keeps chat threads in memory.
type ConversationService struct {
	mu            sync.RWMutex
	conversations map[string]*entities.Conversation
	assistant     *AssistantService
	catalog       *CatalogService
	now           func() time.Time
}

// NewConversationService creates a new conversation service.
func NewConversationService(assistant *AssistantService, catalog *CatalogService) *ConversationService {
	return &ConversationService{
		conversations: make(map[string]*entities.Conversation),
		assistant:     assistant,
		catalog:       catalog,
		now:           time.Now,
	}
}

// Create starts an empty conversation, optionally bound to a medicine.
func (s *ConversationService) Create(ctx context.Context, selectedMedicineID string) (*entities.Conversation, error) {
	if selectedMedicineID != "" {
		if _, err := s.catalog.GetMedicine(ctx, selectedMedicineID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	c := &entities.Conversation{
		ID:                 uuid.New().String(),
		Title:              defaultConversationTitle,
		Messages:           []entities.ChatMessage{},
		SelectedMedicineID: selectedMedicineID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	s.mu.Lock()
	s.conversations[c.ID] = c
	s.mu.Unlock()

	log.Debug().Str("conversation_id", c.ID).Msg("conversation created")
	return snapshot(c), nil
}

// Get returns a copy of the conversation.
func (s *ConversationService) Get(_ context.Context, id string) (*entities.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conversations[id]
	if !ok {
		return nil, conversationNotFound(id)
	}
	return snapshot(c), nil
}

// List returns every conversation, most recently updated first.
func (s *ConversationService) List(_ context.Context) []*entities.Conversation {
	s.mu.RLock()
	out := make([]*entities.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, snapshot(c))
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// Delete removes a conversation.
func (s *ConversationService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		return conversationNotFound(id)
	}
	delete(s.conversations, id)
	return nil
}

// SelectMedicine changes the medicine used as context for later messages. An
// empty id clears it.
func (s *ConversationService) SelectMedicine(ctx context.Context, id, medicineID string) (*entities.Conversation, error) {
	if medicineID != "" {
		if _, err := s.catalog.GetMedicine(ctx, medicineID); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[id]
	if !ok {
		return nil, conversationNotFound(id)
	}
	c.SelectedMedicineID = medicineID
	c.UpdatedAt = s.now()
	return snapshot(c), nil
}

// SendMessage appends the user message and the assistant reply. An empty id
// starts a new conversation. If no reply can be produced the conversation is
// left as it was.
func (s *ConversationService) SendMessage(ctx context.Context, id, content string) (*entities.Conversation, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content is required")
	}

	created := false
	if id == "" {
		c, err := s.Create(ctx, "")
		if err != nil {
			return nil, err
		}
		id, created = c.ID, true
	}

	selected, undo, err := s.appendUserMessage(id, content)
	if err != nil {
		return nil, err
	}

	reply, err := s.assistant.Reply(ctx, content, selected)
	if err != nil {
		undo()
		if created {
			_ = s.Delete(ctx, id)
		}
		return nil, err
	}
	return s.appendAssistantMessage(id, reply)
}

// AskPredefined answers one of the canned questions about the selected
// medicine locally, without calling the assistant.
func (s *ConversationService) AskPredefined(ctx context.Context, id string, question entities.QuestionType) (*entities.Conversation, error) {
	text, ok := QuestionText[question]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown question type: %s", question))
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.SelectedMedicineID == "" {
		return nil, apperrors.NewValidationError("select a medicine before asking a predefined question")
	}
	medicine, err := s.catalog.GetMedicine(ctx, existing.SelectedMedicineID)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.appendUserMessage(id, text); err != nil {
		return nil, err
	}
	return s.appendAssistantMessage(id, &AssistantReply{
		Content:           AnswerQuestion(question, medicine, s.now()),
		RelatedMedicineID: medicine.ID,
	})
}

// appendUserMessage returns the selected medicine and a func that takes the
// message back out if no reply can be produced.
func (s *ConversationService) appendUserMessage(id, content string) (string, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[id]
	if !ok {
		return "", nil, conversationNotFound(id)
	}

	prevTitle, prevUpdated := c.Title, c.UpdatedAt
	if len(c.Messages) == 0 {
		c.Title = titleFrom(content)
	}
	now := s.now()
	msg := entities.ChatMessage{
		ID:                uuid.New().String(),
		Role:              entities.MessageRoleUser,
		Content:           content,
		Timestamp:         now,
		RelatedMedicineID: c.SelectedMedicineID,
	}
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = now

	undo := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		c, ok := s.conversations[id]
		if !ok {
			return
		}
		for i := range c.Messages {
			if c.Messages[i].ID == msg.ID {
				c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
				break
			}
		}
		if len(c.Messages) == 0 {
			c.Title = prevTitle
		}
		c.UpdatedAt = prevUpdated
	}
	return c.SelectedMedicineID, undo, nil
}

func (s *ConversationService) appendAssistantMessage(id string, reply *AssistantReply) (*entities.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[id]
	if !ok {
		// Deleted while the reply was being generated.
		return nil, conversationNotFound(id)
	}

	now := s.now()
	c.Messages = append(c.Messages, entities.ChatMessage{
		ID:                uuid.New().String(),
		Role:              entities.MessageRoleAssistant,
		Content:           reply.Content,
		Timestamp:         now,
		RelatedMedicineID: reply.RelatedMedicineID,
	})
	if c.SelectedMedicineID == "" && reply.DetectedMedicineID != "" {
		c.SelectedMedicineID = reply.DetectedMedicineID
		log.Debug().Str("conversation_id", id).Str("medicine_id", reply.DetectedMedicineID).Msg("medicine detected in message")
	}
	c.UpdatedAt = now
	return snapshot(c), nil
}

func titleFrom(content string) string {
	runes := []rune(content)
	if len(runes) <= titleLength {
		return content
	}
	return string(runes[:titleLength]) + "..."
}

func snapshot(c *entities.Conversation) *entities.Conversation {
	cp := *c
	cp.Messages = append([]entities.ChatMessage(nil), c.Messages...)
	return &cp
}

func conversationNotFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("conversation not found: %s", id))
}

// AnswerQuestion renders the canned answer to question for m. now decides
// whether the expiry warning is shown.
func AnswerQuestion(question entities.QuestionType, m *entities.Medicine, now time.Time) string {
	switch question {
	case entities.QuestionAlternatives:
		if len(m.Alternatives) == 0 {
			return fmt.Sprintf("I don't have information about alternatives for %s. Please consult your healthcare provider for suitable alternatives.", m.Name)
		}
		return fmt.Sprintf("Here are alternatives for %s:\n%s\n\nPlease consult your healthcare provider before switching medications.",
			m.Name, bulletList(m.Alternatives))

	case entities.QuestionDosage:
		return fmt.Sprintf("**Dosage information for %s:**\n\n%s\n\nPlease note that this is general guidance. Follow your doctor's specific instructions, as dosage may vary based on your condition, age, weight, and other factors.",
			m.Name, m.Dosage)

	case entities.QuestionUsage:
		if len(m.UsedFor) == 0 {
			return fmt.Sprintf("I don't have detailed information about what %s is used for. Please consult the package insert or your healthcare provider.", m.Name)
		}
		return fmt.Sprintf("%s is commonly used for:\n%s\n\n%s\n\nAlways use as directed by your healthcare provider.",
			m.Name, bulletList(m.UsedFor), m.Description)

	case entities.QuestionSideEffects:
		if len(m.SideEffects) == 0 {
			return fmt.Sprintf("I don't have detailed information about side effects for %s. Please refer to the package insert or consult your healthcare provider.", m.Name)
		}
		return fmt.Sprintf("**Potential side effects of %s:**\n\n%s\n\nThis is not a complete list. Contact your doctor if you experience any unexpected symptoms.",
			m.Name, bulletList(m.SideEffects))

	case entities.QuestionExpiryDate:
		expiry, err := time.Parse(dateLayout, m.ExpiryDate)
		if err != nil {
			return fmt.Sprintf("The expiry information for %s is not available or invalid. Please check the physical packaging.", m.Name)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "The expiry date for %s is %s.\n\n", m.Name, expiry.Format("January 2, 2006"))
		if expiry.Before(now) {
			b.WriteString("⚠️ **This medicine has expired and should not be used.**\n\n")
		}
		b.WriteString("Using expired medication can be ineffective or potentially harmful. Always check expiration dates before taking any medicine.")
		return b.String()
	}
	return ""
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}
