package entities

import "time"

// MessageRole identifies who authored a chat message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// ChatMessage is one entry of a conversation.
type ChatMessage struct {
	ID                string      `json:"id"`
	Role              MessageRole `json:"role"`
	Content           string      `json:"content"`
	Timestamp         time.Time   `json:"timestamp"`
	RelatedMedicineID string      `json:"related_medicine_id,omitempty"`
}

// Conversation is an in-memory chat thread with the assistant.
type Conversation struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Messages           []ChatMessage `json:"messages"`
	SelectedMedicineID string        `json:"selected_medicine_id,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// QuestionType identifies a predefined medicine question.
type QuestionType string

const (
	QuestionAlternatives QuestionType = "alternatives"
	QuestionDosage       QuestionType = "dosage"
	QuestionUsage        QuestionType = "usage"
	QuestionSideEffects  QuestionType = "sideEffects"
	QuestionExpiryDate   QuestionType = "expiryDate"
)
