package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/providers"
	"github.com/pharmavault/backend/internal/infrastructure/clients/openai"
	"github.com/pharmavault/backend/internal/triage"
	"github.com/pharmavault/backend/internal/vitals"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

const (
	defaultReplyTTLSeconds = 600
	maxContextMedicines    = 5
)

// ReplySource names the path that produced an assistant reply.
type ReplySource string

const (
	ReplySourceVitals ReplySource = "vitals"
	ReplySourceTriage ReplySource = "triage"
	ReplySourceAI     ReplySource = "ai"
)

// AssistantReply is the answer to one user message.
type AssistantReply struct {
	Content           string      `json:"content"`
	Source            ReplySource `json:"source"`
	RelatedMedicineID string      `json:"related_medicine_id,omitempty"`

	// DetectedMedicineID is set when no medicine was selected and one was
	// named in the message.
	DetectedMedicineID string `json:"detected_medicine_id,omitempty"`
	Cached             bool   `json:"cached"`
}

// AssistantService routes a user message to vital-sign analysis, symptom
// triage, or the AI model with catalog context.
type AssistantService struct {
	catalog  *CatalogService
	ai       providers.AssistantProvider
	cache    providers.CacheProvider
	cacheTTL int
}

// NewAssistantService creates a new assistant service. ai and cache may be
// nil; without ai every reply comes from triage.
func NewAssistantService(catalog *CatalogService, ai providers.AssistantProvider, cache providers.CacheProvider, cacheTTLSeconds int) *AssistantService {
	if cacheTTLSeconds <= 0 {
		cacheTTLSeconds = defaultReplyTTLSeconds
	}
	return &AssistantService{
		catalog:  catalog,
		ai:       ai,
		cache:    cache,
		cacheTTL: cacheTTLSeconds,
	}
}

// Reply answers content. selectedMedicineID, when set, must name a catalog
// medicine and is used as the AI context.
func (s *AssistantService) Reply(ctx context.Context, content, selectedMedicineID string) (*AssistantReply, error) {
	if vitals.LooksLikeVitals(content) {
		return &AssistantReply{
			Content:           triage.GenerateMedicalResponse(content),
			Source:            ReplySourceVitals,
			RelatedMedicineID: selectedMedicineID,
		}, nil
	}

	var selected *entities.Medicine
	if selectedMedicineID != "" {
		m, err := s.catalog.GetMedicine(ctx, selectedMedicineID)
		if err != nil {
			return nil, err
		}
		selected = m
	}

	if s.ai == nil || !s.ai.Available() {
		return &AssistantReply{
			Content:           triage.GenerateMedicalResponse(content),
			Source:            ReplySourceTriage,
			RelatedMedicineID: selectedMedicineID,
		}, nil
	}

	key := replyCacheKey(selectedMedicineID, content)
	if cached, ok := s.cachedReply(ctx, key); ok {
		return cached, nil
	}

	contextMedicines, detected, err := s.contextFor(ctx, content, selected)
	if err != nil {
		return nil, err
	}

	reply := &AssistantReply{
		Content: s.ai.GenerateResponse(ctx, content, contextMedicines),
		Source:  ReplySourceAI,
	}
	if len(contextMedicines) == 1 {
		reply.RelatedMedicineID = contextMedicines[0].ID
	}
	if detected {
		reply.DetectedMedicineID = contextMedicines[0].ID
	}

	if !openai.IsFailureMessage(reply.Content) {
		s.storeReply(ctx, key, reply)
	}
	return reply, nil
}

// contextFor picks the medicines handed to the model: the selected one, else
// one named in the text, else catalog search hits. The bool reports a
// medicine named in the text.
func (s *AssistantService) contextFor(ctx context.Context, content string, selected *entities.Medicine) ([]*entities.Medicine, bool, error) {
	if selected != nil {
		return []*entities.Medicine{selected}, false, nil
	}

	detected, err := s.DetectMedicine(ctx, content)
	if err != nil {
		return nil, false, err
	}
	if detected != nil {
		return []*entities.Medicine{detected}, true, nil
	}

	results, err := s.catalog.SearchMedicines(ctx, content)
	if err != nil {
		return nil, false, err
	}
	if len(results) > maxContextMedicines {
		results = results[:maxContextMedicines]
	}
	return results, false, nil
}

// DetectMedicine returns the first catalog medicine whose brand or generic
// name appears as a word of content, or nil.
func (s *AssistantService) DetectMedicine(ctx context.Context, content string) (*entities.Medicine, error) {
	words := strings.FieldsFunc(content, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	for _, word := range words {
		m, err := s.catalog.FindByName(ctx, word)
		if err == nil {
			return m, nil
		}
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
	}
	return nil, nil
}

func replyCacheKey(medicineID, content string) string {
	sum := sha256.Sum256([]byte(medicineID + "\x00" + strings.ToLower(strings.TrimSpace(content))))
	return "assistant:reply:" + hex.EncodeToString(sum[:])
}

func (s *AssistantService) cachedReply(ctx context.Context, key string) (*AssistantReply, bool) {
	if s.cache == nil {
		return nil, false
	}
	var reply AssistantReply
	if !loadJSON(ctx, s.cache, key, &reply) {
		return nil, false
	}
	reply.Cached = true
	return &reply, true
}

func (s *AssistantService) storeReply(ctx context.Context, key string, reply *AssistantReply) {
	if s.cache == nil {
		return
	}
	storeJSON(ctx, s.cache, key, reply, s.cacheTTL)
}

func loadJSON(ctx context.Context, cache providers.CacheProvider, key string, dest any) bool {
	data, err := cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, providers.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding corrupt cache entry")
		return false
	}
	return true
}

func storeJSON(ctx context.Context, cache providers.CacheProvider, key string, value any, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to marshal cache entry")
		return
	}
	if err := cache.Set(ctx, key, data, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
