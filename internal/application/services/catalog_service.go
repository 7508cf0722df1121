package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/providers"
	"github.com/pharmavault/backend/internal/domain/repositories"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

const searchIndexLimit = 20

// CatalogService is the read side of the medicine catalog.
type CatalogService struct {
	repo   repositories.MedicineRepository
	search providers.MedicineSearchProvider
	terms  *TermExpansionService
}

// NewCatalogService creates a new catalog service. search may be nil, in
// which case every search runs against the repository.
func NewCatalogService(repo repositories.MedicineRepository, search providers.MedicineSearchProvider) *CatalogService {
	return &CatalogService{repo: repo, search: search}
}

// WithTermExpansion retries empty catalog searches with the synonyms of the
// query, so brand names find their generic records.
func (s *CatalogService) WithTermExpansion(terms *TermExpansionService) *CatalogService {
	s.terms = terms
	return s
}

// GetMedicine returns one medicine or a NOT_FOUND error.
func (s *CatalogService) GetMedicine(ctx context.Context, id string) (*entities.Medicine, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("medicine id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// FindByName matches brand or generic name exactly, ignoring case.
func (s *CatalogService) FindByName(ctx context.Context, name string) (*entities.Medicine, error) {
	return s.repo.GetByName(ctx, name)
}

// ListMedicines returns the whole catalog.
func (s *CatalogService) ListMedicines(ctx context.Context) ([]*entities.Medicine, error) {
	return s.repo.List(ctx)
}

// ListByCategory returns medicines whose category contains category.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]*entities.Medicine, error) {
	return s.repo.ListByCategory(ctx, category)
}

// SearchMedicines prefers the full-text index and falls back to the
// repository when the index is absent, failing, or has no hits. An empty
// query lists everything.
func (s *CatalogService) SearchMedicines(ctx context.Context, query string) ([]*entities.Medicine, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx)
	}

	if s.search != nil {
		results, err := s.search.SearchMedicines(ctx, query, searchIndexLimit)
		if err == nil && len(results) > 0 {
			return results, nil
		}
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("search index unavailable, falling back to catalog")
		}
	}

	results, err := s.repo.Search(ctx, query)
	if err != nil || len(results) > 0 || s.terms == nil {
		return results, err
	}
	return s.searchSynonyms(ctx, query)
}

func (s *CatalogService) searchSynonyms(ctx context.Context, query string) ([]*entities.Medicine, error) {
	var merged []*entities.Medicine
	seen := make(map[string]bool)
	for _, term := range s.terms.Synonyms(query) {
		results, err := s.repo.Search(ctx, term)
		if err != nil {
			return nil, err
		}
		for _, m := range results {
			if m != nil && !seen[m.ID] {
				seen[m.ID] = true
				merged = append(merged, m)
			}
		}
	}
	if len(merged) > 0 {
		log.Debug().Str("query", query).Int("results", len(merged)).Msg("search matched through synonyms")
	}
	return merged, nil
}

// CheckDrugInteractions resolves ids (skipping unknown ones) and reports the
// interactions among them.
func (s *CatalogService) CheckDrugInteractions(ctx context.Context, ids []string) (*entities.InteractionCheck, error) {
	medicines, err := s.resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	check := CheckInteractions(medicines)
	return &check, nil
}

func (s *CatalogService) resolve(ctx context.Context, ids []string) ([]*entities.Medicine, error) {
	medicines := make([]*entities.Medicine, 0, len(ids))
	for _, id := range ids {
		m, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		medicines = append(medicines, m)
	}
	return medicines, nil
}

// FindInteractions matches each medicine's interaction list against the
// brand and generic names of the others.
func FindInteractions(medicines []*entities.Medicine) []entities.DetectedInteraction {
	found := []entities.DetectedInteraction{}
	for _, m := range medicines {
		for _, interaction := range m.Interactions {
			for _, other := range medicines {
				if other == m || !other.MatchesName(interaction.DrugName) {
					continue
				}
				found = append(found, entities.DetectedInteraction{
					Medicine1:      m.Name,
					Medicine2:      other.Name,
					Severity:       interaction.Severity,
					Description:    interaction.Description,
					Recommendation: interaction.Recommendation,
				})
				break
			}
		}
	}
	return found
}

// CheckInteractions summarises FindInteractions: the overall severity is the
// worst one found and recommendations are de-duplicated in order.
func CheckInteractions(medicines []*entities.Medicine) entities.InteractionCheck {
	interactions := FindInteractions(medicines)
	check := entities.InteractionCheck{
		HasInteractions: len(interactions) > 0,
		Severity:        entities.InteractionSeverityNone,
		Interactions:    interactions,
		Recommendations: []string{},
	}

	seenRec := map[string]bool{}
	seenAlt := map[string]bool{}
	for _, i := range interactions {
		if i.Severity.Rank() > check.Severity.Rank() {
			check.Severity = i.Severity
		}
		if i.Recommendation != "" && !seenRec[i.Recommendation] {
			seenRec[i.Recommendation] = true
			check.Recommendations = append(check.Recommendations, i.Recommendation)
		}
		if i.Severity == entities.InteractionSeveritySevere {
			alt := fmt.Sprintf("Consider alternative to %s + %s", i.Medicine1, i.Medicine2)
			if !seenAlt[alt] {
				seenAlt[alt] = true
				check.Alternatives = append(check.Alternatives, alt)
			}
		}
	}
	return check
}
