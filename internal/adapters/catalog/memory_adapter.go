package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/repositories"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

// MemoryAdapter serves the catalog from process memory. It is the default
// backend and is safe for concurrent use.
type MemoryAdapter struct {
	mu        sync.RWMutex
	medicines []*entities.Medicine
}

// NewMemoryAdapter builds a catalog holding medicines in the given order.
func NewMemoryAdapter(medicines []*entities.Medicine) *MemoryAdapter {
	return &MemoryAdapter{medicines: medicines}
}

// NewSeededMemoryAdapter builds a catalog holding SeedMedicines.
func NewSeededMemoryAdapter() *MemoryAdapter {
	return NewMemoryAdapter(SeedMedicines())
}

var (
	_ repositories.MedicineRepository = (*MemoryAdapter)(nil)
	_ repositories.MedicineWriter     = (*MemoryAdapter)(nil)
)

// GetByID implements repositories.MedicineRepository
func (a *MemoryAdapter) GetByID(ctx context.Context, id string) (*entities.Medicine, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, m := range a.medicines {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, apperrors.NewNotFoundError("medicine not found: " + id)
}

// GetByName implements repositories.MedicineRepository
func (a *MemoryAdapter) GetByName(ctx context.Context, name string) (*entities.Medicine, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, m := range a.medicines {
		if m.MatchesName(name) {
			return m, nil
		}
	}
	return nil, apperrors.NewNotFoundError("medicine not found: " + name)
}

// Search implements repositories.MedicineRepository
func (a *MemoryAdapter) Search(ctx context.Context, query string) ([]*entities.Medicine, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	a.mu.RLock()
	defer a.mu.RUnlock()

	results := []*entities.Medicine{}
	for _, m := range a.medicines {
		if MatchesQuery(m, term) {
			results = append(results, m)
		}
	}
	return results, nil
}

// ListByCategory implements repositories.MedicineRepository
func (a *MemoryAdapter) ListByCategory(ctx context.Context, category string) ([]*entities.Medicine, error) {
	term := strings.ToLower(category)
	a.mu.RLock()
	defer a.mu.RUnlock()

	results := []*entities.Medicine{}
	for _, m := range a.medicines {
		if strings.Contains(strings.ToLower(m.Category), term) {
			results = append(results, m)
		}
	}
	return results, nil
}

// List implements repositories.MedicineRepository
func (a *MemoryAdapter) List(ctx context.Context) ([]*entities.Medicine, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*entities.Medicine, len(a.medicines))
	copy(out, a.medicines)
	return out, nil
}

// Upsert implements repositories.MedicineWriter
func (a *MemoryAdapter) Upsert(ctx context.Context, medicine *entities.Medicine) error {
	if medicine == nil || medicine.ID == "" {
		return apperrors.NewValidationError("medicine id is required")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, m := range a.medicines {
		if m.ID == medicine.ID {
			a.medicines[i] = medicine
			return nil
		}
	}
	a.medicines = append(a.medicines, medicine)
	return nil
}

// MatchesQuery reports whether term (lower-cased) is a substring of any
// searchable field of m.
func MatchesQuery(m *entities.Medicine, term string) bool {
	fields := []string{m.Name, m.GenericName, m.Category, m.Manufacturer, m.TherapeuticClass}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	for _, ing := range m.ActiveIngredients {
		if strings.Contains(strings.ToLower(ing.Name), term) {
			return true
		}
	}
	return false
}
