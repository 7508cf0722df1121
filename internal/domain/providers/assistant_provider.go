package providers

import (
	"context"

	"github.com/pharmavault/backend/internal/domain/entities"
)

// AssistantProvider answers free-text health questions. Implementations never
// fail: any internal error is returned as a user-facing apology string.
type AssistantProvider interface {
	GenerateResponse(ctx context.Context, query string, contextMedicines []*entities.Medicine) string

	// Available reports whether the provider is configured to reach its
	// backing model.
	Available() bool
}

// MedicineSearchProvider is an optional full-text index over the catalog.
type MedicineSearchProvider interface {
	SearchMedicines(ctx context.Context, query string, limit int) ([]*entities.Medicine, error)
	IndexMedicine(ctx context.Context, medicine *entities.Medicine) error
}
