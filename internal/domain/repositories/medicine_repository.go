package repositories

import (
	"context"

	"github.com/pharmavault/backend/internal/domain/entities"
)

// MedicineRepository is the read-only medicine catalog.
type MedicineRepository interface {
	// GetByID returns a NOT_FOUND AppError when the id is unknown.
	GetByID(ctx context.Context, id string) (*entities.Medicine, error)

	// GetByName matches brand or generic name, ignoring case.
	GetByName(ctx context.Context, name string) (*entities.Medicine, error)

	// Search matches query as a case-insensitive substring of name, generic
	// name, category, manufacturer, therapeutic class or ingredient.
	Search(ctx context.Context, query string) ([]*entities.Medicine, error)

	ListByCategory(ctx context.Context, category string) ([]*entities.Medicine, error)

	List(ctx context.Context) ([]*entities.Medicine, error)
}

// MedicineWriter is implemented by catalogs that can be seeded.
type MedicineWriter interface {
	Upsert(ctx context.Context, medicine *entities.Medicine) error
}
