package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/providers"
	"github.com/pharmavault/backend/internal/domain/repositories"
	tsclient "github.com/pharmavault/backend/internal/infrastructure/clients/typesense"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

// CollectionName is the Typesense collection holding medicine documents.
const CollectionName = "medicines"

const (
	defaultSearchLimit = 10
	queryBy            = "name,generic_name,ingredients,indications,tags,manufacturer"
)

// TypesenseAdapter implements medicine full-text search using Typesense.
// The index only holds searchable fields; hits are hydrated from the catalog.
type TypesenseAdapter struct {
	client  *tsclient.Client
	catalog repositories.MedicineRepository
}

// Ensure TypesenseAdapter implements MedicineSearchProvider
var _ providers.MedicineSearchProvider = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client, catalog repositories.MedicineRepository) *TypesenseAdapter {
	return &TypesenseAdapter{client: client, catalog: catalog}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	if _, err := a.client.Client().Collection(CollectionName).Retrieve(ctx); err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: CollectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "generic_name", Type: "string"},
			{Name: "manufacturer", Type: "string"},
			{Name: "category", Type: "string", Facet: pointer.True()},
			{Name: "therapeutic_class", Type: "string", Facet: pointer.True()},
			{Name: "ingredients", Type: "string[]", Optional: pointer.True()},
			{Name: "indications", Type: "string[]", Optional: pointer.True()},
			{Name: "tags", Type: "string[]", Optional: pointer.True()},
			{Name: "price", Type: "float"},
			{Name: "in_stock", Type: "bool", Facet: pointer.True()},
			{Name: "prescription_required", Type: "bool", Facet: pointer.True()},
		},
		DefaultSortingField: pointer.String("price"),
	}

	if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	log.Info().Str("collection", CollectionName).Msg("created Typesense collection")
	return nil
}

// MedicineDocument is the indexed form of a medicine.
func MedicineDocument(m *entities.Medicine) map[string]interface{} {
	terms := BuildMedicineTerms(m)
	return map[string]interface{}{
		"id":                    m.ID,
		"name":                  m.Name,
		"generic_name":          m.GenericName,
		"manufacturer":          m.Manufacturer,
		"category":              m.Category,
		"therapeutic_class":     m.TherapeuticClass,
		"ingredients":           terms.Ingredients,
		"indications":           terms.Indications,
		"tags":                  terms.Tags,
		"price":                 m.Price,
		"in_stock":              m.InStock,
		"prescription_required": m.PrescriptionRequired,
	}
}

// IndexMedicine upserts one medicine document
func (a *TypesenseAdapter) IndexMedicine(ctx context.Context, medicine *entities.Medicine) error {
	if medicine == nil || medicine.ID == "" {
		return apperrors.NewValidationError("medicine id is required")
	}
	if _, err := a.client.Client().Collection(CollectionName).Documents().Upsert(ctx, MedicineDocument(medicine)); err != nil {
		return apperrors.NewExternalError("failed to index medicine", err)
	}
	return nil
}

// Delete removes a medicine from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	if _, err := a.client.Client().Collection(CollectionName).Document(id).Delete(ctx); err != nil {
		return apperrors.NewExternalError("failed to delete medicine from index", err)
	}
	return nil
}

// SearchMedicines runs a typo-tolerant search and returns catalog records in
// relevance order. Hits the catalog no longer knows are dropped.
func (a *TypesenseAdapter) SearchMedicines(ctx context.Context, query string, limit int) ([]*entities.Medicine, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q := strings.TrimSpace(query)
	if q == "" {
		q = "*"
	}

	params := &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String(queryBy),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(CollectionName).Documents().Search(ctx, params)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to search medicines", err)
	}

	medicines := []*entities.Medicine{}
	if result.Hits == nil {
		return medicines, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		id, ok := (*hit.Document)["id"].(string)
		if !ok || id == "" {
			continue
		}
		medicine, err := a.catalog.GetByID(ctx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				log.Debug().Str("medicine_id", id).Msg("search hit missing from catalog")
				continue
			}
			return nil, err
		}
		medicines = append(medicines, medicine)
	}
	return medicines, nil
}
