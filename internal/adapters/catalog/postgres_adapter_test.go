package catalog_test

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

func newPostgresAdapter(t *testing.T) (*catalog.PostgresAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return catalog.NewPostgresAdapter(postgres.NewFromDB(db)), mock
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func medicineRow(t *testing.T, m *entities.Medicine) []driver.Value {
	return []driver.Value{
		m.ID, m.Name, m.GenericName, m.Manufacturer, m.Category, m.Description, m.Dosage,
		mustJSON(t, m.SideEffects), mustJSON(t, m.UsedFor), mustJSON(t, m.Alternatives), m.ExpiryDate, m.Price, m.InStock,
		m.ImageURL, m.CDSCODrugCode, m.FDAApprovalNumber, string(m.RegulatoryStatus),
		m.BatchNumber, m.ManufacturingDate, mustJSON(t, m.ActiveIngredients), mustJSON(t, m.Contraindications),
		mustJSON(t, m.Interactions), m.PregnancyCategory, m.PrescriptionRequired, m.Strength,
		m.DosageForm, m.TherapeuticClass, mustJSON(t, m.PharmacyInventory),
	}
}

func seedMedicine(t *testing.T, id string) *entities.Medicine {
	t.Helper()
	m, err := catalog.NewSeededMemoryAdapter().GetByID(context.Background(), id)
	require.NoError(t, err)
	return m
}

func TestPostgresAdapter_GetByID(t *testing.T) {
	adapter, mock := newPostgresAdapter(t)
	want := seedMedicine(t, "med-002")

	mock.ExpectQuery(`SELECT "id", "name", .* FROM "medicines" WHERE \("id" = \$1\)`).
		WithArgs("med-002").
		WillReturnRows(sqlmock.NewRows(catalog.MedicineColumns).AddRow(medicineRow(t, want)...))

	got, err := adapter.GetByID(context.Background(), "med-002")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.UsedFor, got.UsedFor)
	assert.Equal(t, want.Interactions, got.Interactions)
	assert.Equal(t, want.ActiveIngredients, got.ActiveIngredients)
	assert.Equal(t, entities.RegulatoryStatusApproved, got.RegulatoryStatus)
	require.Len(t, got.PharmacyInventory, len(want.PharmacyInventory))
	assert.Equal(t, want.PharmacyInventory[0].Quantity, got.PharmacyInventory[0].Quantity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdapter_GetByIDNotFound(t *testing.T) {
	adapter, mock := newPostgresAdapter(t)

	mock.ExpectQuery(`FROM "medicines"`).
		WithArgs("med-404").
		WillReturnRows(sqlmock.NewRows(catalog.MedicineColumns))

	_, err := adapter.GetByID(context.Background(), "med-404")
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdapter_GetByIDQueryError(t *testing.T) {
	adapter, mock := newPostgresAdapter(t)

	mock.ExpectQuery(`FROM "medicines"`).
		WithArgs("med-001").
		WillReturnError(errors.New("connection refused"))

	_, err := adapter.GetByID(context.Background(), "med-001")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdapter_Search(t *testing.T) {
	adapter, mock := newPostgresAdapter(t)
	a := seedMedicine(t, "med-001")
	b := seedMedicine(t, "med-005")

	mock.ExpectQuery(`FROM "medicines" WHERE .*"name" ILIKE \$1.*jsonb_array_elements.* ORDER BY "id" ASC`).
		WithArgs("%ta%", "%ta%", "%ta%", "%ta%", "%ta%", "%ta%").
		WillReturnRows(sqlmock.NewRows(catalog.MedicineColumns).
			AddRow(medicineRow(t, a)...).
			AddRow(medicineRow(t, b)...))

	got, err := adapter.Search(context.Background(), " ta ")
	require.NoError(t, err)
	assert.Equal(t, []string{"med-001", "med-005"}, ids(got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdapter_ListByCategoryEmpty(t *testing.T) {
	adapter, mock := newPostgresAdapter(t)

	mock.ExpectQuery(`FROM "medicines" WHERE \("category" ILIKE \$1\)`).
		WithArgs("%vitamin%").
		WillReturnRows(sqlmock.NewRows(catalog.MedicineColumns))

	got, err := adapter.ListByCategory(context.Background(), "vitamin")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAdapter_Upsert(t *testing.T) {
	adapter, mock := newPostgresAdapter(t)

	mock.ExpectExec(`INSERT INTO "medicines" .* ON CONFLICT \(id\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.Upsert(context.Background(), seedMedicine(t, "med-004"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	err = adapter.Upsert(context.Background(), &entities.Medicine{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
