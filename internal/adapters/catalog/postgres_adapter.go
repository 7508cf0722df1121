package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/repositories"
	"github.com/pharmavault/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

const medicinesTable = "medicines"

// Schema creates the medicines table. List-valued fields are JSONB.
const Schema = `
CREATE TABLE IF NOT EXISTS medicines (
	id                    TEXT PRIMARY KEY,
	name                  TEXT NOT NULL,
	generic_name          TEXT NOT NULL DEFAULT '',
	manufacturer          TEXT NOT NULL DEFAULT '',
	category              TEXT NOT NULL DEFAULT '',
	description           TEXT NOT NULL DEFAULT '',
	dosage                TEXT NOT NULL DEFAULT '',
	side_effects          JSONB NOT NULL DEFAULT '[]',
	used_for              JSONB NOT NULL DEFAULT '[]',
	alternatives          JSONB NOT NULL DEFAULT '[]',
	expiry_date           TEXT NOT NULL DEFAULT '',
	price                 NUMERIC(12,2) NOT NULL DEFAULT 0,
	in_stock              BOOLEAN NOT NULL DEFAULT FALSE,
	image_url             TEXT NOT NULL DEFAULT '',
	cdsco_drug_code       TEXT NOT NULL DEFAULT '',
	fda_approval_number   TEXT NOT NULL DEFAULT '',
	regulatory_status     TEXT NOT NULL DEFAULT 'approved',
	batch_number          TEXT NOT NULL DEFAULT '',
	manufacturing_date    TEXT NOT NULL DEFAULT '',
	active_ingredients    JSONB NOT NULL DEFAULT '[]',
	contraindications     JSONB NOT NULL DEFAULT '[]',
	interactions          JSONB NOT NULL DEFAULT '[]',
	pregnancy_category    TEXT NOT NULL DEFAULT '',
	prescription_required BOOLEAN NOT NULL DEFAULT FALSE,
	strength              TEXT NOT NULL DEFAULT '',
	dosage_form           TEXT NOT NULL DEFAULT '',
	therapeutic_class     TEXT NOT NULL DEFAULT '',
	pharmacy_inventory    JSONB NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_medicines_category ON medicines (lower(category));
`

// MedicineColumns is the select list, in scan order.
var MedicineColumns = []string{
	"id", "name", "generic_name", "manufacturer", "category", "description", "dosage",
	"side_effects", "used_for", "alternatives", "expiry_date", "price", "in_stock",
	"image_url", "cdsco_drug_code", "fda_approval_number", "regulatory_status",
	"batch_number", "manufacturing_date", "active_ingredients", "contraindications",
	"interactions", "pregnancy_category", "prescription_required", "strength",
	"dosage_form", "therapeutic_class", "pharmacy_inventory",
}

// PostgresAdapter reads the catalog from the medicines table.
type PostgresAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPostgresAdapter creates a new Postgres catalog adapter.
func NewPostgresAdapter(client *postgres.Client) *PostgresAdapter {
	return &PostgresAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var (
	_ repositories.MedicineRepository = (*PostgresAdapter)(nil)
	_ repositories.MedicineWriter     = (*PostgresAdapter)(nil)
)

// EnsureSchema creates the medicines table when missing.
func (a *PostgresAdapter) EnsureSchema(ctx context.Context) error {
	if _, err := a.client.DB().ExecContext(ctx, Schema); err != nil {
		return apperrors.NewInternalError("failed to create medicines schema", err)
	}
	return nil
}

func (a *PostgresAdapter) selectMedicines() *goqu.SelectDataset {
	cols := make([]any, len(MedicineColumns))
	for i, c := range MedicineColumns {
		cols[i] = goqu.C(c)
	}
	return a.db.From(medicinesTable).Prepared(true).Select(cols...)
}

// GetByID retrieves a medicine by ID
func (a *PostgresAdapter) GetByID(ctx context.Context, id string) (*entities.Medicine, error) {
	query, args, err := a.selectMedicines().Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build medicine query", err)
	}

	medicine, err := scanMedicine(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get medicine", err)
	}
	return medicine, nil
}

// GetByName retrieves a medicine by brand or generic name, ignoring case
func (a *PostgresAdapter) GetByName(ctx context.Context, name string) (*entities.Medicine, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	query, args, err := a.selectMedicines().
		Where(goqu.Or(
			goqu.Func("lower", goqu.C("name")).Eq(lowered),
			goqu.Func("lower", goqu.C("generic_name")).Eq(lowered),
		)).
		Order(goqu.C("id").Asc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build medicine query", err)
	}

	medicine, err := scanMedicine(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("medicine named %s not found", name))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get medicine", err)
	}
	return medicine, nil
}

// Search matches query against the text columns and ingredient names
func (a *PostgresAdapter) Search(ctx context.Context, query string) ([]*entities.Medicine, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	conditions := []exp.Expression{
		goqu.C("name").ILike(pattern),
		goqu.C("generic_name").ILike(pattern),
		goqu.C("category").ILike(pattern),
		goqu.C("manufacturer").ILike(pattern),
		goqu.C("therapeutic_class").ILike(pattern),
		goqu.L("EXISTS (SELECT 1 FROM jsonb_array_elements(active_ingredients) ai WHERE ai->>'name' ILIKE ?)", pattern),
	}
	return a.query(ctx, a.selectMedicines().Where(goqu.Or(conditions...)).Order(goqu.C("id").Asc()))
}

// ListByCategory lists medicines whose category contains category
func (a *PostgresAdapter) ListByCategory(ctx context.Context, category string) ([]*entities.Medicine, error) {
	return a.query(ctx, a.selectMedicines().
		Where(goqu.C("category").ILike("%"+category+"%")).
		Order(goqu.C("id").Asc()))
}

// List returns the whole catalog ordered by id
func (a *PostgresAdapter) List(ctx context.Context) ([]*entities.Medicine, error) {
	return a.query(ctx, a.selectMedicines().Order(goqu.C("id").Asc()))
}

func (a *PostgresAdapter) query(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Medicine, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build medicines query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query medicines", err)
	}
	defer rows.Close()

	medicines := []*entities.Medicine{}
	for rows.Next() {
		medicine, err := scanMedicine(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan medicine", err)
		}
		medicines = append(medicines, medicine)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate medicines", err)
	}
	return medicines, nil
}

// Upsert inserts or replaces a medicine
func (a *PostgresAdapter) Upsert(ctx context.Context, medicine *entities.Medicine) error {
	if medicine == nil || medicine.ID == "" {
		return apperrors.NewValidationError("medicine id is required")
	}

	record, err := medicineRecord(medicine)
	if err != nil {
		return apperrors.NewInternalError("failed to encode medicine", err)
	}

	update := goqu.Record{}
	for k, v := range record {
		if k != "id" {
			update[k] = v
		}
	}

	query, args, err := a.db.Insert(medicinesTable).
		Prepared(true).
		Rows(record).
		OnConflict(goqu.DoUpdate("id", update)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build medicine upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert medicine", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedicine(row rowScanner) (*entities.Medicine, error) {
	m := &entities.Medicine{}
	var (
		sideEffects, usedFor, alternatives        []byte
		ingredients, contraindications, interacts []byte
		inventory                                 []byte
		status                                    string
	)

	err := row.Scan(
		&m.ID, &m.Name, &m.GenericName, &m.Manufacturer, &m.Category, &m.Description, &m.Dosage,
		&sideEffects, &usedFor, &alternatives, &m.ExpiryDate, &m.Price, &m.InStock,
		&m.ImageURL, &m.CDSCODrugCode, &m.FDAApprovalNumber, &status,
		&m.BatchNumber, &m.ManufacturingDate, &ingredients, &contraindications,
		&interacts, &m.PregnancyCategory, &m.PrescriptionRequired, &m.Strength,
		&m.DosageForm, &m.TherapeuticClass, &inventory,
	)
	if err != nil {
		return nil, err
	}
	m.RegulatoryStatus = entities.RegulatoryStatus(status)

	columns := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"side_effects", sideEffects, &m.SideEffects},
		{"used_for", usedFor, &m.UsedFor},
		{"alternatives", alternatives, &m.Alternatives},
		{"active_ingredients", ingredients, &m.ActiveIngredients},
		{"contraindications", contraindications, &m.Contraindications},
		{"interactions", interacts, &m.Interactions},
		{"pharmacy_inventory", inventory, &m.PharmacyInventory},
	}
	for _, c := range columns {
		if len(c.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(c.raw, c.dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
	}
	return m, nil
}

func medicineRecord(m *entities.Medicine) (goqu.Record, error) {
	record := goqu.Record{
		"id":                    m.ID,
		"name":                  m.Name,
		"generic_name":          m.GenericName,
		"manufacturer":          m.Manufacturer,
		"category":              m.Category,
		"description":           m.Description,
		"dosage":                m.Dosage,
		"expiry_date":           m.ExpiryDate,
		"price":                 m.Price,
		"in_stock":              m.InStock,
		"image_url":             m.ImageURL,
		"cdsco_drug_code":       m.CDSCODrugCode,
		"fda_approval_number":   m.FDAApprovalNumber,
		"regulatory_status":     string(m.RegulatoryStatus),
		"batch_number":          m.BatchNumber,
		"manufacturing_date":    m.ManufacturingDate,
		"pregnancy_category":    m.PregnancyCategory,
		"prescription_required": m.PrescriptionRequired,
		"strength":              m.Strength,
		"dosage_form":           m.DosageForm,
		"therapeutic_class":     m.TherapeuticClass,
	}

	jsonColumns := map[string]any{
		"side_effects":       nonNil(m.SideEffects),
		"used_for":           nonNil(m.UsedFor),
		"alternatives":       nonNil(m.Alternatives),
		"active_ingredients": nonNil(m.ActiveIngredients),
		"contraindications":  nonNil(m.Contraindications),
		"interactions":       nonNil(m.Interactions),
		"pharmacy_inventory": nonNil(m.PharmacyInventory),
	}
	for col, v := range jsonColumns {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", col, err)
		}
		record[col] = string(data)
	}
	return record, nil
}

// nonNil keeps nil slices from being stored as JSON null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
