package services_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/application/services"
)

func TestTermExpansionService_Expand(t *testing.T) {
	terms := services.NewTermExpansionService()

	assert.Equal(t, []string{"tylenol", "paracetamol"}, terms.Expand("  Tylenol "))
	assert.Equal(t, []string{"lipitor", "atorvastatin", "crocin", "paracetamol"}, terms.Expand("lipitor crocin"))
	assert.Equal(t, []string{"ibuprofen"}, terms.Expand("ibuprofen"))
	assert.Empty(t, terms.Expand("   "))
	assert.Equal(t, []string{"paracetamol"}, terms.Synonyms("acetaminophen"))
}

func TestTermExpansionService_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Augmentin": ["Amoxicillin"]}`), 0o600))

	terms := services.NewTermExpansionService()
	require.NoError(t, terms.LoadFile(path))
	assert.Equal(t, []string{"augmentin", "amoxicillin"}, terms.Expand("augmentin"))

	assert.Error(t, terms.LoadFile(filepath.Join(t.TempDir(), "missing.json")))
}

func TestCatalogService_SearchFallsBackToSynonyms(t *testing.T) {
	plain := services.NewCatalogService(catalog.NewSeededMemoryAdapter(), nil)
	results, err := plain.SearchMedicines(context.Background(), "tylenol")
	require.NoError(t, err)
	assert.Empty(t, results)

	expanded := services.NewCatalogService(catalog.NewSeededMemoryAdapter(), nil).
		WithTermExpansion(services.NewTermExpansionService())
	results, err = expanded.SearchMedicines(context.Background(), "tylenol")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "med-001", results[0].ID)
}
