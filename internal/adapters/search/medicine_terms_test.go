package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pharmavault/backend/internal/domain/entities"
)

func TestBuildMedicineTerms(t *testing.T) {
	m := &entities.Medicine{
		GenericName:      " Amoxicillin Trihydrate ",
		Category:         "Antibiotic",
		TherapeuticClass: "Beta-lactam antibiotic",
		DosageForm:       "Capsule",
		UsedFor:          []string{"Pneumonia", "Sinusitis", "pneumonia"},
		ActiveIngredients: []entities.ActiveIngredient{
			{Name: "Amoxicillin Trihydrate", Strength: 500, Unit: "mg"},
		},
	}

	terms := BuildMedicineTerms(m)

	assert.Equal(t, []string{"amoxicillin trihydrate"}, terms.Ingredients)
	assert.Equal(t, []string{"pneumonia", "sinusitis"}, terms.Indications)
	assert.ElementsMatch(t, []string{
		"amoxicillin trihydrate",
		"pneumonia",
		"sinusitis",
		"antibiotic",
		"beta-lactam antibiotic",
		"capsule",
	}, terms.Tags)
}

func TestBuildMedicineTermsNil(t *testing.T) {
	assert.Equal(t, MedicineTerms{}, BuildMedicineTerms(nil))
}

func TestToSliceCaps(t *testing.T) {
	set := map[string]struct{}{"c": {}, "a": {}, "b": {}}
	assert.Equal(t, []string{"a", "b"}, toSlice(set, 2))
}
