package search

import (
	"sort"
	"strings"

	"github.com/pharmavault/backend/internal/domain/entities"
)

// MaxIndexedTerms caps each term bag sent to the index.
const MaxIndexedTerms = 50

// MedicineTerms are the lower-cased, de-duplicated term bags indexed for a
// medicine.
type MedicineTerms struct {
	Ingredients []string
	Indications []string
	Tags        []string
}

// BuildMedicineTerms collects searchable terms from m. Tags is the general
// bag and also carries category, class and form.
func BuildMedicineTerms(m *entities.Medicine) MedicineTerms {
	if m == nil {
		return MedicineTerms{}
	}

	ingredientSet := make(map[string]struct{})
	indicationSet := make(map[string]struct{})
	tagSet := make(map[string]struct{})

	for _, ing := range m.ActiveIngredients {
		add(ingredientSet, ing.Name)
		add(tagSet, ing.Name)
	}
	add(indicationSet, m.UsedFor...)
	add(tagSet, m.UsedFor...)
	add(tagSet, m.Category, m.TherapeuticClass, m.DosageForm, m.GenericName)

	return MedicineTerms{
		Ingredients: toSlice(ingredientSet, MaxIndexedTerms),
		Indications: toSlice(indicationSet, MaxIndexedTerms),
		Tags:        toSlice(tagSet, MaxIndexedTerms*2),
	}
}

func add(set map[string]struct{}, terms ...string) {
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
}

func toSlice(set map[string]struct{}, limit int) []string {
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
