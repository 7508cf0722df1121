package services

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/repositories"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

const (
	defaultMaxAlternatives    = 5
	alternativesPerComparison = 3
)

// importantTherapeuticClasses earn an effectiveness bonus when they appear as
// a substring of a medicine's therapeutic class.
var importantTherapeuticClasses = []string{
	"antibiotic",
	"ace inhibitor",
	"statin",
	"antidiabetic",
	"analgesic",
}

// ComparisonService scores a small set of medicines against each other.
// Scores are normalized within one run and mean nothing across runs.
type ComparisonService struct {
	repo repositories.MedicineRepository
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(repo repositories.MedicineRepository) *ComparisonService {
	return &ComparisonService{repo: repo}
}

// CompareMedicines resolves ids through the catalog, skipping unknown ones,
// and scores the survivors. Fewer than two survivors is an
// INSUFFICIENT_INPUT error and nothing is scored.
func (s *ComparisonService) CompareMedicines(ctx context.Context, ids []string, criteria entities.ComparisonCriteria) (*entities.ComparisonResult, error) {
	medicines := make([]*entities.Medicine, 0, len(ids))
	for _, id := range ids {
		medicine, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if apperrors.IsNotFound(err) {
				log.Debug().Str("medicine_id", id).Msg("skipping unknown medicine in comparison")
				continue
			}
			return nil, apperrors.NewInternalError("failed to load medicine for comparison", err)
		}
		medicines = append(medicines, medicine)
	}

	if len(medicines) < 2 {
		return nil, apperrors.NewInsufficientInputError("at least 2 medicines are required for comparison")
	}

	metrics := ScoreMedicines(medicines, criteria)

	if criteria.Alternatives {
		for _, metric := range metrics {
			alts, err := s.FindAlternatives(ctx, metric.MedicineID, alternativesPerComparison)
			if err != nil {
				log.Warn().Err(err).Str("medicine_id", metric.MedicineID).Msg("failed to load alternatives")
				continue
			}
			metric.Alternatives = alts
		}
	}

	return &entities.ComparisonResult{
		Medicines: medicines,
		Criteria:  criteria,
		Metrics:   metrics,
	}, nil
}

// ScoreMedicines computes one metric per medicine, in input order. It is pure
// and expects at least two medicines.
func ScoreMedicines(medicines []*entities.Medicine, criteria entities.ComparisonCriteria) []*entities.ComparisonMetric {
	minPrice, maxPrice := spread(medicines, func(m *entities.Medicine) float64 { return m.Price })
	minEffects, maxEffects := spread(medicines, func(m *entities.Medicine) float64 { return float64(len(m.SideEffects)) })

	metrics := make([]*entities.ComparisonMetric, 0, len(medicines))
	for _, m := range medicines {
		metric := &entities.ComparisonMetric{
			MedicineID: m.ID,
			Pros:       []string{},
			Cons:       []string{},
		}
		scores := &metric.Scores
		enabled := 0
		sum := 0.0

		if criteria.Price {
			scores.Price = inverseNormalize(m.Price, minPrice, maxPrice)
			if minPrice != maxPrice {
				switch m.Price {
				case minPrice:
					metric.Pros = append(metric.Pros, "Most affordable option")
				case maxPrice:
					metric.Cons = append(metric.Cons, "Most expensive option")
				}
			}
			enabled++
			sum += scores.Price
		}

		if criteria.Effectiveness {
			scores.Effectiveness = EffectivenessScore(m)
			if scores.Effectiveness >= 80 {
				metric.Pros = append(metric.Pros, "Highly effective for multiple conditions")
			} else if scores.Effectiveness < 60 {
				metric.Cons = append(metric.Cons, "Limited effectiveness scope")
			}
			enabled++
			sum += scores.Effectiveness
		}

		if criteria.SideEffects {
			count := float64(len(m.SideEffects))
			scores.SideEffects = inverseNormalize(count, minEffects, maxEffects)
			if minEffects != maxEffects {
				switch count {
				case minEffects:
					metric.Pros = append(metric.Pros, "Fewer reported side effects")
				case maxEffects:
					metric.Cons = append(metric.Cons, "More potential side effects")
				}
			}
			enabled++
			sum += scores.SideEffects
		}

		if criteria.Availability {
			scores.Availability = AvailabilityScore(m)
			if m.InStock && len(m.PharmacyInventory) > 1 {
				metric.Pros = append(metric.Pros, "Widely available")
			} else if !m.InStock {
				metric.Cons = append(metric.Cons, "Currently out of stock")
			}
			enabled++
			sum += scores.Availability
		}

		if enabled > 0 {
			scores.Overall = sum / float64(enabled)
		}
		metric.Recommendation = recommendationFor(scores.Overall)

		if m.PrescriptionRequired {
			metric.Cons = append(metric.Cons, "Requires prescription")
		} else {
			metric.Pros = append(metric.Pros, "Available over-the-counter")
		}
		switch strings.ToUpper(m.PregnancyCategory) {
		case "A", "B":
			metric.Pros = append(metric.Pros, "Generally safe during pregnancy")
		case "X":
			metric.Cons = append(metric.Cons, "Not safe during pregnancy")
		}

		metrics = append(metrics, metric)
	}
	return metrics
}

// EffectivenessScore rewards breadth of indications, an important
// therapeutic class and combination formulations. Capped at 100.
func EffectivenessScore(m *entities.Medicine) float64 {
	score := min(len(m.UsedFor)*10, 60)

	class := strings.ToLower(m.TherapeuticClass)
	for _, important := range importantTherapeuticClasses {
		if strings.Contains(class, important) {
			score += 20
			break
		}
	}
	if len(m.ActiveIngredients) > 1 {
		score += 10
	}
	return float64(min(score, 100))
}

// AvailabilityScore combines total stock and pharmacy spread. Capped at 100.
func AvailabilityScore(m *entities.Medicine) float64 {
	return math.Min(100, float64(m.TotalInventory())/10+float64(len(m.PharmacyInventory))*20)
}

func recommendationFor(overall float64) entities.RecommendationTier {
	switch {
	case overall >= 80:
		return entities.RecommendationHighlyRecommended
	case overall >= 60:
		return entities.RecommendationGoodWithTradeOffs
	default:
		return entities.RecommendationConsiderAlternative
	}
}

// inverseNormalize maps the lowest value in the set to 100 and the highest to
// 0. A flat set scores 100 everywhere.
func inverseNormalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 100
	}
	return (hi - v) / (hi - lo) * 100
}

func spread(medicines []*entities.Medicine, value func(*entities.Medicine) float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, m := range medicines {
		v := value(m)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// FindAlternatives returns other catalog medicines sharing the therapeutic
// class, the category or any indication with id. Same-class matches come
// first, then cheaper before dearer. maxResults <= 0 means the default of 5.
func (s *ComparisonService) FindAlternatives(ctx context.Context, id string, maxResults int) ([]*entities.Medicine, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxAlternatives
	}

	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list medicines", err)
	}

	alternatives := []*entities.Medicine{}
	for _, m := range all {
		if m.ID == target.ID {
			continue
		}
		if m.TherapeuticClass == target.TherapeuticClass ||
			m.Category == target.Category ||
			sharesIndication(m, target) {
			alternatives = append(alternatives, m)
		}
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		iClass := alternatives[i].TherapeuticClass == target.TherapeuticClass
		jClass := alternatives[j].TherapeuticClass == target.TherapeuticClass
		if iClass != jClass {
			return iClass
		}
		return alternatives[i].Price < alternatives[j].Price
	})

	if len(alternatives) > maxResults {
		alternatives = alternatives[:maxResults]
	}
	return alternatives, nil
}

func sharesIndication(a, b *entities.Medicine) bool {
	for _, use := range a.UsedFor {
		if slices.Contains(b.UsedFor, use) {
			return true
		}
	}
	return false
}

// GenerateComparisonReport renders result as markdown. The summary table is
// ordered by overall score, highest first; result is left untouched.
func GenerateComparisonReport(result *entities.ComparisonResult) string {
	byID := make(map[string]*entities.Medicine, len(result.Medicines))
	for _, m := range result.Medicines {
		byID[m.ID] = m
	}

	ranked := slices.Clone(result.Metrics)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Scores.Overall > ranked[j].Scores.Overall
	})

	var b strings.Builder
	b.WriteString("**Medicine Comparison Report**\n\n")
	b.WriteString("**Comparison Summary:**\n")
	b.WriteString("| Medicine | Overall Score | Price | Availability |\n")
	b.WriteString("|----------|---------------|-------|-------------|\n")
	for _, metric := range ranked {
		m, ok := byID[metric.MedicineID]
		if !ok {
			continue
		}
		stock := "❌"
		if m.InStock {
			stock = "✅"
		}
		fmt.Fprintf(&b, "| %s | %.0f%% | ₹%s | %s |\n", m.Name, math.Round(metric.Scores.Overall), formatPrice(m.Price), stock)
	}

	b.WriteString("\n**Detailed Analysis:**\n\n")
	for _, metric := range ranked {
		m, ok := byID[metric.MedicineID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "**%s** (%s)\n", m.Name, m.GenericName)
		fmt.Fprintf(&b, "Overall Score: %.0f%%\n\n", math.Round(metric.Scores.Overall))
		writeBullets(&b, "Advantages", metric.Pros)
		writeBullets(&b, "Disadvantages", metric.Cons)
		if len(metric.Alternatives) > 0 {
			names := make([]string, 0, len(metric.Alternatives))
			for _, alt := range metric.Alternatives {
				names = append(names, alt.Name)
			}
			fmt.Fprintf(&b, "**Alternatives:** %s\n\n", strings.Join(names, ", "))
		}
		fmt.Fprintf(&b, "**Recommendation:** %s\n\n", metric.Recommendation)
		b.WriteString("---\n\n")
	}

	b.WriteString("**Important:** This comparison is for informational purposes only. Always consult with a healthcare professional before making medication decisions.")
	return b.String()
}

func writeBullets(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:**\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
	b.WriteString("\n")
}

// formatPrice drops a trailing .00 so whole rupee amounts read naturally.
func formatPrice(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f", p)
	}
	return fmt.Sprintf("%.2f", p)
}
