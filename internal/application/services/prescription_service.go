package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/repositories"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

const (
	defaultFrequency    = "As directed"
	defaultDuration     = "7 days"
	defaultQuantity     = 10
	defaultInstructions = "Take as prescribed"
	// Catalog prices are per strip of ten units.
	unitsPerPrice = 10
)

var (
	dosageNumberPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	medicineLinePattern = regexp.MustCompile(`(?i)^(\d+\.?\s*)?([A-Za-z\s]+)\s*[-:]?\s*(\d+\s*mg|mg\s*\d+)`)
	frequencyPattern    = regexp.MustCompile(`(?i)(once|twice|thrice|\d+\s*times?).*?(daily|day|morning|evening|night)`)
	durationPattern     = regexp.MustCompile(`(?i)for\s+(\d+\s*(?:days?|weeks?|months?))`)
	patientPattern      = regexp.MustCompile(`(?i)^(?:patient(?:\s+name)?|name)\s*[:\-]\s*(.+)$`)
	doctorPattern       = regexp.MustCompile(`(?i)^(?:doctor|prescribed\s+by|physician)\s*[:\-]\s*(.+)$|^(dr\.?\s+.+)$`)
	datePattern         = regexp.MustCompile(`(?i)^date\s*[:\-]\s*(.+)$`)
	diagnosisPattern    = regexp.MustCompile(`(?i)diagnosis:?`)
	notesPattern        = regexp.MustCompile(`(?i)instructions?:?|notes?:?`)
)

// PrescriptionService reviews prescriptions against the catalog.
type PrescriptionService struct {
	repo repositories.MedicineRepository
	now  func() time.Time
}

// NewPrescriptionService creates a new prescription service.
func NewPrescriptionService(repo repositories.MedicineRepository) *PrescriptionService {
	return &PrescriptionService{repo: repo, now: time.Now}
}

// AnalyzePrescription checks interactions, dosage, contraindications, cost and
// availability. Lines whose medicine is not in the catalog are listed but not
// analysed.
func (s *PrescriptionService) AnalyzePrescription(ctx context.Context, p *entities.Prescription) (*entities.PrescriptionAnalysis, error) {
	if p == nil || len(p.Medicines) == 0 {
		return nil, apperrors.NewValidationError("prescription must list at least one medicine")
	}

	resolved := make([]*entities.Medicine, len(p.Medicines))
	medicines := make([]*entities.Medicine, 0, len(p.Medicines))
	for i, line := range p.Medicines {
		m, err := s.lookup(ctx, line)
		if err != nil {
			return nil, err
		}
		if m == nil {
			log.Debug().Str("medicine", line.Name).Msg("prescribed medicine not in catalog")
			continue
		}
		resolved[i] = m
		medicines = append(medicines, m)
	}

	interactions := CheckInteractions(medicines)
	analysis := &entities.PrescriptionAnalysis{
		Prescription:      p,
		Interactions:      interactions,
		DosageWarnings:    dosageWarnings(p.Medicines, resolved),
		Contraindications: contraindications(medicines),
		Recommendations:   prescriptionRecommendations(medicines, interactions.Severity),
		TotalCost:         totalCost(p.Medicines, resolved),
		Availability:      availability(medicines, len(p.Medicines)),
	}
	return analysis, nil
}

func (s *PrescriptionService) lookup(ctx context.Context, line entities.PrescribedMedicine) (*entities.Medicine, error) {
	var (
		m   *entities.Medicine
		err error
	)
	switch {
	case line.MedicineID != "":
		m, err = s.repo.GetByID(ctx, line.MedicineID)
	case line.Name != "":
		m, err = s.repo.GetByName(ctx, line.Name)
	default:
		return nil, nil
	}
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func dosageWarnings(lines []entities.PrescribedMedicine, resolved []*entities.Medicine) []string {
	warnings := []string{}
	for i, line := range lines {
		m := resolved[i]
		if m == nil {
			continue
		}

		dose, okDose := leadingNumber(line.Dosage)
		strength, okStrength := leadingNumber(m.Strength)
		if okDose && okStrength && strength > 0 && dose > strength*2 {
			warnings = append(warnings, fmt.Sprintf("High dosage prescribed for %s: %s", m.Name, line.Dosage))
		}

		frequency := strings.ToLower(line.Frequency)
		if strings.Contains(frequency, "4 times") || strings.Contains(frequency, "every 4 hours") {
			warnings = append(warnings, fmt.Sprintf("Frequent dosing for %s - monitor for side effects", m.Name))
		}

		if strings.Contains(strings.ToLower(line.Duration), "month") && isAntibiotic(m) {
			warnings = append(warnings, fmt.Sprintf("Long-term antibiotic use (%s) - monitor for resistance", m.Name))
		}
	}
	return warnings
}

func leadingNumber(s string) (float64, bool) {
	match := dosageNumberPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	return n, err == nil
}

func isAntibiotic(m *entities.Medicine) bool {
	return strings.Contains(m.Category, "Antibiotic") || m.IsAntibiotic()
}

func contraindications(medicines []*entities.Medicine) []string {
	out := []string{}
	for _, m := range medicines {
		for _, c := range m.Contraindications {
			out = append(out, fmt.Sprintf("%s: %s", m.Name, c))
		}
	}
	return out
}

func prescriptionRecommendations(medicines []*entities.Medicine, severity entities.InteractionSeverity) []string {
	recs := []string{}
	switch severity {
	case entities.InteractionSeveritySevere:
		recs = append(recs, "⚠️ Severe drug interactions detected - consult prescribing physician immediately")
	case entities.InteractionSeverityModerate:
		recs = append(recs, "⚠️ Moderate drug interactions present - monitor closely for side effects")
	}

	var pregnancy, otc []string
	generic, antibiotic, statin := false, false, false
	for _, m := range medicines {
		if m.PregnancyCategory == "D" || m.PregnancyCategory == "X" {
			pregnancy = append(pregnancy, m.Name)
		}
		if !m.PrescriptionRequired {
			otc = append(otc, m.Name)
		}
		if m.Name != m.GenericName {
			generic = true
		}
		if isAntibiotic(m) {
			antibiotic = true
		}
		if strings.Contains(m.Category, "Statin") {
			statin = true
		}
	}

	if len(pregnancy) > 0 {
		recs = append(recs, fmt.Sprintf("⚠️ Pregnancy warning: %s - not recommended during pregnancy", strings.Join(pregnancy, ", ")))
	}
	if len(otc) > 0 {
		recs = append(recs, fmt.Sprintf("ℹ️ Available OTC: %s", strings.Join(otc, ", ")))
	}
	if generic {
		recs = append(recs, "💰 Consider generic alternatives to reduce costs")
	}
	if antibiotic {
		recs = append(recs, "⏰ Take antibiotics at evenly spaced intervals and complete full course")
	}
	if statin {
		recs = append(recs, "🌙 Take statins in the evening for better effectiveness")
	}
	return recs
}

func totalCost(lines []entities.PrescribedMedicine, resolved []*entities.Medicine) float64 {
	total := 0.0
	for i, line := range lines {
		if m := resolved[i]; m != nil {
			total += m.Price * float64(line.Quantity) / unitsPerPrice
		}
	}
	return math.Round(total*100) / 100
}

func availability(medicines []*entities.Medicine, total int) entities.AvailabilitySummary {
	summary := entities.AvailabilitySummary{Total: total}
	for _, m := range medicines {
		if m.InStock {
			summary.Available++
		}
	}
	summary.Unavailable = len(medicines) - summary.Available
	return summary
}

// ExtractFromText pulls a prescription out of free text such as OCR output.
// Medicine lines look like "1. Paracetamol 500mg twice daily for 5 days";
// lines naming a catalog medicine are linked to it.
func (s *PrescriptionService) ExtractFromText(ctx context.Context, text string) (*entities.Prescription, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("prescription text is required")
	}

	p := &entities.Prescription{
		ID:        uuid.New().String(),
		Medicines: []entities.PrescribedMedicine{},
		CreatedAt: s.now(),
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := patientPattern.FindStringSubmatch(line); m != nil {
			p.PatientName = strings.TrimSpace(m[1])
			continue
		}
		if m := doctorPattern.FindStringSubmatch(line); m != nil {
			p.DoctorName = strings.TrimSpace(m[1] + m[2])
			continue
		}
		if m := datePattern.FindStringSubmatch(line); m != nil {
			p.Date = strings.TrimSpace(m[1])
			continue
		}

		if m := medicineLinePattern.FindStringSubmatch(line); m != nil {
			prescribed := entities.PrescribedMedicine{
				Name:         strings.TrimSpace(m[2]),
				Dosage:       strings.Join(strings.Fields(m[3]), ""),
				Frequency:    defaultFrequency,
				Duration:     defaultDuration,
				Quantity:     defaultQuantity,
				Instructions: defaultInstructions,
			}
			if freq := frequencyPattern.FindString(line); freq != "" {
				prescribed.Frequency = freq
			}
			if d := durationPattern.FindStringSubmatch(line); d != nil {
				prescribed.Duration = d[1]
			}
			medicine, err := s.repo.GetByName(ctx, prescribed.Name)
			switch {
			case err == nil:
				prescribed.MedicineID = medicine.ID
			case !apperrors.IsNotFound(err):
				return nil, err
			}
			p.Medicines = append(p.Medicines, prescribed)
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, "diagnosis") || strings.Contains(lower, "condition") {
			p.Diagnosis = strings.TrimSpace(diagnosisPattern.ReplaceAllString(line, ""))
		}
		if strings.Contains(lower, "instruction") || strings.Contains(lower, "note") {
			p.Notes = strings.TrimSpace(notesPattern.ReplaceAllString(line, ""))
		}
	}

	if p.Notes == "" {
		p.Notes = "Follow prescription as directed"
	}
	log.Debug().Str("prescription_id", p.ID).Int("medicines", len(p.Medicines)).Msg("prescription extracted from text")
	return p, nil
}

var interactionEmoji = map[entities.InteractionSeverity]string{
	entities.InteractionSeverityMild:     "⚠️",
	entities.InteractionSeverityModerate: "⚠️",
	entities.InteractionSeveritySevere:   "🚨",
}

// GeneratePrescriptionReport renders an analysis as markdown.
func GeneratePrescriptionReport(a *entities.PrescriptionAnalysis) string {
	p := a.Prescription
	var b strings.Builder
	b.WriteString("**Prescription Analysis Report**\n\n")
	fmt.Fprintf(&b, "**Patient:** %s\n", p.PatientName)
	fmt.Fprintf(&b, "**Prescribed by:** %s\n", p.DoctorName)
	fmt.Fprintf(&b, "**Issue Date:** %s\n\n", p.Date)
	if p.Diagnosis != "" {
		fmt.Fprintf(&b, "**Diagnosis:** %s\n\n", p.Diagnosis)
	}

	b.WriteString("**Prescribed Medicines:**\n")
	for i, m := range p.Medicines {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, m.Name)
		fmt.Fprintf(&b, "   - Dosage: %s\n", m.Dosage)
		fmt.Fprintf(&b, "   - Frequency: %s\n", m.Frequency)
		fmt.Fprintf(&b, "   - Duration: %s\n", m.Duration)
		fmt.Fprintf(&b, "   - Quantity: %d\n", m.Quantity)
		if m.Instructions != "" {
			fmt.Fprintf(&b, "   - Instructions: %s\n", m.Instructions)
		}
		b.WriteString("\n")
	}

	b.WriteString("**Cost Analysis:**\n")
	fmt.Fprintf(&b, "Total Estimated Cost: ₹%.2f\n\n", a.TotalCost)

	b.WriteString("**Availability:**\n")
	fmt.Fprintf(&b, "Available: %d/%d medicines\n", a.Availability.Available, a.Availability.Total)
	if a.Availability.Unavailable > 0 {
		fmt.Fprintf(&b, "⚠️ %d medicine(s) currently out of stock\n", a.Availability.Unavailable)
	}
	b.WriteString("\n")

	if len(a.Interactions.Interactions) > 0 {
		fmt.Fprintf(&b, "**Drug Interactions (%s):**\n", strings.ToUpper(string(a.Interactions.Severity)))
		for _, i := range a.Interactions.Interactions {
			fmt.Fprintf(&b, "%s %s + %s: %s\n", interactionEmoji[i.Severity], i.Medicine1, i.Medicine2, i.Description)
			fmt.Fprintf(&b, "   Recommendation: %s\n\n", i.Recommendation)
		}
	}

	writeWarningSection(&b, "Dosage Warnings", a.DosageWarnings)
	writeWarningSection(&b, "Contraindications", a.Contraindications)

	if len(a.Recommendations) > 0 {
		b.WriteString("**Recommendations:**\n")
		for _, r := range a.Recommendations {
			b.WriteString(r + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("**Important:** This analysis is for informational purposes only. Always follow your healthcare provider's instructions and consult them for any concerns.")
	return b.String()
}

func writeWarningSection(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:**\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "⚠️ %s\n", item)
	}
	b.WriteString("\n")
}
