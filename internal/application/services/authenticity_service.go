package services

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/repositories"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

const (
	baseConfidence         = 0.95
	minConfidence          = 0.1
	counterfeitProbability = 0.05
	dateLayout             = "2006-01-02"
)

var batchNumberPattern = regexp.MustCompile(`^[A-Z]{3}\d{7}$`)

// Simulated regulatory registries.
var (
	cdscoRegistry = []string{"CDSCO-PAR-001", "CDSCO-AMX-002", "CDSCO-LIS-003", "CDSCO-MET-004", "CDSCO-ATO-005"}
	fdaRegistry   = []string{"FDA-ANDA-123456", "FDA-NDA-789012", "FDA-NDA-345678", "FDA-NDA-901234", "FDA-NDA-567890"}
	recalls       = map[string]entities.RecallStatus{
		"med-004": {
			IsRecalled:  true,
			RecallDate:  "2024-01-10",
			Reason:      "Potential contamination in specific batch",
			RecallClass: "Class II",
		},
	}
)

// VerifyRequest identifies the batch being checked. Empty dates default to
// the catalog record's.
type VerifyRequest struct {
	MedicineID        string `json:"medicine_id"`
	BatchNumber       string `json:"batch_number"`
	ManufacturingDate string `json:"manufacturing_date,omitempty"`
	ExpiryDate        string `json:"expiry_date,omitempty"`
}

// AuthenticityService simulates batch verification against CDSCO and FDA.
type AuthenticityService struct {
	repo    repositories.MedicineRepository
	latency time.Duration
	now     func() time.Time
	random  func() float64
}

// AuthenticityOption customises an AuthenticityService.
type AuthenticityOption func(*AuthenticityService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AuthenticityOption {
	return func(s *AuthenticityService) { s.now = now }
}

// WithRandom replaces the counterfeit draw source; it must return [0,1).
func WithRandom(random func() float64) AuthenticityOption {
	return func(s *AuthenticityService) { s.random = random }
}

// WithLatency sets the simulated registry round trip.
func WithLatency(d time.Duration) AuthenticityOption {
	return func(s *AuthenticityService) { s.latency = d }
}

// NewAuthenticityService creates a new authenticity service.
func NewAuthenticityService(repo repositories.MedicineRepository, opts ...AuthenticityOption) *AuthenticityService {
	s := &AuthenticityService{
		repo:   repo,
		now:    time.Now,
		random: rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthenticityService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// VerifyMedicine checks a batch. Unknown medicines are suspicious rather than
// an error.
func (s *AuthenticityService) VerifyMedicine(ctx context.Context, req VerifyRequest) (*entities.AuthenticityCheck, error) {
	if strings.TrimSpace(req.MedicineID) == "" {
		return nil, apperrors.NewValidationError("medicine_id is required")
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	check := &entities.AuthenticityCheck{
		MedicineID:        req.MedicineID,
		BatchNumber:       req.BatchNumber,
		ManufacturingDate: req.ManufacturingDate,
		ExpiryDate:        req.ExpiryDate,
		VerificationDate:  now,
		Warnings:          []string{},
	}

	medicine, err := s.repo.GetByID(ctx, req.MedicineID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		check.VerificationStatus = entities.AuthenticitySuspicious
		check.VerificationSource = entities.VerificationSourceCDSCO
		check.Confidence = 0.2
		check.Warnings = append(check.Warnings, "Medicine not found in regulatory database")
		return check, nil
	}

	if check.ManufacturingDate == "" {
		check.ManufacturingDate = medicine.ManufacturingDate
	}
	if check.ExpiryDate == "" {
		check.ExpiryDate = medicine.ExpiryDate
	}

	status := entities.AuthenticityAuthentic
	confidence := baseConfidence

	expiry, expiryErr := time.Parse(dateLayout, check.ExpiryDate)
	if expiryErr == nil && expiry.Before(now) {
		status = entities.AuthenticityExpired
		check.Warnings = append(check.Warnings, "Medicine has expired")
		confidence -= 0.3
	}

	if !batchNumberPattern.MatchString(check.BatchNumber) {
		status = entities.AuthenticitySuspicious
		check.Warnings = append(check.Warnings, "Invalid batch number format")
		confidence -= 0.4
	}

	mfg, mfgErr := time.Parse(dateLayout, check.ManufacturingDate)
	if mfgErr != nil || expiryErr != nil || !mfg.Before(now) || !mfg.Before(expiry) {
		status = entities.AuthenticitySuspicious
		check.Warnings = append(check.Warnings, "Invalid manufacturing date")
		confidence -= 0.3
	}

	if s.random() < counterfeitProbability {
		status = entities.AuthenticityCounterfeit
		confidence = minConfidence
		check.Warnings = append(check.Warnings, "Suspected counterfeit medicine detected")
	}

	check.VerificationStatus = status
	check.Confidence = math.Max(minConfidence, math.Round(confidence*100)/100)
	check.VerificationSource = entities.VerificationSourceFDA
	if medicine.CDSCODrugCode != "" {
		check.VerificationSource = entities.VerificationSourceCDSCO
	}

	log.Info().
		Str("medicine_id", req.MedicineID).
		Str("status", string(status)).
		Float64("confidence", check.Confidence).
		Msg("medicine verification completed")
	return check, nil
}

// VerifyByCDSCO reports whether code is a registered CDSCO drug code.
func (s *AuthenticityService) VerifyByCDSCO(ctx context.Context, code string) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}
	return slices.Contains(cdscoRegistry, code), nil
}

// VerifyByFDA reports whether number is a known FDA approval number.
func (s *AuthenticityService) VerifyByFDA(ctx context.Context, number string) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}
	return slices.Contains(fdaRegistry, number), nil
}

// CheckRecallStatus looks medicineID up in the recall list.
func (s *AuthenticityService) CheckRecallStatus(ctx context.Context, medicineID string) (entities.RecallStatus, error) {
	if err := s.wait(ctx); err != nil {
		return entities.RecallStatus{}, err
	}
	if recall, ok := recalls[medicineID]; ok {
		return recall, nil
	}
	return entities.RecallStatus{IsRecalled: false}, nil
}

var statusEmoji = map[entities.AuthenticityStatus]string{
	entities.AuthenticityAuthentic:   "✅",
	entities.AuthenticitySuspicious:  "⚠️",
	entities.AuthenticityCounterfeit: "🚨",
	entities.AuthenticityExpired:     "⏰",
}

var statusRecommendation = map[entities.AuthenticityStatus]string{
	entities.AuthenticityAuthentic:   "This medicine appears to be authentic and safe to use (if not expired).",
	entities.AuthenticitySuspicious:  "Exercise caution. Verify with your pharmacist or contact the manufacturer.",
	entities.AuthenticityCounterfeit: "DO NOT USE. This appears to be a counterfeit medicine. Report to authorities.",
	entities.AuthenticityExpired:     "DO NOT USE. This medicine has expired and may be ineffective or harmful.",
}

// GenerateAuthenticityReport renders check as markdown. recall may be nil.
func GenerateAuthenticityReport(check *entities.AuthenticityCheck, recall *entities.RecallStatus) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Medicine Authenticity Report** %s\n\n", statusEmoji[check.VerificationStatus])
	fmt.Fprintf(&b, "**Status:** %s\n", strings.ToUpper(string(check.VerificationStatus)))
	fmt.Fprintf(&b, "**Confidence Level:** %.0f%%\n", math.Round(check.Confidence*100))
	fmt.Fprintf(&b, "**Verification Source:** %s\n", strings.ToUpper(string(check.VerificationSource)))
	fmt.Fprintf(&b, "**Batch Number:** %s\n", check.BatchNumber)
	fmt.Fprintf(&b, "**Manufacturing Date:** %s\n", check.ManufacturingDate)
	fmt.Fprintf(&b, "**Expiry Date:** %s\n\n", check.ExpiryDate)

	if len(check.Warnings) > 0 {
		b.WriteString("**Warnings:**\n")
		for _, w := range check.Warnings {
			fmt.Fprintf(&b, "• %s\n", w)
		}
		b.WriteString("\n")
	}

	if recall != nil && recall.IsRecalled {
		fmt.Fprintf(&b, "**Recall Notice (%s):** %s (recalled %s)\n\n", recall.RecallClass, recall.Reason, recall.RecallDate)
	}

	fmt.Fprintf(&b, "**Recommendation:** %s\n", statusRecommendation[check.VerificationStatus])
	b.WriteString("\n**Important:** Always purchase medicines from licensed pharmacies and verify authenticity when in doubt.")
	return b.String()
}
