package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/adapters/catalog"
	"github.com/pharmavault/backend/internal/application/services"
	"github.com/pharmavault/backend/internal/domain/entities"
	apperrors "github.com/pharmavault/backend/pkg/errors"
)

var verificationTime = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newAuthenticityService(draw float64, opts ...services.AuthenticityOption) *services.AuthenticityService {
	opts = append([]services.AuthenticityOption{
		services.WithClock(func() time.Time { return verificationTime }),
		services.WithRandom(func() float64 { return draw }),
	}, opts...)
	return services.NewAuthenticityService(catalog.NewSeededMemoryAdapter(), opts...)
}

func TestAuthenticityService_VerifyMedicine(t *testing.T) {
	tests := []struct {
		name       string
		draw       float64
		req        services.VerifyRequest
		status     entities.AuthenticityStatus
		confidence float64
		warnings   []string
	}{
		{
			name:       "authentic batch",
			draw:       0.5,
			req:        services.VerifyRequest{MedicineID: "med-001", BatchNumber: "PAR2025001"},
			status:     entities.AuthenticityAuthentic,
			confidence: 0.95,
			warnings:   []string{},
		},
		{
			name:       "malformed batch number",
			draw:       0.5,
			req:        services.VerifyRequest{MedicineID: "med-001", BatchNumber: "PAR-1"},
			status:     entities.AuthenticitySuspicious,
			confidence: 0.55,
			warnings:   []string{"Invalid batch number format"},
		},
		{
			name:       "expired batch",
			draw:       0.5,
			req:        services.VerifyRequest{MedicineID: "med-002", BatchNumber: "AMX2025002", ExpiryDate: "2026-01-31"},
			status:     entities.AuthenticityExpired,
			confidence: 0.65,
			warnings:   []string{"Medicine has expired"},
		},
		{
			name:       "manufactured in the future",
			draw:       0.5,
			req:        services.VerifyRequest{MedicineID: "med-003", BatchNumber: "LIS2025003", ManufacturingDate: "2026-12-01"},
			status:     entities.AuthenticitySuspicious,
			confidence: 0.65,
			warnings:   []string{"Invalid manufacturing date"},
		},
		{
			name:       "every check fails",
			draw:       0.5,
			req:        services.VerifyRequest{MedicineID: "med-003", BatchNumber: "bad", ManufacturingDate: "not-a-date", ExpiryDate: "2025-06-01"},
			status:     entities.AuthenticitySuspicious,
			confidence: 0.1,
			warnings:   []string{"Medicine has expired", "Invalid batch number format", "Invalid manufacturing date"},
		},
		{
			name:       "counterfeit draw",
			draw:       0.01,
			req:        services.VerifyRequest{MedicineID: "med-005", BatchNumber: "ATO2025005"},
			status:     entities.AuthenticityCounterfeit,
			confidence: 0.1,
			warnings:   []string{"Suspected counterfeit medicine detected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := newAuthenticityService(tt.draw).VerifyMedicine(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.status, check.VerificationStatus)
			assert.InDelta(t, tt.confidence, check.Confidence, 1e-9)
			assert.Equal(t, tt.warnings, check.Warnings)
			assert.Equal(t, entities.VerificationSourceCDSCO, check.VerificationSource)
			assert.Equal(t, verificationTime, check.VerificationDate)
		})
	}
}

func TestAuthenticityService_DefaultsDatesFromCatalog(t *testing.T) {
	check, err := newAuthenticityService(0.5).VerifyMedicine(context.Background(), services.VerifyRequest{
		MedicineID:  "med-004",
		BatchNumber: "MET2025004",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-05", check.ManufacturingDate)
	assert.Equal(t, "2028-01-15", check.ExpiryDate)
}

func TestAuthenticityService_UnknownMedicine(t *testing.T) {
	check, err := newAuthenticityService(0.5).VerifyMedicine(context.Background(), services.VerifyRequest{
		MedicineID:  "med-999",
		BatchNumber: "XYZ2025999",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.AuthenticitySuspicious, check.VerificationStatus)
	assert.InDelta(t, 0.2, check.Confidence, 1e-9)
	assert.Equal(t, []string{"Medicine not found in regulatory database"}, check.Warnings)
}

func TestAuthenticityService_RequiresMedicineID(t *testing.T) {
	_, err := newAuthenticityService(0.5).VerifyMedicine(context.Background(), services.VerifyRequest{BatchNumber: "PAR2025001"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestAuthenticityService_LatencyHonoursCancellation(t *testing.T) {
	service := newAuthenticityService(0.5, services.WithLatency(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.VerifyMedicine(ctx, services.VerifyRequest{MedicineID: "med-001", BatchNumber: "PAR2025001"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = service.CheckRecallStatus(ctx, "med-004")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthenticityService_Registries(t *testing.T) {
	service := newAuthenticityService(0.5)
	ctx := context.Background()

	ok, err := service.VerifyByCDSCO(ctx, "CDSCO-LIS-003")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.VerifyByCDSCO(ctx, "CDSCO-XXX-999")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = service.VerifyByFDA(ctx, "FDA-ANDA-123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.VerifyByFDA(ctx, "FDA-NDA-000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticityService_CheckRecallStatus(t *testing.T) {
	service := newAuthenticityService(0.5)

	recall, err := service.CheckRecallStatus(context.Background(), "med-004")
	require.NoError(t, err)
	assert.True(t, recall.IsRecalled)
	assert.Equal(t, "Class II", recall.RecallClass)
	assert.Equal(t, "2024-01-10", recall.RecallDate)

	recall, err = service.CheckRecallStatus(context.Background(), "med-001")
	require.NoError(t, err)
	assert.False(t, recall.IsRecalled)
}

func TestGenerateAuthenticityReport(t *testing.T) {
	check := &entities.AuthenticityCheck{
		MedicineID:         "med-004",
		BatchNumber:        "MET2025004",
		ManufacturingDate:  "2025-01-05",
		ExpiryDate:         "2028-01-15",
		VerificationStatus: entities.AuthenticitySuspicious,
		VerificationSource: entities.VerificationSourceCDSCO,
		Confidence:         0.55,
		Warnings:           []string{"Invalid batch number format"},
	}
	recall := &entities.RecallStatus{IsRecalled: true, RecallDate: "2024-01-10", Reason: "Potential contamination in specific batch", RecallClass: "Class II"}

	report := services.GenerateAuthenticityReport(check, recall)

	assert.Contains(t, report, "**Medicine Authenticity Report** ⚠️")
	assert.Contains(t, report, "**Status:** SUSPICIOUS")
	assert.Contains(t, report, "**Confidence Level:** 55%")
	assert.Contains(t, report, "**Verification Source:** CDSCO")
	assert.Contains(t, report, "• Invalid batch number format")
	assert.Contains(t, report, "**Recall Notice (Class II):** Potential contamination in specific batch (recalled 2024-01-10)")
	assert.Contains(t, report, "Exercise caution.")

	check.Warnings = nil
	check.VerificationStatus = entities.AuthenticityAuthentic
	report = services.GenerateAuthenticityReport(check, nil)
	assert.NotContains(t, report, "**Warnings:**")
	assert.NotContains(t, report, "Recall Notice")
}
