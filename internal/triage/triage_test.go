package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/vitals"
)

func bulletCount(section string) int {
	return strings.Count(section, "• ")
}

func section(t *testing.T, out, heading string) string {
	t.Helper()
	start := strings.Index(out, "**"+heading+":**")
	require.GreaterOrEqual(t, start, 0, "missing section %q", heading)
	rest := out[start:]
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		return rest[:end]
	}
	return rest
}

func TestDetectSymptoms(t *testing.T) {
	got := DetectSymptoms("I have a MIGRAINE and a runny nose")
	require.Len(t, got, 2)
	assert.Equal(t, "headache", got[0].Key)
	assert.Equal(t, "coldFlu", got[1].Key)

	assert.Empty(t, DetectSymptoms("what can you do"))
}

func TestGenerateMedicalResponse_SingleSymptom(t *testing.T) {
	out := GenerateMedicalResponse("I have a headache")

	assert.True(t, strings.HasPrefix(out, "**Headache** can have several common causes:"))
	assert.Equal(t, 8, bulletCount(section(t, out, "Possible causes")))
	assert.Equal(t, 4, bulletCount(section(t, out, "Common medicines that may help")))
	assert.Contains(t, out, "Please see a healthcare provider if you experience severe headache, persistent pain lasting more than 2 days")
	assert.True(t, strings.HasSuffix(out, disclaimer))
}

func TestGenerateMedicalResponse_MultipleSymptomsMergedAndCapped(t *testing.T) {
	out := GenerateMedicalResponse("headache and fever since morning")

	assert.True(t, strings.HasPrefix(out, "**Headache and fever** can have several common causes:"))
	assert.Equal(t, maxMergedCauses, bulletCount(section(t, out, "Possible causes")))
	assert.Equal(t, maxMergedMedicines, bulletCount(section(t, out, "Common medicines that may help")))
	assert.Equal(t, maxMergedPrecautions, bulletCount(section(t, out, "Simple precautions and home remedies")))
	assert.Contains(t, out, mergedDoctorAdvice)
	assert.NotContains(t, out, "neck stiffness")
}

func TestGenerateMedicalResponse_MergedDeduplicates(t *testing.T) {
	// fatigue and headache both list dehydration; it must appear once.
	out := GenerateMedicalResponse("tired with a headache")
	assert.Equal(t, 1, strings.Count(out, "Dehydration or not drinking enough water"))
}

func TestGenerateMedicalResponse_DelegatesToVitals(t *testing.T) {
	in := "Heart rate: 45 bpm, Blood pressure: 190/120 mmHg"
	assert.Equal(t, vitals.GenerateResponse(in), GenerateMedicalResponse(in))

	// vital shaped but unparseable still takes the vitals path
	assert.Equal(t, vitals.NoVitalsDetectedMessage, GenerateMedicalResponse("temperature 101"))
}

func TestGenerateMedicalResponse_FallbackPriority(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"medicine safety", "Is this medicine safe to take?", medicineSafetyResponse},
		{"safety beats emergency", "is it urgent to take this medicine", medicineSafetyResponse},
		{"emergency", "this is an emergency", emergencyResponse},
		{"emergency beats greeting", "hello, something serious happened", emergencyResponse},
		{"greeting exact", "hello", greetingResponse},
		{"greeting prefix", "Hey there", greetingResponse},
		{"greeting bang", "hi!", greetingResponse},
		{"how are you", "so how are you doing", howAreYouResponse},
		{"thanks", "ok thank you", thanksResponse},
		{"goodbye", "goodbye for now", goodbyeResponse},
		{"overview", "what can you do", CapabilityOverview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateMedicalResponse(tt.input))
		})
	}
}

func TestGenerateMedicalResponse_Deterministic(t *testing.T) {
	in := "cough, sore throat and a stuffy nose"
	assert.Equal(t, GenerateMedicalResponse(in), GenerateMedicalResponse(in))
}
