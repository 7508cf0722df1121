package vitals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmavault/backend/internal/domain/entities"
)

func TestParse_AllCategories(t *testing.T) {
	v := Parse("HR: 72 bpm, BP 118/76 mmHg, Temp 98.4°F, SpO2 97%, resp rate 16, glucose 110 mg/dL")

	require.NotNil(t, v.HeartRate)
	assert.Equal(t, 72, *v.HeartRate)
	require.True(t, v.HasBloodPressure())
	assert.Equal(t, 118, *v.SystolicBP)
	assert.Equal(t, 76, *v.DiastolicBP)
	require.NotNil(t, v.Temperature)
	assert.InDelta(t, 98.4, *v.Temperature, 1e-9)
	require.NotNil(t, v.OxygenSaturation)
	assert.Equal(t, 97, *v.OxygenSaturation)
	require.NotNil(t, v.RespiratoryRate)
	assert.Equal(t, 16, *v.RespiratoryRate)
	require.NotNil(t, v.BloodSugar)
	assert.Equal(t, 110, *v.BloodSugar)
}

func TestParse_SynonymsAndCase(t *testing.T) {
	v := Parse("PULSE 88 and Blood Sugar: 95 and Breathing Rate 14 and Oxygen Saturation: 96")

	require.NotNil(t, v.HeartRate)
	assert.Equal(t, 88, *v.HeartRate)
	require.NotNil(t, v.BloodSugar)
	assert.Equal(t, 95, *v.BloodSugar)
	require.NotNil(t, v.RespiratoryRate)
	assert.Equal(t, 14, *v.RespiratoryRate)
	require.NotNil(t, v.OxygenSaturation)
	assert.Equal(t, 96, *v.OxygenSaturation)
}

func TestParse_NothingDetected(t *testing.T) {
	v := Parse("I have had a headache since yesterday")
	assert.True(t, v.IsEmpty())
	assert.Nil(t, v.HeartRate)
	assert.Nil(t, v.Temperature)
}

func TestParse_ZeroIsPresent(t *testing.T) {
	v := Parse("heart rate: 0")
	require.NotNil(t, v.HeartRate)
	assert.Equal(t, 0, *v.HeartRate)
	assert.False(t, v.IsEmpty())
}

func TestParse_SystolicOnlyIsAbsent(t *testing.T) {
	v := Parse("blood pressure: 190 mmHg")
	assert.Nil(t, v.SystolicBP)
	assert.Nil(t, v.DiastolicBP)
	assert.True(t, v.IsEmpty())
}

func TestParse_CelsiusConvertedToFahrenheit(t *testing.T) {
	v := Parse("temperature: 37°C")
	require.NotNil(t, v.Temperature)
	assert.InDelta(t, 98.6, *v.Temperature, 1e-9)

	v = Parse("temp 38.5 celsius")
	require.NotNil(t, v.Temperature)
	assert.InDelta(t, 101.3, *v.Temperature, 1e-9)
}

// Celsius readings are classified on the Fahrenheit ladder, so the rounded
// Celsius bounds shown in the normal range are not themselves normal.
func TestParse_CelsiusBoundsClassifiedInFahrenheit(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		status entities.VitalStatus
	}{
		{"temperature 36.5°c", 97.7, entities.VitalStatusLow},
		{"temperature 36.6°c", 97.88, entities.VitalStatusNormal},
		{"temperature 37.2°c", 98.96, entities.VitalStatusNormal},
		{"temperature 37.3°c", 99.14, entities.VitalStatusHigh},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := Parse(tt.input)
			require.NotNil(t, v.Temperature)
			assert.InDelta(t, tt.want, *v.Temperature, 1e-9)

			analysis := Analyze(v)
			assert.Equal(t, tt.status, analysis.Temperature.Status)
			assert.Equal(t, "97.8-99.1°F (36.5-37.3°C)", analysis.Temperature.NormalRange)
		})
	}
}

func TestParse_TemperatureNeedsUnit(t *testing.T) {
	v := Parse("temperature 99")
	assert.Nil(t, v.Temperature)
	assert.True(t, LooksLikeVitals("temperature 99"))
}

func TestParse_TrailingGarbageTolerated(t *testing.T) {
	v := Parse("hr: 72abc")
	require.NotNil(t, v.HeartRate)
	assert.Equal(t, 72, *v.HeartRate)
}

func TestParse_OverflowTreatedAsAbsent(t *testing.T) {
	v := Parse("heart rate 99999999999999999999999")
	assert.Nil(t, v.HeartRate)
}

func TestParse_KeywordNeedsWordBoundary(t *testing.T) {
	v := Parse("three 45 times")
	assert.Nil(t, v.HeartRate)
}

func TestLooksLikeVitals(t *testing.T) {
	assert.True(t, LooksLikeVitals("my bp 140/90 today"))
	assert.True(t, LooksLikeVitals("Pulse: 110"))
	assert.False(t, LooksLikeVitals("I feel dizzy and tired"))
}
