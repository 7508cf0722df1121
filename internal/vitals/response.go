package vitals

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pharmavault/backend/internal/domain/entities"
)

const disclaimer = "Remember, this is general information only. If you feel unwell or your symptoms continue, please consult a healthcare professional."

// NoVitalsDetectedMessage is returned when the input carries no readings.
const NoVitalsDetectedMessage = `I didn't detect any vital signs in your message. Please provide your vital signs in this format:

**Example:**
Heart rate: 75 bpm
Blood pressure: 120/80 mmHg
Temperature: 98.6°F
Oxygen saturation: 98%

**Supported vital signs:**
• Heart rate (bpm)
• Blood pressure (systolic/diastolic mmHg)
• Temperature (°F or °C)
• Oxygen saturation (%)
• Respiratory rate (breaths/min)
• Blood sugar (mg/dL)

` + disclaimer

const urgentWarning = "🚨 **IMPORTANT:** Some of your vital signs are concerning and may require immediate medical attention. Please contact a healthcare provider or emergency services if you feel unwell."

var statusMarker = map[entities.VitalStatus]string{
	entities.VitalStatusNormal:     "✅",
	entities.VitalStatusLow:        "⬇️",
	entities.VitalStatusHigh:       "⬆️",
	entities.VitalStatusConcerning: "🚨",
}

var overallMarker = map[entities.OverallStatus]string{
	entities.OverallNormal:     "✅",
	entities.OverallAbnormal:   "⚠️",
	entities.OverallConcerning: "🚨",
}

// GenerateResponse parses text, analyzes the readings and renders a markdown
// advisory. When nothing is detected it returns NoVitalsDetectedMessage.
func GenerateResponse(text string) string {
	v := Parse(text)
	if v.IsEmpty() {
		return NoVitalsDetectedMessage
	}
	return Render(v, Analyze(v))
}

// Render formats an analysis of v.
func Render(v entities.VitalSigns, analysis entities.VitalSignsAnalysis) string {
	var b strings.Builder
	b.WriteString("**Your Vital Signs Analysis:**\n\n")

	for _, category := range entities.VitalCategories {
		a := analysis.Assessment(category)
		if a.Status == entities.VitalStatusNotProvided {
			continue
		}
		l := ladders[category]
		fmt.Fprintf(&b, "**%s:** %s %s %s\n", l.label, displayValue(category, v, a), l.unit, statusMarker[a.Status])
		fmt.Fprintf(&b, "• Normal range: %s\n", a.NormalRange)
		fmt.Fprintf(&b, "• %s\n\n", a.Interpretation)
	}

	fmt.Fprintf(&b, "**Overall Assessment:** %s %s\n\n", strings.ToUpper(string(analysis.Overall)), overallMarker[analysis.Overall])

	if len(analysis.Recommendations) > 0 {
		b.WriteString("**Recommendations:**\n")
		for _, rec := range analysis.Recommendations {
			fmt.Fprintf(&b, "• %s\n", rec)
		}
		b.WriteString("\n")
	}

	if analysis.UrgentCare {
		b.WriteString(urgentWarning)
		b.WriteString("\n\n")
	}

	b.WriteString(disclaimer)
	return b.String()
}

func displayValue(category entities.VitalCategory, v entities.VitalSigns, a entities.VitalSignAssessment) string {
	if category == entities.VitalBloodPressure && v.HasBloodPressure() {
		return fmt.Sprintf("%d/%d", *v.SystolicBP, *v.DiastolicBP)
	}
	if a.Value == nil {
		return ""
	}
	// Celsius conversions produce values like 98.60000000000001.
	rounded := math.Round(*a.Value*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
