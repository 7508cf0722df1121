// Package vitals extracts vital sign readings from free text, classifies them
// against fixed clinical ranges and renders an advisory summary.
package vitals

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pharmavault/backend/internal/domain/entities"
)

var (
	heartRatePattern     = regexp.MustCompile(`\b(?:heart rate|hr|pulse)[\s:]*(\d+)(?:\s*bpm)?`)
	bloodPressurePattern = regexp.MustCompile(`\b(?:blood pressure|bp)[\s:]*(\d+)\s*/\s*(\d+)(?:\s*mmhg)?`)
	tempFahrenheitPat    = regexp.MustCompile(`\b(?:temperature|temp)[\s:]*(\d+(?:\.\d+)?)\s*°?\s*(?:fahrenheit|f)\b`)
	tempCelsiusPattern   = regexp.MustCompile(`\b(?:temperature|temp)[\s:]*(\d+(?:\.\d+)?)\s*°?\s*(?:celsius|c)\b`)
	oxygenPattern        = regexp.MustCompile(`\b(?:oxygen saturation|o2 saturation|o2 sat|spo2)[\s:]*(\d+)(?:\s*%)?`)
	respiratoryPattern   = regexp.MustCompile(`\b(?:respiratory rate|breathing rate|resp rate)[\s:]*(\d+)`)
	bloodSugarPattern    = regexp.MustCompile(`\b(?:blood sugar|glucose|bg)[\s:]*(\d+)(?:\s*mg/dl)?`)
)

// Looser patterns: a vital keyword followed by a number, regardless of unit.
var vitalShapedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:heart rate|hr|pulse)[\s:]*\d+`),
	regexp.MustCompile(`\b(?:blood pressure|bp)[\s:]*\d+\s*/\s*\d+`),
	regexp.MustCompile(`\b(?:temperature|temp)[\s:]*\d+(?:\.\d+)?`),
	regexp.MustCompile(`\b(?:oxygen saturation|o2 saturation|o2 sat|spo2)[\s:]*\d+`),
	regexp.MustCompile(`\b(?:respiratory rate|breathing rate|resp rate)[\s:]*\d+`),
	regexp.MustCompile(`\b(?:blood sugar|glucose|bg)[\s:]*\d+`),
}

// Parse extracts every vital sign it can recognise in text. Categories are
// matched independently; a category with no match is left nil. Blood
// pressure is all or nothing: a systolic value without a diastolic one
// leaves both fields nil. Celsius temperatures are stored in Fahrenheit.
func Parse(text string) entities.VitalSigns {
	lower := strings.ToLower(text)
	var v entities.VitalSigns

	v.HeartRate = matchInt(heartRatePattern, lower)

	if m := bloodPressurePattern.FindStringSubmatch(lower); m != nil {
		sys, errS := strconv.Atoi(m[1])
		dia, errD := strconv.Atoi(m[2])
		if errS == nil && errD == nil {
			v.SystolicBP = &sys
			v.DiastolicBP = &dia
		}
	}

	if f := matchFloat(tempFahrenheitPat, lower); f != nil {
		v.Temperature = f
	} else if c := matchFloat(tempCelsiusPattern, lower); c != nil {
		f := CelsiusToFahrenheit(*c)
		v.Temperature = &f
	}

	v.OxygenSaturation = matchInt(oxygenPattern, lower)
	v.RespiratoryRate = matchInt(respiratoryPattern, lower)
	v.BloodSugar = matchInt(bloodSugarPattern, lower)

	return v
}

// LooksLikeVitals reports whether text contains something shaped like a
// vital sign reading, even one Parse would not accept (e.g. a temperature
// with no unit).
func LooksLikeVitals(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range vitalShapedPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// CelsiusToFahrenheit converts a temperature reading.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func matchInt(p *regexp.Regexp, s string) *int {
	m := p.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

func matchFloat(p *regexp.Regexp, s string) *float64 {
	m := p.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &f
}
