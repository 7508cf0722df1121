package vitals

import (
	"github.com/pharmavault/backend/internal/domain/entities"
)

// Classify assesses a single category. A missing reading yields
// not_provided.
func Classify(category entities.VitalCategory, v entities.VitalSigns) entities.VitalSignAssessment {
	r, ok := readingFor(category, v)
	if !ok {
		return entities.VitalSignAssessment{
			Status:         entities.VitalStatusNotProvided,
			NormalRange:    ladders[category].normalRange,
			Interpretation: notProvidedText[category],
		}
	}
	return classifyReading(category, r)
}

func classifyReading(category entities.VitalCategory, r reading) entities.VitalSignAssessment {
	l := ladders[category]
	value := r.primary
	assessment := entities.VitalSignAssessment{
		Status:         entities.VitalStatusNormal,
		Value:          &value,
		NormalRange:    l.normalRange,
		Interpretation: l.normalText,
	}
	for _, b := range l.bands {
		if b.matches(r) {
			assessment.Status = b.status
			assessment.Interpretation = b.interpretation
			break
		}
	}
	return assessment
}

func readingFor(category entities.VitalCategory, v entities.VitalSigns) (reading, bool) {
	switch category {
	case entities.VitalHeartRate:
		return intReading(v.HeartRate)
	case entities.VitalBloodPressure:
		if !v.HasBloodPressure() {
			return reading{}, false
		}
		return reading{primary: float64(*v.SystolicBP), secondary: float64(*v.DiastolicBP)}, true
	case entities.VitalTemperature:
		if v.Temperature == nil {
			return reading{}, false
		}
		return reading{primary: *v.Temperature}, true
	case entities.VitalOxygenSaturation:
		return intReading(v.OxygenSaturation)
	case entities.VitalRespiratoryRate:
		return intReading(v.RespiratoryRate)
	case entities.VitalBloodSugar:
		return intReading(v.BloodSugar)
	}
	return reading{}, false
}

func intReading(n *int) (reading, bool) {
	if n == nil {
		return reading{}, false
	}
	return reading{primary: float64(*n)}, true
}

// Analyze classifies every category and aggregates the result. It is a pure
// function of v.
func Analyze(v entities.VitalSigns) entities.VitalSignsAnalysis {
	var analysis entities.VitalSignsAnalysis

	concerning, abnormal := 0, 0
	for _, category := range entities.VitalCategories {
		assessment := Classify(category, v)
		analysis.SetAssessment(category, assessment)

		switch {
		case assessment.Status == entities.VitalStatusConcerning:
			concerning++
		case assessment.Status.IsAbnormal():
			abnormal++
		}
	}

	switch {
	case concerning > 0:
		analysis.Overall = entities.OverallConcerning
	case abnormal > 1:
		analysis.Overall = entities.OverallAbnormal
	default:
		analysis.Overall = entities.OverallNormal
	}
	analysis.UrgentCare = analysis.Overall == entities.OverallConcerning
	analysis.Recommendations = recommend(&analysis)

	return analysis
}

func recommend(analysis *entities.VitalSignsAnalysis) []string {
	recs := []string{}
	for _, category := range entities.VitalCategories {
		status := analysis.Assessment(category).Status
		if !status.IsAbnormal() {
			continue
		}
		if line, ok := advice[category][status]; ok {
			recs = append(recs, line)
		}
	}

	if analysis.Overall != entities.OverallNormal {
		recs = append(recs, monitorAdvice, recordKeepAdvice)
	}

	if analysis.UrgentCare {
		recs = append([]string{urgentAdvice}, recs...)
	}
	return recs
}
