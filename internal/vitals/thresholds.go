package vitals

import (
	"github.com/pharmavault/backend/internal/domain/entities"
)

// reading is the numeric input to a threshold ladder. Secondary is only
// meaningful for blood pressure (diastolic).
type reading struct {
	primary   float64
	secondary float64
}

// band is one rung of a threshold ladder.
type band struct {
	matches        func(r reading) bool
	status         entities.VitalStatus
	interpretation string
}

// ladder classifies one category. Bands are checked in order, most severe
// first; the first match wins and normal is the fallthrough.
type ladder struct {
	label       string
	unit        string
	normalRange string
	normalText  string
	bands       []band
}

var ladders = map[entities.VitalCategory]ladder{
	entities.VitalHeartRate: {
		label:       "Heart Rate",
		unit:        "bpm",
		normalRange: "60-100 bpm",
		normalText:  "Within normal range",
		bands: []band{
			{func(r reading) bool { return r.primary < 50 }, entities.VitalStatusConcerning,
				"Significantly low heart rate (bradycardia) - may indicate heart problems"},
			{func(r reading) bool { return r.primary > 120 }, entities.VitalStatusConcerning,
				"Significantly elevated heart rate (tachycardia) - may indicate stress, fever, or heart issues"},
			{func(r reading) bool { return r.primary < 60 }, entities.VitalStatusLow,
				"Below normal range - could be due to fitness, medications, or heart conditions"},
			{func(r reading) bool { return r.primary > 100 }, entities.VitalStatusHigh,
				"Above normal range - could be due to activity, stress, caffeine, or anxiety"},
		},
	},
	entities.VitalBloodPressure: {
		label:       "Blood Pressure",
		unit:        "mmHg",
		normalRange: "90-120/60-80 mmHg",
		normalText:  "Within normal range",
		bands: []band{
			{func(r reading) bool { return r.primary >= 180 || r.secondary >= 110 }, entities.VitalStatusConcerning,
				"Hypertensive crisis - requires immediate medical attention"},
			{func(r reading) bool { return r.primary < 90 || r.secondary < 60 }, entities.VitalStatusLow,
				"Low blood pressure (hypotension) - may cause dizziness or fainting"},
			{func(r reading) bool { return r.primary >= 140 || r.secondary >= 90 }, entities.VitalStatusHigh,
				"High blood pressure (hypertension) - should be monitored and managed"},
			{func(r reading) bool { return r.primary >= 130 || r.secondary >= 80 }, entities.VitalStatusHigh,
				"Elevated blood pressure - lifestyle changes may be beneficial"},
		},
	},
	entities.VitalTemperature: {
		label:       "Temperature",
		unit:        "°F",
		normalRange: "97.8-99.1°F (36.5-37.3°C)",
		normalText:  "Within normal range",
		bands: []band{
			{func(r reading) bool { return r.primary >= 103 }, entities.VitalStatusConcerning,
				"High fever - requires immediate medical attention"},
			{func(r reading) bool { return r.primary < 95 }, entities.VitalStatusConcerning,
				"Hypothermia - dangerously low body temperature"},
			{func(r reading) bool { return r.primary >= 100.4 }, entities.VitalStatusHigh,
				"Fever present - body is fighting infection or illness"},
			{func(r reading) bool { return r.primary > 99.1 }, entities.VitalStatusHigh,
				"Slightly elevated - may indicate early illness or activity"},
			{func(r reading) bool { return r.primary < 97.8 }, entities.VitalStatusLow,
				"Below normal - may indicate poor circulation or environmental factors"},
		},
	},
	entities.VitalOxygenSaturation: {
		label:       "Oxygen Saturation",
		unit:        "%",
		normalRange: "95-100%",
		normalText:  "Within normal range",
		bands: []band{
			{func(r reading) bool { return r.primary < 90 }, entities.VitalStatusConcerning,
				"Severely low oxygen levels - requires immediate medical attention"},
			{func(r reading) bool { return r.primary < 95 }, entities.VitalStatusLow,
				"Below normal - may indicate respiratory or circulation problems"},
		},
	},
	entities.VitalRespiratoryRate: {
		label:       "Respiratory Rate",
		unit:        "breaths/min",
		normalRange: "12-20 breaths/min",
		normalText:  "Within normal range",
		bands: []band{
			{func(r reading) bool { return r.primary < 8 || r.primary > 30 }, entities.VitalStatusConcerning,
				"Abnormal breathing rate - requires medical evaluation"},
			{func(r reading) bool { return r.primary < 12 }, entities.VitalStatusLow,
				"Below normal - may indicate respiratory depression"},
			{func(r reading) bool { return r.primary > 20 }, entities.VitalStatusHigh,
				"Above normal - may indicate respiratory distress or anxiety"},
		},
	},
	entities.VitalBloodSugar: {
		label:       "Blood Sugar",
		unit:        "mg/dL",
		normalRange: "70-140 mg/dL (varies by timing)",
		normalText:  "Within acceptable range",
		bands: []band{
			{func(r reading) bool { return r.primary < 54 }, entities.VitalStatusConcerning,
				"Severely low blood sugar (hypoglycemia) - requires immediate treatment"},
			{func(r reading) bool { return r.primary > 250 }, entities.VitalStatusConcerning,
				"Very high blood sugar - requires medical attention"},
			{func(r reading) bool { return r.primary < 70 }, entities.VitalStatusLow,
				"Low blood sugar - may cause symptoms like shakiness or dizziness"},
			{func(r reading) bool { return r.primary > 180 }, entities.VitalStatusHigh,
				"Elevated blood sugar - may indicate diabetes or recent meal"},
		},
	},
}

// notProvidedText is the interpretation for a category missing from input.
var notProvidedText = map[entities.VitalCategory]string{
	entities.VitalHeartRate:        "Heart rate not provided",
	entities.VitalBloodPressure:    "Blood pressure not provided",
	entities.VitalTemperature:      "Temperature not provided",
	entities.VitalOxygenSaturation: "Oxygen saturation not provided",
	entities.VitalRespiratoryRate:  "Respiratory rate not provided",
	entities.VitalBloodSugar:       "Blood sugar not provided",
}

// advice is keyed by (category, status) for high and low assessments.
var advice = map[entities.VitalCategory]map[entities.VitalStatus]string{
	entities.VitalHeartRate: {
		entities.VitalStatusHigh: "Try relaxation techniques, avoid caffeine, and rest",
		entities.VitalStatusLow:  "Monitor for symptoms like dizziness or fatigue",
	},
	entities.VitalBloodPressure: {
		entities.VitalStatusHigh: "Reduce sodium intake, exercise regularly, and manage stress",
		entities.VitalStatusLow:  "Stay hydrated, avoid sudden position changes, and eat regular meals",
	},
	entities.VitalTemperature: {
		entities.VitalStatusHigh: "Stay hydrated, rest, and consider fever-reducing medication",
		entities.VitalStatusLow:  "Keep warm and monitor for other symptoms",
	},
	entities.VitalOxygenSaturation: {
		entities.VitalStatusLow: "Ensure good posture, practice deep breathing, and avoid smoke",
	},
	entities.VitalRespiratoryRate: {
		entities.VitalStatusHigh: "Practice slow, deep breathing and rest in a calm environment",
		entities.VitalStatusLow:  "Monitor your breathing closely and avoid sedating substances",
	},
	entities.VitalBloodSugar: {
		entities.VitalStatusHigh: "Limit sugary foods and drinks and follow your diabetes care plan",
		entities.VitalStatusLow:  "Eat or drink a fast-acting source of sugar and recheck your level",
	},
}

const (
	urgentAdvice     = "Seek immediate medical attention"
	monitorAdvice    = "Monitor your vital signs regularly"
	recordKeepAdvice = "Keep a record of your readings to share with healthcare providers"
)
