package entities

// VitalSigns holds readings extracted from free text. A nil field was not
// found in the input; zero is a real reading.
type VitalSigns struct {
	HeartRate        *int     `json:"heart_rate,omitempty"`
	SystolicBP       *int     `json:"systolic_bp,omitempty"`
	DiastolicBP      *int     `json:"diastolic_bp,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"` // Fahrenheit
	OxygenSaturation *int     `json:"oxygen_saturation,omitempty"`
	RespiratoryRate  *int     `json:"respiratory_rate,omitempty"`
	BloodSugar       *int     `json:"blood_sugar,omitempty"`
}

// HasBloodPressure reports whether both halves of a blood pressure reading
// are present.
func (v VitalSigns) HasBloodPressure() bool {
	return v.SystolicBP != nil && v.DiastolicBP != nil
}

// IsEmpty reports whether no category was detected.
func (v VitalSigns) IsEmpty() bool {
	return v.HeartRate == nil && !v.HasBloodPressure() && v.Temperature == nil &&
		v.OxygenSaturation == nil && v.RespiratoryRate == nil && v.BloodSugar == nil
}

// VitalCategory identifies one of the six assessed vital sign groups.
type VitalCategory string

const (
	VitalHeartRate        VitalCategory = "heartRate"
	VitalBloodPressure    VitalCategory = "bloodPressure"
	VitalTemperature      VitalCategory = "temperature"
	VitalOxygenSaturation VitalCategory = "oxygenSaturation"
	VitalRespiratoryRate  VitalCategory = "respiratoryRate"
	VitalBloodSugar       VitalCategory = "bloodSugar"
)

// VitalCategories lists every category in presentation order.
var VitalCategories = []VitalCategory{
	VitalHeartRate,
	VitalBloodPressure,
	VitalTemperature,
	VitalOxygenSaturation,
	VitalRespiratoryRate,
	VitalBloodSugar,
}

// VitalStatus is the tier a single reading falls into.
type VitalStatus string

const (
	VitalStatusNormal      VitalStatus = "normal"
	VitalStatusLow         VitalStatus = "low"
	VitalStatusHigh        VitalStatus = "high"
	VitalStatusConcerning  VitalStatus = "concerning"
	VitalStatusNotProvided VitalStatus = "not_provided"
)

// IsAbnormal reports whether the status is high or low.
func (s VitalStatus) IsAbnormal() bool {
	return s == VitalStatusHigh || s == VitalStatusLow
}

// OverallStatus is the aggregate tier of an analysis.
type OverallStatus string

const (
	OverallNormal     OverallStatus = "normal"
	OverallAbnormal   OverallStatus = "abnormal"
	OverallConcerning OverallStatus = "concerning"
)

// VitalSignAssessment is the classification of one category.
type VitalSignAssessment struct {
	Status         VitalStatus `json:"status"`
	Value          *float64    `json:"value,omitempty"`
	NormalRange    string      `json:"normal_range"`
	Interpretation string      `json:"interpretation"`
}

// VitalSignsAnalysis aggregates the six assessments.
type VitalSignsAnalysis struct {
	Overall          OverallStatus       `json:"overall"`
	HeartRate        VitalSignAssessment `json:"heart_rate"`
	BloodPressure    VitalSignAssessment `json:"blood_pressure"`
	Temperature      VitalSignAssessment `json:"temperature"`
	OxygenSaturation VitalSignAssessment `json:"oxygen_saturation"`
	RespiratoryRate  VitalSignAssessment `json:"respiratory_rate"`
	BloodSugar       VitalSignAssessment `json:"blood_sugar"`
	Recommendations  []string            `json:"recommendations"`
	UrgentCare       bool                `json:"urgent_care"`
}

// Assessment returns the assessment stored for category.
func (a *VitalSignsAnalysis) Assessment(category VitalCategory) VitalSignAssessment {
	return *a.slot(category)
}

// SetAssessment stores the assessment for category.
func (a *VitalSignsAnalysis) SetAssessment(category VitalCategory, assessment VitalSignAssessment) {
	*a.slot(category) = assessment
}

func (a *VitalSignsAnalysis) slot(category VitalCategory) *VitalSignAssessment {
	switch category {
	case VitalHeartRate:
		return &a.HeartRate
	case VitalBloodPressure:
		return &a.BloodPressure
	case VitalTemperature:
		return &a.Temperature
	case VitalOxygenSaturation:
		return &a.OxygenSaturation
	case VitalRespiratoryRate:
		return &a.RespiratoryRate
	case VitalBloodSugar:
		return &a.BloodSugar
	}
	panic("entities: unknown vital category " + string(category))
}
