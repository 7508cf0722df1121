package entities

import "time"

// AuthenticityStatus is the verdict of a batch verification.
type AuthenticityStatus string

const (
	AuthenticityAuthentic   AuthenticityStatus = "authentic"
	AuthenticitySuspicious  AuthenticityStatus = "suspicious"
	AuthenticityCounterfeit AuthenticityStatus = "counterfeit"
	AuthenticityExpired     AuthenticityStatus = "expired"
)

// VerificationSource names the registry a verification was checked against.
type VerificationSource string

const (
	VerificationSourceCDSCO VerificationSource = "cdsco"
	VerificationSourceFDA   VerificationSource = "fda"
)

// AuthenticityCheck is the outcome of verifying one batch.
type AuthenticityCheck struct {
	MedicineID         string             `json:"medicine_id"`
	BatchNumber        string             `json:"batch_number"`
	ManufacturingDate  string             `json:"manufacturing_date"`
	ExpiryDate         string             `json:"expiry_date"`
	VerificationStatus AuthenticityStatus `json:"verification_status"`
	VerificationDate   time.Time          `json:"verification_date"`
	VerificationSource VerificationSource `json:"verification_source"`
	Confidence         float64            `json:"confidence"`
	Warnings           []string           `json:"warnings"`
}

// RecallStatus reports whether a medicine is under recall.
type RecallStatus struct {
	IsRecalled  bool   `json:"is_recalled"`
	RecallDate  string `json:"recall_date,omitempty"`
	Reason      string `json:"reason,omitempty"`
	RecallClass string `json:"recall_class,omitempty"`
}
