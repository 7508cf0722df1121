package entities

import (
	"strings"
	"time"
)

// RegulatoryStatus is the approval state recorded for a medicine.
type RegulatoryStatus string

const (
	RegulatoryStatusApproved  RegulatoryStatus = "approved"
	RegulatoryStatusPending   RegulatoryStatus = "pending"
	RegulatoryStatusSuspended RegulatoryStatus = "suspended"
	RegulatoryStatusWithdrawn RegulatoryStatus = "withdrawn"
)

// InteractionSeverity orders drug interactions from least to most serious.
type InteractionSeverity string

const (
	InteractionSeverityNone     InteractionSeverity = "none"
	InteractionSeverityMild     InteractionSeverity = "mild"
	InteractionSeverityModerate InteractionSeverity = "moderate"
	InteractionSeveritySevere   InteractionSeverity = "severe"
)

// Rank returns a comparable weight for the severity.
func (s InteractionSeverity) Rank() int {
	switch s {
	case InteractionSeverityMild:
		return 1
	case InteractionSeverityModerate:
		return 2
	case InteractionSeveritySevere:
		return 3
	default:
		return 0
	}
}

// Medicine is a read-only catalog record.
type Medicine struct {
	ID                   string              `json:"id" db:"id"`
	Name                 string              `json:"name" db:"name"`
	GenericName          string              `json:"generic_name" db:"generic_name"`
	Manufacturer         string              `json:"manufacturer" db:"manufacturer"`
	Category             string              `json:"category" db:"category"`
	Description          string              `json:"description" db:"description"`
	Dosage               string              `json:"dosage" db:"dosage"`
	SideEffects          []string            `json:"side_effects" db:"side_effects"`
	UsedFor              []string            `json:"used_for" db:"used_for"`
	Alternatives         []string            `json:"alternatives" db:"alternatives"`
	ExpiryDate           string              `json:"expiry_date" db:"expiry_date"`
	Price                float64             `json:"price" db:"price"`
	InStock              bool                `json:"in_stock" db:"in_stock"`
	ImageURL             string              `json:"image_url,omitempty" db:"image_url"`
	CDSCODrugCode        string              `json:"cdsco_drug_code,omitempty" db:"cdsco_drug_code"`
	FDAApprovalNumber    string              `json:"fda_approval_number,omitempty" db:"fda_approval_number"`
	RegulatoryStatus     RegulatoryStatus    `json:"regulatory_status" db:"regulatory_status"`
	BatchNumber          string              `json:"batch_number" db:"batch_number"`
	ManufacturingDate    string              `json:"manufacturing_date" db:"manufacturing_date"`
	ActiveIngredients    []ActiveIngredient  `json:"active_ingredients" db:"active_ingredients"`
	Contraindications    []string            `json:"contraindications" db:"contraindications"`
	Interactions         []DrugInteraction   `json:"interactions" db:"interactions"`
	PregnancyCategory    string              `json:"pregnancy_category" db:"pregnancy_category"`
	PrescriptionRequired bool                `json:"prescription_required" db:"prescription_required"`
	Strength             string              `json:"strength" db:"strength"`
	DosageForm           string              `json:"dosage_form" db:"dosage_form"`
	TherapeuticClass     string              `json:"therapeutic_class" db:"therapeutic_class"`
	PharmacyInventory    []PharmacyInventory `json:"pharmacy_inventory" db:"pharmacy_inventory"`
}

// ActiveIngredient is one component of a formulation.
type ActiveIngredient struct {
	Name     string  `json:"name"`
	Strength float64 `json:"strength"`
	Unit     string  `json:"unit"`
}

// DrugInteraction describes a known interaction with another drug, matched by
// name against other medicines.
type DrugInteraction struct {
	DrugName       string              `json:"drug_name"`
	Severity       InteractionSeverity `json:"severity"`
	Description    string              `json:"description"`
	Recommendation string              `json:"recommendation"`
}

// PharmacyInventory is the stock of one medicine at one pharmacy.
type PharmacyInventory struct {
	PharmacyID   string    `json:"pharmacy_id"`
	PharmacyName string    `json:"pharmacy_name"`
	Location     string    `json:"location"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	LastUpdated  time.Time `json:"last_updated"`
	Distance     float64   `json:"distance,omitempty"`
}

// TotalInventory sums stock across all pharmacies.
func (m *Medicine) TotalInventory() int {
	total := 0
	for _, inv := range m.PharmacyInventory {
		total += inv.Quantity
	}
	return total
}

// IsAntibiotic reports whether the medicine belongs to an antibiotic class.
func (m *Medicine) IsAntibiotic() bool {
	return strings.Contains(strings.ToLower(m.TherapeuticClass), "antibiotic")
}

// MatchesName reports whether name equals the brand or generic name,
// ignoring case.
func (m *Medicine) MatchesName(name string) bool {
	return strings.EqualFold(m.Name, name) || strings.EqualFold(m.GenericName, name)
}
