package entities

import "time"

// Prescription is a parsed prescription, either entered directly or
// extracted from OCR text.
type Prescription struct {
	ID          string               `json:"id"`
	PatientName string               `json:"patient_name"`
	DoctorName  string               `json:"doctor_name"`
	Date        string               `json:"date"`
	Medicines   []PrescribedMedicine `json:"medicines"`
	Diagnosis   string               `json:"diagnosis,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PrescribedMedicine is one line of a prescription.
type PrescribedMedicine struct {
	MedicineID   string `json:"medicine_id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions,omitempty"`
	Quantity     int    `json:"quantity"`
}

// DetectedInteraction is a drug interaction found between two medicines.
type DetectedInteraction struct {
	Medicine1      string              `json:"medicine1"`
	Medicine2      string              `json:"medicine2"`
	Severity       InteractionSeverity `json:"severity"`
	Description    string              `json:"description"`
	Recommendation string              `json:"recommendation"`
}

// InteractionCheck summarises interactions among a set of medicines.
type InteractionCheck struct {
	HasInteractions bool                  `json:"has_interactions"`
	Severity        InteractionSeverity   `json:"severity"`
	Interactions    []DetectedInteraction `json:"interactions"`
	Recommendations []string              `json:"recommendations"`
	Alternatives    []string              `json:"alternatives,omitempty"`
}

// AvailabilitySummary counts how many prescribed medicines can be sourced.
type AvailabilitySummary struct {
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
	Total       int `json:"total"`
}

// PrescriptionAnalysis is the safety and cost review of a prescription.
type PrescriptionAnalysis struct {
	Prescription      *Prescription       `json:"prescription"`
	Interactions      InteractionCheck    `json:"interactions"`
	DosageWarnings    []string            `json:"dosage_warnings"`
	Contraindications []string            `json:"contraindications"`
	Recommendations   []string            `json:"recommendations"`
	TotalCost         float64             `json:"total_cost"`
	Availability      AvailabilitySummary `json:"availability"`
}
