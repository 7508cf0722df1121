package catalog

import (
	"time"

	"github.com/pharmavault/backend/internal/domain/entities"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedMedicines returns a fresh copy of the bundled catalog. Callers may
// mutate the result.
func SeedMedicines() []*entities.Medicine {
	return []*entities.Medicine{
		{
			ID:                   "med-001",
			Name:                 "Paracetamol",
			GenericName:          "Acetaminophen",
			Manufacturer:         "Acme Pharma Ltd.",
			Category:             "Analgesic & Antipyretic",
			Description:          "A widely used over-the-counter pain reliever and fever reducer.",
			Dosage:               "Adults: 500-1000mg every 4-6 hours as needed (max 4g per day). Children: Dosage varies by age and weight.",
			Strength:             "500mg",
			DosageForm:           "Tablet",
			TherapeuticClass:     "Non-opioid analgesic",
			PrescriptionRequired: false,
			SideEffects:          []string{"Nausea (rare)", "Stomach pain (with overdose)", "Allergic reactions (very rare)", "Liver damage (with overdose or chronic use)", "Skin rash (rare)"},
			UsedFor:              []string{"Headache and migraine", "Fever reduction", "Minor aches and pains", "Cold and flu symptoms", "Toothache", "Menstrual pain", "Arthritis pain"},
			Alternatives:         []string{"Ibuprofen", "Aspirin", "Naproxen", "Diclofenac"},
			ExpiryDate:           "2027-12-31",
			Price:                25.50,
			InStock:              true,
			ImageURL:             "https://images.pexels.com/photos/139398/thermometer-headache-pain-pills-139398.jpeg",
			CDSCODrugCode:        "CDSCO-PAR-001",
			FDAApprovalNumber:    "FDA-ANDA-123456",
			RegulatoryStatus:     entities.RegulatoryStatusApproved,
			BatchNumber:          "PAR2025001",
			ManufacturingDate:    "2025-01-15",
			ActiveIngredients:    []entities.ActiveIngredient{{Name: "Paracetamol", Strength: 500, Unit: "mg"}},
			Contraindications:    []string{"Severe liver disease", "Known hypersensitivity to paracetamol", "Chronic alcoholism"},
			Interactions: []entities.DrugInteraction{
				{DrugName: "Warfarin", Severity: entities.InteractionSeverityModerate, Description: "May increase anticoagulant effect", Recommendation: "Monitor INR levels closely"},
				{DrugName: "Alcohol", Severity: entities.InteractionSeveritySevere, Description: "Increased risk of liver toxicity", Recommendation: "Avoid alcohol consumption"},
			},
			PregnancyCategory: "B",
			PharmacyInventory: []entities.PharmacyInventory{
				{PharmacyID: "ph-001", PharmacyName: "MedPlus Pharmacy", Location: "Downtown", Quantity: 150, Price: 25.50, LastUpdated: day("2025-01-20"), Distance: 0.5},
				{PharmacyID: "ph-002", PharmacyName: "Apollo Pharmacy", Location: "City Center", Quantity: 200, Price: 24.00, LastUpdated: day("2025-01-19"), Distance: 1.2},
			},
		},
		{
			ID:                   "med-002",
			Name:                 "Amoxicillin",
			GenericName:          "Amoxicillin Trihydrate",
			Manufacturer:         "MediLabs Pharmaceuticals",
			Category:             "Antibiotic",
			Description:          "A penicillin antibiotic that fights bacteria in the body.",
			Dosage:               "Adults: 250-500mg three times daily. Children: Dosage varies by weight.",
			Strength:             "500mg",
			DosageForm:           "Capsule",
			TherapeuticClass:     "Beta-lactam antibiotic",
			PrescriptionRequired: true,
			SideEffects:          []string{"Diarrhea", "Stomach pain", "Nausea and vomiting", "Rash", "Allergic reactions", "Yeast infections", "Headache"},
			UsedFor:              []string{"Bronchitis", "Pneumonia", "Ear infections", "Urinary tract infections", "Skin and soft tissue infections", "Dental infections", "Sinusitis"},
			Alternatives:         []string{"Azithromycin", "Cephalexin", "Doxycycline", "Clarithromycin"},
			ExpiryDate:           "2027-08-15",
			Price:                149.99,
			InStock:              true,
			ImageURL:             "https://images.pexels.com/photos/3683098/pexels-photo-3683098.jpeg",
			CDSCODrugCode:        "CDSCO-AMX-002",
			FDAApprovalNumber:    "FDA-NDA-789012",
			RegulatoryStatus:     entities.RegulatoryStatusApproved,
			BatchNumber:          "AMX2025002",
			ManufacturingDate:    "2025-02-01",
			ActiveIngredients:    []entities.ActiveIngredient{{Name: "Amoxicillin Trihydrate", Strength: 500, Unit: "mg"}},
			Contraindications:    []string{"Penicillin allergy", "Previous severe allergic reaction to beta-lactam antibiotics", "Infectious mononucleosis"},
			Interactions: []entities.DrugInteraction{
				{DrugName: "Methotrexate", Severity: entities.InteractionSeveritySevere, Description: "May increase methotrexate toxicity", Recommendation: "Monitor methotrexate levels and adjust dose"},
				{DrugName: "Oral contraceptives", Severity: entities.InteractionSeverityModerate, Description: "May reduce contraceptive effectiveness", Recommendation: "Use additional contraceptive methods"},
			},
			PregnancyCategory: "B",
			PharmacyInventory: []entities.PharmacyInventory{
				{PharmacyID: "ph-001", PharmacyName: "MedPlus Pharmacy", Location: "Downtown", Quantity: 75, Price: 149.99, LastUpdated: day("2025-01-18"), Distance: 0.5},
			},
		},
		{
			ID:                   "med-003",
			Name:                 "Lisinopril",
			GenericName:          "Lisinopril",
			Manufacturer:         "Heart Health Inc.",
			Category:             "ACE Inhibitor",
			Description:          "Used to treat high blood pressure and heart failure.",
			Dosage:               "Adults: 10-40mg once daily. Start with lower dose and adjust as needed.",
			Strength:             "10mg",
			DosageForm:           "Tablet",
			TherapeuticClass:     "ACE inhibitor",
			PrescriptionRequired: true,
			SideEffects:          []string{"Dry cough", "Dizziness", "Headache", "Fatigue", "High potassium levels", "Low blood pressure", "Kidney problems"},
			UsedFor:              []string{"Hypertension (high blood pressure)", "Heart failure", "Post heart attack treatment", "Kidney protection in diabetes", "Left ventricular dysfunction"},
			Alternatives:         []string{"Enalapril", "Ramipril", "Losartan", "Valsartan"},
			ExpiryDate:           "2027-10-20",
			Price:                299.50,
			InStock:              true,
			ImageURL:             "https://images.pexels.com/photos/4021808/pexels-photo-4021808.jpeg",
			CDSCODrugCode:        "CDSCO-LIS-003",
			FDAApprovalNumber:    "FDA-NDA-345678",
			RegulatoryStatus:     entities.RegulatoryStatusApproved,
			BatchNumber:          "LIS2025003",
			ManufacturingDate:    "2025-01-10",
			ActiveIngredients:    []entities.ActiveIngredient{{Name: "Lisinopril", Strength: 10, Unit: "mg"}},
			Contraindications:    []string{"Pregnancy", "Angioedema history", "Bilateral renal artery stenosis", "Severe kidney disease"},
			Interactions: []entities.DrugInteraction{
				{DrugName: "Potassium supplements", Severity: entities.InteractionSeverityModerate, Description: "May cause hyperkalemia", Recommendation: "Monitor potassium levels regularly"},
				{DrugName: "NSAIDs", Severity: entities.InteractionSeverityModerate, Description: "May reduce antihypertensive effect", Recommendation: "Monitor blood pressure closely"},
			},
			PregnancyCategory: "D",
			PharmacyInventory: []entities.PharmacyInventory{
				{PharmacyID: "ph-002", PharmacyName: "Apollo Pharmacy", Location: "City Center", Quantity: 100, Price: 299.50, LastUpdated: day("2025-01-21"), Distance: 1.2},
			},
		},
		{
			ID:                   "med-004",
			Name:                 "Metformin",
			GenericName:          "Metformin Hydrochloride",
			Manufacturer:         "DiaCare Pharmaceuticals",
			Category:             "Antidiabetic",
			Description:          "First-line medication for the treatment of type 2 diabetes.",
			Dosage:               "Adults: Start with 500mg twice daily with meals, may increase to 1000mg twice daily.",
			Strength:             "500mg",
			DosageForm:           "Extended-release tablet",
			TherapeuticClass:     "Biguanide antidiabetic",
			PrescriptionRequired: true,
			SideEffects:          []string{"Nausea", "Vomiting", "Diarrhea", "Stomach pain", "Metallic taste", "Lactic acidosis (rare but serious)", "Vitamin B12 deficiency"},
			UsedFor:              []string{"Type 2 diabetes mellitus", "Insulin resistance", "Polycystic ovary syndrome (off-label)", "Prediabetes prevention"},
			Alternatives:         []string{"Glyburide", "Glipizide", "Sitagliptin", "Empagliflozin"},
			ExpiryDate:           "2028-01-15",
			Price:                199.99,
			InStock:              false,
			ImageURL:             "https://images.pexels.com/photos/3683074/pexels-photo-3683074.jpeg",
			CDSCODrugCode:        "CDSCO-MET-004",
			FDAApprovalNumber:    "FDA-NDA-901234",
			RegulatoryStatus:     entities.RegulatoryStatusApproved,
			BatchNumber:          "MET2025004",
			ManufacturingDate:    "2025-01-05",
			ActiveIngredients:    []entities.ActiveIngredient{{Name: "Metformin Hydrochloride", Strength: 500, Unit: "mg"}},
			Contraindications:    []string{"Severe kidney disease", "Metabolic acidosis", "Diabetic ketoacidosis", "Severe liver disease", "Heart failure requiring medication"},
			Interactions: []entities.DrugInteraction{
				{DrugName: "Contrast dye", Severity: entities.InteractionSeveritySevere, Description: "Risk of lactic acidosis", Recommendation: "Discontinue before contrast procedures"},
				{DrugName: "Alcohol", Severity: entities.InteractionSeverityModerate, Description: "Increased risk of lactic acidosis", Recommendation: "Limit alcohol consumption"},
			},
			PregnancyCategory: "B",
			PharmacyInventory: []entities.PharmacyInventory{},
		},
		{
			ID:                   "med-005",
			Name:                 "Atorvastatin",
			GenericName:          "Atorvastatin Calcium",
			Manufacturer:         "LipidCare Pharmaceuticals",
			Category:             "Statin",
			Description:          "Used to lower cholesterol and reduce the risk of heart disease.",
			Dosage:               "Adults: 10-80mg once daily. Start with lower dose and adjust as needed.",
			Strength:             "20mg",
			DosageForm:           "Film-coated tablet",
			TherapeuticClass:     "HMG-CoA reductase inhibitor",
			PrescriptionRequired: true,
			SideEffects:          []string{"Muscle pain", "Liver problems", "Digestive issues", "Headache", "Insomnia", "Memory problems", "Increased blood sugar"},
			UsedFor:              []string{"High cholesterol", "Prevention of heart disease", "Stroke prevention", "Coronary artery disease", "Familial hypercholesterolemia"},
			Alternatives:         []string{"Rosuvastatin", "Simvastatin", "Pravastatin", "Lovastatin"},
			ExpiryDate:           "2027-11-30",
			Price:                399.99,
			InStock:              true,
			ImageURL:             "https://images.pexels.com/photos/3683101/pexels-photo-3683101.jpeg",
			CDSCODrugCode:        "CDSCO-ATO-005",
			FDAApprovalNumber:    "FDA-NDA-567890",
			RegulatoryStatus:     entities.RegulatoryStatusApproved,
			BatchNumber:          "ATO2025005",
			ManufacturingDate:    "2025-01-12",
			ActiveIngredients:    []entities.ActiveIngredient{{Name: "Atorvastatin Calcium", Strength: 20, Unit: "mg"}},
			Contraindications:    []string{"Active liver disease", "Pregnancy", "Breastfeeding", "Known hypersensitivity to atorvastatin"},
			Interactions: []entities.DrugInteraction{
				{DrugName: "Cyclosporine", Severity: entities.InteractionSeveritySevere, Description: "Increased risk of myopathy", Recommendation: "Avoid combination or reduce atorvastatin dose"},
				{DrugName: "Grapefruit juice", Severity: entities.InteractionSeverityModerate, Description: "Increases atorvastatin levels", Recommendation: "Avoid large amounts of grapefruit juice"},
			},
			PregnancyCategory: "X",
			PharmacyInventory: []entities.PharmacyInventory{
				{PharmacyID: "ph-001", PharmacyName: "MedPlus Pharmacy", Location: "Downtown", Quantity: 80, Price: 399.99, LastUpdated: day("2025-01-22"), Distance: 0.5},
				{PharmacyID: "ph-002", PharmacyName: "Apollo Pharmacy", Location: "City Center", Quantity: 120, Price: 389.99, LastUpdated: day("2025-01-20"), Distance: 1.2},
			},
		},
	}
}
