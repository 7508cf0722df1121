package entities

// ComparisonCriteria selects which axes a comparison scores. Alternatives
// does not contribute a score; it asks for catalog alternatives alongside
// each metric.
type ComparisonCriteria struct {
	Price         bool `json:"price"`
	Effectiveness bool `json:"effectiveness"`
	SideEffects   bool `json:"side_effects"`
	Availability  bool `json:"availability"`
	Alternatives  bool `json:"alternatives"`
}

// AllCriteria enables every axis.
func AllCriteria() ComparisonCriteria {
	return ComparisonCriteria{Price: true, Effectiveness: true, SideEffects: true, Availability: true, Alternatives: true}
}

// ComparisonScores are per-criterion scores in [0,100]. Disabled criteria
// stay zero.
type ComparisonScores struct {
	Price         float64 `json:"price"`
	Effectiveness float64 `json:"effectiveness"`
	SideEffects   float64 `json:"side_effects"`
	Availability  float64 `json:"availability"`
	Overall       float64 `json:"overall"`
}

// RecommendationTier is the fixed advisory attached to a metric.
type RecommendationTier string

const (
	RecommendationHighlyRecommended   RecommendationTier = "Highly recommended based on selected criteria"
	RecommendationGoodWithTradeOffs   RecommendationTier = "Good option with some trade-offs"
	RecommendationConsiderAlternative RecommendationTier = "Consider alternatives or consult healthcare provider"
)

// ComparisonMetric is the scored view of one compared medicine.
type ComparisonMetric struct {
	MedicineID     string             `json:"medicine_id"`
	Scores         ComparisonScores   `json:"scores"`
	Pros           []string           `json:"pros"`
	Cons           []string           `json:"cons"`
	Recommendation RecommendationTier `json:"recommendation"`
	Alternatives   []*Medicine        `json:"alternatives,omitempty"`
}

// ComparisonResult is the outcome of one comparison run. Metrics follow the
// order of Medicines.
type ComparisonResult struct {
	Medicines []*Medicine         `json:"medicines"`
	Criteria  ComparisonCriteria  `json:"criteria"`
	Metrics   []*ComparisonMetric `json:"metrics"`
}
