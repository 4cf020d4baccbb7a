package domain

// Vitals are the clinical features fed to the classifier
type Vitals struct {
	Age        float64 `json:"age"`
	SystolicBP float64 `json:"systolic_bp"`
	HeartRate  float64 `json:"heart_rate"`
}

// Features returns the vitals in the order the classifier was trained on
func (v Vitals) Features() []float64 {
	return []float64{v.Age, v.SystolicBP, v.HeartRate}
}

// Echo returns the vitals keyed by their display labels
func (v Vitals) Echo() map[string]float64 {
	return map[string]float64{
		"Age":         v.Age,
		"Systolic BP": v.SystolicBP,
		"Heart Rate":  v.HeartRate,
	}
}

// AssessmentRequest is the full input of one risk assessment
type AssessmentRequest struct {
	Vitals    Vitals
	Lifestyle LifestyleInputs
	Region    string
}

// Category is the discrete risk tier
type Category string

const (
	CategoryLow      Category = "Low"
	CategoryModerate Category = "Moderate"
	CategoryHigh     Category = "High"
)

// CompositeResult is the output of one assessment
type CompositeResult struct {
	FinalScore         float64            `json:"final_score"`
	Category           Category           `json:"category"`
	MLScore            float64            `json:"ml_score"`
	LifestyleScore     float64            `json:"lifestyle_score"`
	NFHSScore          float64            `json:"nfhs_score"`
	MLProbability      float64            `json:"ml_probability"`
	LifestyleBreakdown ScoreBreakdown     `json:"lifestyle_breakdown"`
	Vitals             map[string]float64 `json:"vitals"`
}
