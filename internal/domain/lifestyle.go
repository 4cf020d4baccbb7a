package domain

// LifestyleInputs holds self-reported lifestyle metrics for one assessment
type LifestyleInputs struct {
	SleepHours      float64 `json:"sleep_hours"`
	StressLevel     float64 `json:"stress_level"`
	Hydration       float64 `json:"hydration"`
	ActivityMinutes float64 `json:"activity_minutes"`
}

// ScoreBreakdown is the per-metric decomposition of a lifestyle score
type ScoreBreakdown struct {
	Sleep     float64 `json:"sleep"`
	Stress    float64 `json:"stress"`
	Hydration float64 `json:"hydration"`
	Activity  float64 `json:"activity"`
}

// Sum returns the unclamped total of all contributions
func (b ScoreBreakdown) Sum() float64 {
	return b.Sleep + b.Stress + b.Hydration + b.Activity
}
