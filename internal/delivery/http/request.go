package http

import (
	"fmt"
	"strings"

	"github.com/maternalrisk/backend/internal/domain"
)

// PredictRequest is the JSON body of a prediction request. Pointer fields distinguish
// a missing field from a zero value.
type PredictRequest struct {
	Age             *float64 `json:"age"`
	SystolicBP      *float64 `json:"systolic_bp"`
	HeartRate       *float64 `json:"heart_rate"`
	SleepHours      *float64 `json:"sleep_hours"`
	StressLevel     *float64 `json:"stress_level"`
	Hydration       *float64 `json:"hydration"`
	ActivityMinutes *float64 `json:"activity_minutes"`
	State           string   `json:"state"`
}

type fieldRange struct {
	name     string
	value    *float64
	min, max float64
}

// Validate checks every field against its documented domain and builds the assessment request
func (r PredictRequest) Validate() (domain.AssessmentRequest, error) {
	ranges := []fieldRange{
		{"age", r.Age, 15, 60},
		{"systolic_bp", r.SystolicBP, 80, 200},
		{"heart_rate", r.HeartRate, 40, 200},
		{"sleep_hours", r.SleepHours, 0, 14},
		{"stress_level", r.StressLevel, 1, 10},
		{"hydration", r.Hydration, 0.5, 4},
		{"activity_minutes", r.ActivityMinutes, 0, 300},
	}

	var fields []domain.FieldError
	for _, fr := range ranges {
		switch {
		case fr.value == nil:
			fields = append(fields, domain.FieldError{Field: fr.name, Message: "is required"})
		case !(*fr.value >= fr.min && *fr.value <= fr.max):
			fields = append(fields, domain.FieldError{
				Field:   fr.name,
				Message: fmt.Sprintf("must be between %g and %g", fr.min, fr.max),
			})
		}
	}
	if strings.TrimSpace(r.State) == "" {
		fields = append(fields, domain.FieldError{Field: "state", Message: "is required"})
	}

	if len(fields) > 0 {
		return domain.AssessmentRequest{}, &domain.ValidationError{Fields: fields}
	}

	return domain.AssessmentRequest{
		Vitals: domain.Vitals{
			Age:        *r.Age,
			SystolicBP: *r.SystolicBP,
			HeartRate:  *r.HeartRate,
		},
		Lifestyle: domain.LifestyleInputs{
			SleepHours:      *r.SleepHours,
			StressLevel:     *r.StressLevel,
			Hydration:       *r.Hydration,
			ActivityMinutes: *r.ActivityMinutes,
		},
		Region: r.State,
	}, nil
}
