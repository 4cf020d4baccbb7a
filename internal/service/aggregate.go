package service

import (
	"github.com/maternalrisk/backend/internal/domain"
)

const (
	// MLScoreWeight converts the classifier probability into the clinical sub-score
	MLScoreWeight = 60.0

	lowUpperBound      = 30.0
	moderateUpperBound = 60.0
)

// Aggregate sums the three sub-scores and categorizes the total. The sum is not clamped.
func Aggregate(mlScore, lifestyleScore, nfhsScore float64) (float64, domain.Category) {
	total := mlScore + lifestyleScore + nfhsScore
	return total, Categorize(total)
}

// Categorize returns the risk tier for a final score. Both thresholds belong to the lower tier.
func Categorize(total float64) domain.Category {
	switch {
	case total <= lowUpperBound:
		return domain.CategoryLow
	case total <= moderateUpperBound:
		return domain.CategoryModerate
	default:
		return domain.CategoryHigh
	}
}
