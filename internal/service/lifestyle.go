package service

import (
	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/pkg/utils"
)

// MaxLifestyleScore bounds the lifestyle sub-score
const MaxLifestyleScore = 20.0

// ScoreLifestyle maps the four lifestyle metrics onto a score in [0, MaxLifestyleScore].
// Inputs outside the documented domain are clamped by the individual rules, never rejected.
func ScoreLifestyle(in domain.LifestyleInputs) (float64, domain.ScoreBreakdown) {
	breakdown := domain.ScoreBreakdown{
		Sleep:     sleepScore(in.SleepHours),
		Stress:    utils.Interp(utils.Clamp(in.StressLevel, 1, 10), 1, 10, 0, 8),
		Hydration: utils.Interp(utils.Clamp(in.Hydration, 0.5, 3.0), 3.0, 0.5, 0, 4),
		Activity:  utils.Interp(utils.Clamp(in.ActivityMinutes, 0, 120), 120, 0, 0, 4),
	}

	return utils.Clamp(breakdown.Sum(), 0, MaxLifestyleScore), breakdown
}

// sleepScore is a step function. The >9 branch is only reached after the short-sleep
// branches, so exactly 9 hours scores 1 and anything above scores 2.
func sleepScore(hours float64) float64 {
	switch {
	case hours < 5:
		return 8
	case hours < 6:
		return 6
	case hours < 7:
		return 3
	case hours > 9:
		return 2
	default:
		return 1
	}
}
