package domain

import (
	"context"
)

// IndicatorSource reads the raw region indicator dataset.
// Implementations live under internal/repository.
type IndicatorSource interface {
	// Name identifies the source in logs
	Name() string

	// LoadRecords reads every region row
	LoadRecords(ctx context.Context) ([]RegionRecord, error)
}

// Classifier is the pre-trained clinical risk model
type Classifier interface {
	// PredictProbability returns the probability of high clinical risk in [0,1]
	PredictProbability(ctx context.Context, v Vitals) (float64, error)
}
