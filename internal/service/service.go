package service

import (
	"github.com/maternalrisk/backend/internal/domain"
)

// IndicatorSource is re-exported from domain for convenience
type IndicatorSource = domain.IndicatorSource

// Classifier is re-exported from domain for convenience
type Classifier = domain.Classifier
