package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/maternalrisk/backend/internal/domain"
)

// DefaultModelPaths are searched in order when no model path is configured
var DefaultModelPaths = []string{
	"/mnt/data/stacking_model_v2.json",
	"data/stacking_model.json",
}

// LogisticModel is an in-process binary logistic regression over the vitals features.
// It implements domain.Classifier.
type LogisticModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// LoadLogisticModel reads the first existing model file among paths
func LoadLogisticModel(paths ...string) (*LogisticModel, error) {
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("logistic: failed to read model %s: %w", path, err)
		}

		var m LogisticModel
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("logistic: failed to decode model %s: %w", path, err)
		}
		if err := m.validate(); err != nil {
			return nil, fmt.Errorf("logistic: invalid model %s: %w", path, err)
		}
		return &m, nil
	}

	return nil, fmt.Errorf("logistic: unable to locate model, searched: %s", strings.Join(paths, ", "))
}

func (m *LogisticModel) validate() error {
	if n := len(domain.Vitals{}.Features()); len(m.Coefficients) != n {
		return fmt.Errorf("expected %d coefficients, got %d", n, len(m.Coefficients))
	}
	for _, c := range append([]float64{m.Intercept}, m.Coefficients...) {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.New("coefficients must be finite")
		}
	}
	return nil
}

// PredictProbability implements domain.Classifier
func (m *LogisticModel) PredictProbability(ctx context.Context, v domain.Vitals) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInferenceFailure, err)
	}
	if err := m.validate(); err != nil {
		return 0, fmt.Errorf("%w: logistic: %w", domain.ErrInferenceFailure, err)
	}

	z := m.Intercept
	for i, x := range v.Features() {
		z += m.Coefficients[i] * x
	}
	return 1 / (1 + math.Exp(-z)), nil
}
