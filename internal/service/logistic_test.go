package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maternalrisk/backend/internal/domain"
)

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadLogisticModel(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	path := writeModel(t, `{"intercept": -1.5, "coefficients": [0.01, 0.02, 0.03]}`)

	m, err := LoadLogisticModel(missing, path)
	require.NoError(t, err)
	assert.Equal(t, -1.5, m.Intercept)
	assert.Equal(t, []float64{0.01, 0.02, 0.03}, m.Coefficients)
}

func TestLoadLogisticModel_Errors(t *testing.T) {
	_, err := LoadLogisticModel(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to locate model")

	_, err = LoadLogisticModel(writeModel(t, `{"intercept": 0, "coefficients": [1, 2]}`))
	assert.Error(t, err)

	_, err = LoadLogisticModel(writeModel(t, `not json`))
	assert.Error(t, err)
}

func TestLogisticModel_PredictProbability(t *testing.T) {
	m := &LogisticModel{Coefficients: []float64{0, 0, 0}}
	p, err := m.PredictProbability(context.Background(), testVitals)
	require.NoError(t, err)
	assert.Equal(t, 0.5, p)

	m = &LogisticModel{Intercept: -20, Coefficients: []float64{0, 0.1, 0.05}}
	// z = -20 + 12 + 4 = -4
	p, err = m.PredictProbability(context.Background(), testVitals)
	require.NoError(t, err)
	assert.InDelta(t, 0.017986, p, 1e-6)
}

func TestLogisticModel_Failures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := &LogisticModel{Coefficients: []float64{0, 0, 0}}
	_, err := m.PredictProbability(ctx, testVitals)
	assert.True(t, errors.Is(err, domain.ErrInferenceFailure))

	bad := &LogisticModel{Coefficients: []float64{1}}
	_, err = bad.PredictProbability(context.Background(), testVitals)
	assert.True(t, errors.Is(err, domain.ErrInferenceFailure))
}
