package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/maternalrisk/backend/internal/domain"
)

// MLBridge handles communication with the Python model server.
// It implements domain.Classifier.
type MLBridge struct {
	serviceURL string
	httpClient *http.Client
}

type predictProbaRequest struct {
	Features [][]float64 `json:"features"`
}

type predictProbaResponse struct {
	Probabilities [][]float64 `json:"probabilities"`
}

// NewMLBridge creates a new ML bridge
func NewMLBridge(serviceURL string, timeout time.Duration) *MLBridge {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MLBridge{
		serviceURL: strings.TrimRight(serviceURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PredictProbability asks the model server for class probabilities and returns the
// positive-class probability. Every failure wraps domain.ErrInferenceFailure.
func (b *MLBridge) PredictProbability(ctx context.Context, v domain.Vitals) (float64, error) {
	body, err := json.Marshal(predictProbaRequest{Features: [][]float64{v.Features()}})
	if err != nil {
		return 0, fmt.Errorf("%w: ml_bridge: failed to marshal request: %w", domain.ErrInferenceFailure, err)
	}

	url := fmt.Sprintf("%s/predict_proba", b.serviceURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: ml_bridge: failed to create request: %w", domain.ErrInferenceFailure, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("%w: ml_bridge: request failed: %w", domain.ErrInferenceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: ml_bridge: model server returned status %d", domain.ErrInferenceFailure, resp.StatusCode)
	}

	var prediction predictProbaResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return 0, fmt.Errorf("%w: ml_bridge: failed to decode response: %w", domain.ErrInferenceFailure, err)
	}

	if len(prediction.Probabilities) != 1 || len(prediction.Probabilities[0]) != 2 {
		return 0, fmt.Errorf("%w: ml_bridge: expected one row of two class probabilities", domain.ErrInferenceFailure)
	}

	return prediction.Probabilities[0][1], nil
}

// Health checks ML service connectivity
func (b *MLBridge) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ml_bridge: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ml_bridge: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml_bridge: health check returned status %d", resp.StatusCode)
	}

	return nil
}
