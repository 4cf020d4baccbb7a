package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/internal/metrics"
	"github.com/maternalrisk/backend/pkg/utils"
)

// RiskService combines the clinical, lifestyle and demographic sub-scores
type RiskService struct {
	classifier  Classifier
	store       *DatasetStore
	demographic *DemographicScorer

	log     *logrus.Logger
	metrics *metrics.Metrics
}

// NewRiskService creates a new risk service
func NewRiskService(classifier Classifier, store *DatasetStore, log *logrus.Logger, m *metrics.Metrics) *RiskService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RiskService{
		classifier:  classifier,
		store:       store,
		demographic: NewDemographicScorer(store),
		log:         log,
		metrics:     m,
	}
}

// Assess scores one request. The classifier and the lifestyle rules run concurrently;
// the region is resolved afterwards, so an inference failure is reported before an unknown region.
func (s *RiskService) Assess(ctx context.Context, req domain.AssessmentRequest) (domain.CompositeResult, error) {
	var (
		probability    float64
		lifestyleScore float64
		breakdown      domain.ScoreBreakdown
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		p, err := s.classifier.PredictProbability(gctx, req.Vitals)
		s.metrics.ObserveClassifier(time.Since(start))
		if err != nil {
			if !errors.Is(err, domain.ErrInferenceFailure) {
				err = fmt.Errorf("%w: %w", domain.ErrInferenceFailure, err)
			}
			return err
		}
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: probability %v outside [0,1]", domain.ErrInferenceFailure, p)
		}
		probability = p
		return nil
	})

	g.Go(func() error {
		lifestyleScore, breakdown = ScoreLifestyle(req.Lifestyle)
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.CompositeResult{}, s.fail(req, err)
	}

	nfhsScore, err := s.demographic.Score(ctx, req.Region)
	if err != nil {
		return domain.CompositeResult{}, s.fail(req, err)
	}

	mlScore := probability * MLScoreWeight
	finalScore, category := Aggregate(mlScore, lifestyleScore, nfhsScore)

	s.metrics.ObserveAssessment(string(category), finalScore)
	s.log.WithFields(logrus.Fields{
		"region":      req.Region,
		"probability": probability,
		"final_score": finalScore,
		"category":    category,
	}).Debug("Risk assessment completed")

	return domain.CompositeResult{
		FinalScore:     utils.RoundTo(finalScore, 2),
		Category:       category,
		MLScore:        utils.RoundTo(mlScore, 2),
		LifestyleScore: utils.RoundTo(lifestyleScore, 2),
		NFHSScore:      utils.RoundTo(nfhsScore, 2),
		MLProbability:  utils.RoundTo(probability, 4),
		LifestyleBreakdown: domain.ScoreBreakdown{
			Sleep:     utils.RoundTo(breakdown.Sleep, 2),
			Stress:    utils.RoundTo(breakdown.Stress, 2),
			Hydration: utils.RoundTo(breakdown.Hydration, 2),
			Activity:  utils.RoundTo(breakdown.Activity, 2),
		},
		Vitals: req.Vitals.Echo(),
	}, nil
}

// Regions returns the sorted region names of the loaded dataset
func (s *RiskService) Regions(ctx context.Context) ([]string, error) {
	return s.store.ListRegions(ctx)
}

func (s *RiskService) fail(req domain.AssessmentRequest, err error) error {
	kind := ErrorKind(err)
	s.metrics.IncAssessmentError(kind)
	s.log.WithError(err).WithFields(logrus.Fields{
		"region": req.Region,
		"kind":   kind,
	}).Warn("Risk assessment failed")
	return err
}

// ErrorKind classifies an assessment error for metrics and logs
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrRegionNotFound):
		return "region_not_found"
	case errors.Is(err, domain.ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, domain.ErrInferenceFailure):
		return "inference_failure"
	default:
		return "internal"
	}
}
