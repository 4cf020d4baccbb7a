package service

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/internal/repository/memory"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// countingSource counts LoadRecords calls and can fail the first failFirst of them
type countingSource struct {
	records   []domain.RegionRecord
	delay     time.Duration
	failFirst int32
	calls     atomic.Int32
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) LoadRecords(ctx context.Context) ([]domain.RegionRecord, error) {
	n := s.calls.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if n <= s.failFirst {
		return nil, errors.New("source offline")
	}
	return s.records, nil
}

type stubClassifier struct {
	prob  float64
	err   error
	calls atomic.Int32
}

func (c *stubClassifier) PredictProbability(_ context.Context, _ domain.Vitals) (float64, error) {
	c.calls.Add(1)
	return c.prob, c.err
}

func text(s string) domain.Cell { return domain.TextCell(s) }

func testRecords() []domain.RegionRecord {
	return []domain.RegionRecord{
		{Region: "Kerala", Indicators: map[string]domain.Cell{
			ProtectiveIndicators[0]: text("80"),
			ProtectiveIndicators[1]: text("60%"),
			ProtectiveIndicators[2]: text("NA"),
			ProtectiveIndicators[3]: text("abc"),
			RiskIndicators[0]:       text("20%"),
			RiskIndicators[1]:       text(" 10 "),
			RiskIndicators[2]:       text("*"),
		}},
		{Region: " Bihar", Indicators: map[string]domain.Cell{
			ProtectiveIndicators[0]: text("40"),
			ProtectiveIndicators[1]: text("na"),
			RiskIndicators[0]:       text("10"),
		}},
		{Region: "Bihar ", Indicators: map[string]domain.Cell{
			ProtectiveIndicators[0]: text("60"),
			ProtectiveIndicators[1]: text("30"),
			RiskIndicators[0]:       domain.NumberCell(30),
		}},
		{Region: "Ladakh", Indicators: map[string]domain.Cell{
			ProtectiveIndicators[0]: text(""),
			RiskIndicators[0]:       text("NA"),
			"Unrelated indicator":   text("99"),
		}},
		{Region: "Utopia", Indicators: map[string]domain.Cell{
			ProtectiveIndicators[0]: text("150"),
			RiskIndicators[0]:       text("-5"),
		}},
		{Region: "Dystopia", Indicators: map[string]domain.Cell{
			ProtectiveIndicators[0]: text("-20"),
			RiskIndicators[0]:       text("300%"),
		}},
	}
}

func newTestStore(records []domain.RegionRecord) *DatasetStore {
	return NewDatasetStore(memory.NewRepository(records), newTestLogger(), nil)
}
