package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/internal/metrics"
)

var errNotLoaded = errors.New("not loaded")

// DatasetStore loads the region indicator table once and serves it read-only.
// Concurrent first loads share a single source read. Failed loads are not cached.
type DatasetStore struct {
	mu     sync.RWMutex
	source IndicatorSource
	table  *domain.RegionTable
	group  singleflight.Group

	log     *logrus.Logger
	metrics *metrics.Metrics
}

// NewDatasetStore creates a store over source. It does not read the source until Load.
func NewDatasetStore(source IndicatorSource, log *logrus.Logger, m *metrics.Metrics) *DatasetStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DatasetStore{
		source:  source,
		log:     log,
		metrics: m,
	}
}

// Load returns the cached table, reading the source on first use.
// The source read is shared by concurrent callers and does not stop when one of them is
// cancelled; a cancelled caller returns its context error without waiting.
func (s *DatasetStore) Load(ctx context.Context) (*domain.RegionTable, error) {
	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("load", func() (interface{}, error) {
		return s.load(flightCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.RegionTable), nil
	}
}

func (s *DatasetStore) load(ctx context.Context) (*domain.RegionTable, error) {
	s.mu.RLock()
	table := s.table
	s.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	records, err := s.source.LoadRecords(ctx)
	if err != nil {
		s.metrics.IncDatasetLoad(false)
		s.log.WithError(err).WithField("source", s.source.Name()).Error("Failed to load indicator dataset")
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, s.source.Name(), err)
	}

	table = domain.NewRegionTable(records)

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.metrics.IncDatasetLoad(true)
	s.log.WithFields(logrus.Fields{
		"source":  s.source.Name(),
		"records": table.Len(),
		"regions": len(table.Regions()),
	}).Info("Indicator dataset loaded")

	return table, nil
}

// ListRegions returns the sorted, deduplicated region names
func (s *DatasetStore) ListRegions(ctx context.Context) ([]string, error) {
	table, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return table.Regions(), nil
}

// Loaded reports whether a table is cached
func (s *DatasetStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table != nil
}

// Ready is a health probe that fails until the table has been loaded
func (s *DatasetStore) Ready(_ context.Context) error {
	if !s.Loaded() {
		return errNotLoaded
	}
	return nil
}
