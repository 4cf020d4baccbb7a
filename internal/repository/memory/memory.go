package memory

import (
	"context"

	"github.com/maternalrisk/backend/internal/domain"
)

// Repository implements domain.IndicatorSource over a fixed slice, for tests and demo mode
// (DATASET_SOURCE=memory)
type Repository struct {
	records []domain.RegionRecord
	err     error
}

// NewRepository creates a repository serving records
func NewRepository(records []domain.RegionRecord) *Repository {
	return &Repository{records: records}
}

// NewFailingRepository creates a repository whose loads always fail with err
func NewFailingRepository(err error) *Repository {
	return &Repository{err: err}
}

// Name implements domain.IndicatorSource
func (r *Repository) Name() string {
	return "memory"
}

// LoadRecords implements domain.IndicatorSource
func (r *Repository) LoadRecords(ctx context.Context) ([]domain.RegionRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.RegionRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// demoIndicators are the NFHS factsheet columns the demo table fills
var demoIndicators = []string{
	"Female population age 6 years and above who ever attended school (%)",
	"Population living in households with an improved drinking-water source1 (%)",
	"Population living in households that use an improved sanitation facility2 (%)",
	"Households using clean fuel for cooking3 (%)",
	"Ever-married women age 18-49 years who have ever experienced spousal violence27 (%)",
	"Women age 15 years and above who use any kind of tobacco (%)",
	"Men age 15 years and above who use any kind of tobacco (%)",
	"Women age 15 years and above who consume alcohol (%)",
	"Men age 15 years and above who consume alcohol (%)",
}

// DemoRecords returns a small built-in factsheet for running without a dataset.
// The values are illustrative, not survey figures.
func DemoRecords() []domain.RegionRecord {
	rows := []struct {
		region string
		values []string
	}{
		{"Demo North", []string{"85", "95", "80", "70", "20", "5", "30", "1", "25"}},
		{"Demo Central", []string{"65", "90", "55", "40", "35", "10", "45", "2", "20"}},
		{"Demo South", []string{"95%", "98%", "90%", "75%", "*", "NA", "20", "1", "20"}},
	}

	records := make([]domain.RegionRecord, 0, len(rows))
	for _, row := range rows {
		indicators := make(map[string]domain.Cell, len(demoIndicators))
		for i, name := range demoIndicators {
			indicators[name] = domain.TextCell(row.values[i])
		}
		records = append(records, domain.RegionRecord{Region: row.region, Indicators: indicators})
	}
	return records
}
