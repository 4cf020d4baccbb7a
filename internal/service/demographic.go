package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/pkg/utils"
)

// ProtectiveIndicators lower the demographic score as their coverage rises
var ProtectiveIndicators = []string{
	"Female population age 6 years and above who ever attended school (%)",
	"Population living in households with an improved drinking-water source1 (%)",
	"Population living in households that use an improved sanitation facility2 (%)",
	"Households using clean fuel for cooking3 (%)",
}

// RiskIndicators raise the demographic score as their prevalence rises
var RiskIndicators = []string{
	"Ever-married women age 18-49 years who have ever experienced spousal violence27 (%)",
	"Women age 15 years and above who use any kind of tobacco (%)",
	"Men age 15 years and above who use any kind of tobacco (%)",
	"Women age 15 years and above who consume alcohol (%)",
	"Men age 15 years and above who consume alcohol (%)",
}

const (
	// MaxDemographicScore bounds the demographic sub-score
	MaxDemographicScore = 20.0

	defaultProtectiveAvg = 50.0
	defaultRiskAvg       = 10.0
)

// TableLoader provides the loaded indicator table
type TableLoader interface {
	Load(ctx context.Context) (*domain.RegionTable, error)
}

// DemographicScorer turns a region's survey indicators into a bounded risk score
type DemographicScorer struct {
	tables TableLoader
}

// NewDemographicScorer creates a new demographic scorer
func NewDemographicScorer(tables TableLoader) *DemographicScorer {
	return &DemographicScorer{tables: tables}
}

// Score returns the demographic score of region in [0, MaxDemographicScore]
func (s *DemographicScorer) Score(ctx context.Context, region string) (float64, error) {
	table, err := s.tables.Load(ctx)
	if err != nil {
		return 0, err
	}

	records := table.Lookup(region)
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrRegionNotFound, strings.TrimSpace(region))
	}

	goodAvg, ok := utils.Mean(indicatorMeans(records, ProtectiveIndicators))
	if !ok {
		goodAvg = defaultProtectiveAvg
	}
	badAvg, ok := utils.Mean(indicatorMeans(records, RiskIndicators))
	if !ok {
		badAvg = defaultRiskAvg
	}

	goodComponent := (100 - utils.Clamp(goodAvg, 0, 100)) / 100 * 10
	badComponent := utils.Clamp(badAvg, 0, 100) / 100 * 10

	return utils.Clamp(goodComponent+badComponent, 0, MaxDemographicScore), nil
}

// indicatorMeans averages each indicator across records, skipping indicators with no usable value
func indicatorMeans(records []domain.RegionRecord, indicators []string) []float64 {
	means := make([]float64, 0, len(indicators))
	for _, name := range indicators {
		var values []float64
		for _, rec := range records {
			cell, ok := rec.Indicators[name]
			if !ok {
				continue
			}
			if v, ok := ParseIndicator(cell); ok {
				values = append(values, v)
			}
		}
		if m, ok := utils.Mean(values); ok {
			means = append(means, m)
		}
	}
	return means
}

// ParseIndicator reads a raw cell. Empty, "NA", "*" and unparseable text are missing,
// as are non-finite numbers. A trailing percent sign is ignored.
func ParseIndicator(c domain.Cell) (float64, bool) {
	if c.Numeric {
		return c.Number, isFinite(c.Number)
	}

	text := strings.TrimSpace(c.Text)
	text = strings.TrimSpace(strings.TrimSuffix(text, "%"))
	if text == "" || strings.EqualFold(text, "NA") || text == "*" {
		return 0, false
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
