package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maternalrisk/backend/internal/domain"
	"github.com/maternalrisk/backend/internal/repository/memory"
)

func TestParseIndicator(t *testing.T) {
	tests := []struct {
		name   string
		cell   domain.Cell
		want   float64
		wantOK bool
	}{
		{"number", domain.NumberCell(42.5), 42.5, true},
		{"nan number", domain.NumberCell(math.NaN()), 0, false},
		{"inf number", domain.NumberCell(math.Inf(1)), 0, false},
		{"plain text", text("12.3"), 12.3, true},
		{"percent", text("45.2%"), 45.2, true},
		{"padded percent", text("  45.2 % "), 45.2, true},
		{"empty", text(""), 0, false},
		{"blank", text("   "), 0, false},
		{"NA", text("NA"), 0, false},
		{"na lower", text("na"), 0, false},
		{"star", text("*"), 0, false},
		{"garbage", text("(12.5)x"), 0, false},
		{"nan text", text("nan"), 0, false},
		{"negative", text("-3"), -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseIndicator(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestDemographicScorer_Score(t *testing.T) {
	scorer := NewDemographicScorer(newTestStore(testRecords()))

	tests := []struct {
		region string
		want   float64
	}{
		// good_avg = mean(80, 60) = 70, bad_avg = mean(20, 10) = 15
		{"Kerala", 3 + 1.5},
		// per-indicator means first: good = mean(50, 30) = 40, bad = mean(20) = 20
		{"Bihar", 6 + 2},
		{"  bIHAR ", 6 + 2},
		// nothing usable: good_avg = 50, bad_avg = 10
		{"Ladakh", 5 + 1},
		// clamped averages
		{"Utopia", 0},
		{"Dystopia", 20},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			got, err := scorer.Score(context.Background(), tt.region)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDemographicScorer_Bounds(t *testing.T) {
	store := newTestStore(testRecords())
	scorer := NewDemographicScorer(store)

	regions, err := store.ListRegions(context.Background())
	require.NoError(t, err)
	for _, region := range regions {
		got, err := scorer.Score(context.Background(), region)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0, region)
		assert.LessOrEqual(t, got, MaxDemographicScore, region)
	}
}

func TestDemographicScorer_RegionNotFound(t *testing.T) {
	scorer := NewDemographicScorer(newTestStore(testRecords()))

	_, err := scorer.Score(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRegionNotFound))
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestDemographicScorer_DataUnavailable(t *testing.T) {
	store := NewDatasetStore(memory.NewFailingRepository(errors.New("disk gone")), newTestLogger(), nil)
	scorer := NewDemographicScorer(store)

	_, err := scorer.Score(context.Background(), "Kerala")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
}

func TestDemoRecordsCoverScoredIndicators(t *testing.T) {
	names := append(append([]string{}, ProtectiveIndicators...), RiskIndicators...)
	for _, rec := range memory.DemoRecords() {
		for _, name := range names {
			assert.Contains(t, rec.Indicators, name, rec.Region)
		}
	}
}
