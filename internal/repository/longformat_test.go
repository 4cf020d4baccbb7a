package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maternalrisk/backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestAssembleRecords(t *testing.T) {
	rows := []IndicatorRow{
		{RecordID: 7, Region: "Kerala", Indicator: "a", Value: strPtr("10")},
		{RecordID: 3, Region: "Bihar", Indicator: "a", Value: strPtr("NA")},
		{RecordID: 7, Region: "Kerala", Indicator: "b", Value: nil},
		{RecordID: 9, Region: "Kerala", Indicator: "a", Value: strPtr("20%")},
		{RecordID: 4, Region: "Goa", Indicator: "", Value: nil},
	}

	got := AssembleRecords(rows)
	require.Len(t, got, 4)

	assert.Equal(t, "Kerala", got[0].Region)
	assert.Equal(t, map[string]domain.Cell{"a": domain.TextCell("10")}, got[0].Indicators)
	assert.Equal(t, "Bihar", got[1].Region)
	assert.Equal(t, domain.TextCell("20%"), got[2].Indicators["a"])
	assert.Equal(t, "Goa", got[3].Region)
	assert.Empty(t, got[3].Indicators)
}

func TestAssembleRecords_Empty(t *testing.T) {
	assert.Empty(t, AssembleRecords(nil))
}

func TestFlattenRecords(t *testing.T) {
	records := []domain.RegionRecord{
		{Region: "Kerala", Indicators: map[string]domain.Cell{
			"b": domain.NumberCell(12.5),
			"a": domain.TextCell("72.1%"),
		}},
		{Region: "Goa", Indicators: map[string]domain.Cell{}},
		{Region: "Bihar", Indicators: map[string]domain.Cell{"a": domain.TextCell("NA")}},
	}

	rows := FlattenRecords(records)
	require.Len(t, rows, 3)
	assert.Equal(t, IndicatorRow{RecordID: 1, Region: "Kerala", Indicator: "a", Value: strPtr("72.1%")}, rows[0])
	assert.Equal(t, IndicatorRow{RecordID: 1, Region: "Kerala", Indicator: "b", Value: strPtr("12.5")}, rows[1])
	assert.Equal(t, int64(3), rows[2].RecordID)

	back := AssembleRecords(rows)
	require.Len(t, back, 2)
	assert.Equal(t, "Bihar", back[1].Region)
	assert.Equal(t, domain.TextCell("12.5"), back[0].Indicators["b"])
}
