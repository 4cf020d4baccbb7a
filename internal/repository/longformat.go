// Package repository holds helpers shared by the indicator sources.
package repository

import (
	"fmt"
	"sort"

	"github.com/maternalrisk/backend/internal/domain"
)

// IndicatorRow is one cell of a dataset stored in long format
// (record id, region, indicator name, value). A nil Value is a missing cell.
type IndicatorRow struct {
	RecordID  int64
	Region    string
	Indicator string
	Value     *string
}

// AssembleRecords folds long-format rows back into one RegionRecord per record id,
// keeping the order in which record ids first appear.
func AssembleRecords(rows []IndicatorRow) []domain.RegionRecord {
	var records []domain.RegionRecord
	pos := make(map[int64]int)

	for _, row := range rows {
		i, ok := pos[row.RecordID]
		if !ok {
			records = append(records, domain.RegionRecord{
				Region:     row.Region,
				Indicators: make(map[string]domain.Cell),
			})
			i = len(records) - 1
			pos[row.RecordID] = i
		}
		if row.Value == nil || row.Indicator == "" {
			continue
		}
		records[i].Indicators[row.Indicator] = domain.TextCell(*row.Value)
	}

	return records
}

// FlattenRecords is the inverse of AssembleRecords. Record ids start at 1, indicators are
// sorted by name and numeric cells are written as their shortest decimal text.
func FlattenRecords(records []domain.RegionRecord) []IndicatorRow {
	var rows []IndicatorRow
	for i, rec := range records {
		names := make([]string, 0, len(rec.Indicators))
		for name := range rec.Indicators {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			cell := rec.Indicators[name]
			value := cell.Text
			if cell.Numeric {
				value = fmt.Sprintf("%g", cell.Number)
			}
			rows = append(rows, IndicatorRow{
				RecordID:  int64(i + 1),
				Region:    rec.Region,
				Indicator: name,
				Value:     &value,
			})
		}
	}
	return rows
}
