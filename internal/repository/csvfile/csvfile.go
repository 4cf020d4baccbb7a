package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/maternalrisk/backend/internal/domain"
)

const (
	// DefaultPath is where the NFHS factsheet is expected relative to the working directory
	DefaultPath = "data/NFHS_Factsheet.csv"

	// DefaultRegionColumn is the region-name header of the NFHS factsheet
	DefaultRegionColumn = "States/UTs"

	utf8BOM = "\uFEFF"
)

// Source reads region indicators from a CSV file with a header row
type Source struct {
	path         string
	regionColumn string
}

// NewSource creates a CSV source. An empty regionColumn selects DefaultRegionColumn.
func NewSource(path, regionColumn string) *Source {
	if regionColumn == "" {
		regionColumn = DefaultRegionColumn
	}
	return &Source{path: path, regionColumn: regionColumn}
}

// Name implements domain.IndicatorSource
func (s *Source) Name() string {
	return "csv:" + s.path
}

// LoadRecords implements domain.IndicatorSource
func (s *Source) LoadRecords(ctx context.Context) ([]domain.RegionRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	return s.Parse(ctx, f)
}

// Parse reads records from r. Every non-region column becomes a text indicator cell.
func (s *Source) Parse(ctx context.Context, r io.Reader) ([]domain.RegionRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csvfile: file has no header row")
		}
		return nil, fmt.Errorf("csvfile: failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	regionIdx := -1
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == s.regionColumn {
			regionIdx = i
		}
	}
	if regionIdx < 0 {
		return nil, fmt.Errorf("csvfile: region column %q not found", s.regionColumn)
	}

	var records []domain.RegionRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvfile: failed to read row %d: %w", len(records)+2, err)
		}

		rec := domain.RegionRecord{
			Region:     row[regionIdx],
			Indicators: make(map[string]domain.Cell, len(header)-1),
		}
		for i, h := range header {
			if i == regionIdx {
				continue
			}
			rec.Indicators[h] = domain.TextCell(row[i])
		}
		records = append(records, rec)
	}

	return records, nil
}
