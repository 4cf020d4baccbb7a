package domain

import (
	"sort"
	"strings"
)

// Cell is a raw indicator value as read from a dataset source.
// Sources that know the column type produce numeric cells; text sources keep the raw string.
type Cell struct {
	Number  float64
	Text    string
	Numeric bool
}

// NumberCell wraps an already-typed numeric value
func NumberCell(v float64) Cell {
	return Cell{Number: v, Numeric: true}
}

// TextCell wraps a raw textual value such as "45.2%", "NA" or "*"
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// RegionRecord is one dataset row for a region
type RegionRecord struct {
	Region     string
	Indicators map[string]Cell
}

// RegionTable is the read-only indicator table. It is safe for concurrent reads.
type RegionTable struct {
	records []RegionRecord
	index   map[string][]int
	names   []string
}

// NewRegionTable builds a table from records. Region names are trimmed; lookups
// are keyed on the case-folded trimmed name.
func NewRegionTable(records []RegionRecord) *RegionTable {
	t := &RegionTable{
		records: make([]RegionRecord, 0, len(records)),
		index:   make(map[string][]int),
	}

	seen := make(map[string]struct{})
	for _, r := range records {
		r.Region = strings.TrimSpace(r.Region)
		t.records = append(t.records, r)

		key := regionKey(r.Region)
		t.index[key] = append(t.index[key], len(t.records)-1)

		if _, ok := seen[r.Region]; !ok {
			seen[r.Region] = struct{}{}
			t.names = append(t.names, r.Region)
		}
	}
	sort.Strings(t.names)

	return t
}

// Lookup returns every record whose region matches name case-insensitively
func (t *RegionTable) Lookup(name string) []RegionRecord {
	idx := t.index[regionKey(name)]
	if len(idx) == 0 {
		return nil
	}
	out := make([]RegionRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.records[i])
	}
	return out
}

// Regions returns the deduplicated region names in lexicographic order
func (t *RegionTable) Regions() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of records
func (t *RegionTable) Len() int {
	return len(t.records)
}

func regionKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
