package sqlite

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maternalrisk/backend/internal/domain"
)

func setupTestDB(t *testing.T, records []domain.RegionRecord) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nfhs.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Init(ctx, db))
	require.NoError(t, Import(ctx, db, records))
	return path
}

func TestLoadRecords(t *testing.T) {
	path := setupTestDB(t, []domain.RegionRecord{
		{Region: "Kerala", Indicators: map[string]domain.Cell{
			"a": domain.TextCell("72.1%"),
			"b": domain.NumberCell(12.5),
		}},
		{Region: "Kerala", Indicators: map[string]domain.Cell{
			"a": domain.TextCell("NA"),
		}},
		{Region: "Bihar", Indicators: map[string]domain.Cell{}},
	})

	repo := NewIndicatorRepository(path)
	assert.Equal(t, "sqlite:"+path, repo.Name())

	records, err := repo.LoadRecords(context.Background())
	require.NoError(t, err)

	// Bihar has no indicator rows, so nothing represents it in long format.
	require.Len(t, records, 2)
	assert.Equal(t, "Kerala", records[0].Region)
	assert.Equal(t, domain.TextCell("72.1%"), records[0].Indicators["a"])
	assert.Equal(t, domain.TextCell("12.5"), records[0].Indicators["b"])
	assert.Equal(t, domain.TextCell("NA"), records[1].Indicators["a"])
}

func TestInit_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "nfhs.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Init(ctx, db))
	assert.NoError(t, Init(ctx, db))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestLoadRecords_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfhs.db")

	_, err := NewIndicatorRepository(path).LoadRecords(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NoFileExists(t, path)
}

func TestLoadRecords_NoSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := NewIndicatorRepository(path).LoadRecords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query indicators")
}

func TestImport_ReplacesContents(t *testing.T) {
	ctx := context.Background()
	path := setupTestDB(t, []domain.RegionRecord{
		{Region: "Kerala", Indicators: map[string]domain.Cell{"a": domain.TextCell("1")}},
	})

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, Import(ctx, db, []domain.RegionRecord{
		{Region: "Goa", Indicators: map[string]domain.Cell{"a": domain.TextCell("2")}},
	}))
	require.NoError(t, db.Close())

	records, err := NewIndicatorRepository(path).LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Goa", records[0].Region)
}
