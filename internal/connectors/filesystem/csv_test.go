package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ==== Supports ====

func TestCSVSource_Supports(t *testing.T) {
	s := NewCSVSource()

	assert.True(t, s.Supports("buildings.csv"))
	assert.True(t, s.Supports("/data/BUILDINGS.CSV"))
	assert.True(t, s.Supports("lots.tsv"))
	assert.False(t, s.Supports("buildings.xlsx"))
	assert.False(t, s.Supports("buildings"))
}

// ==== Read ====

func TestCSVSource_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("parses header and rows", func(t *testing.T) {
		path := writeFile(t, "pm.csv",
			"Address 1,City,Gross Floor Area\n"+
				"123 Main St,Denver,\"12,000\"\n"+
				"9 Oak Ave , Boulder ,800\n")

		file, err := NewCSVSource().Read(ctx, path)
		require.NoError(t, err)

		assert.Equal(t, path, file.Path)
		assert.Equal(t, []string{"Address 1", "City", "Gross Floor Area"}, file.Columns)
		require.Len(t, file.Rows, 2)
		assert.Equal(t, domain.RawRow{
			"Address 1":        "123 Main St",
			"City":             "Denver",
			"Gross Floor Area": "12,000",
		}, file.Rows[0])
		assert.Equal(t, "9 Oak Ave", file.Rows[1]["Address 1"])
		assert.Equal(t, "Boulder", file.Rows[1]["City"])
	})

	t.Run("strips byte order mark", func(t *testing.T) {
		path := writeFile(t, "bom.csv", "\uFEFFAddress,City\n1 Elm St,Denver\n")

		file, err := NewCSVSource().Read(ctx, path)
		require.NoError(t, err)

		assert.Equal(t, []string{"Address", "City"}, file.Columns)
	})

	t.Run("reads tab separated files", func(t *testing.T) {
		path := writeFile(t, "lots.tsv", "BBL\tCity\n1000010001\tNew York\n")

		file, err := NewCSVSource().Read(ctx, path)
		require.NoError(t, err)

		require.Len(t, file.Rows, 1)
		assert.Equal(t, "1000010001", file.Rows[0]["BBL"])
	})

	t.Run("handles ragged rows", func(t *testing.T) {
		path := writeFile(t, "ragged.csv", "A,B,C\n1\n1,2,3,4\n")

		file, err := NewCSVSource().Read(ctx, path)
		require.NoError(t, err)

		require.Len(t, file.Rows, 2)
		assert.Equal(t, domain.RawRow{"A": "1"}, file.Rows[0])
		assert.Equal(t, domain.RawRow{"A": "1", "B": "2", "C": "3"}, file.Rows[1])
	})

	t.Run("skips blank rows", func(t *testing.T) {
		path := writeFile(t, "blank.csv", "A,B\n,\n1,2\n")

		file, err := NewCSVSource().Read(ctx, path)
		require.NoError(t, err)

		assert.Len(t, file.Rows, 1)
	})

	t.Run("renames duplicate and blank headers", func(t *testing.T) {
		path := writeFile(t, "dupes.csv", "Name,Name,,Name\na,b,c,d\n")

		file, err := NewCSVSource().Read(ctx, path)
		require.NoError(t, err)

		assert.Equal(t, []string{"Name", "Name (2)", "column_3", "Name (3)"}, file.Columns)
		assert.Equal(t, "d", file.Rows[0]["Name (3)"])
	})

	t.Run("accepts file URIs", func(t *testing.T) {
		path := writeFile(t, "uri.csv", "A\n1\n")

		file, err := NewCSVSource().Read(ctx, "file://"+path)
		require.NoError(t, err)

		assert.Equal(t, path, file.Path)
	})
}

func TestCSVSource_Read_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCSVSource().Read(ctx, filepath.Join(t.TempDir(), "missing.csv"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewCSVSource().Read(ctx, writeFile(t, "data.json", "{}"))
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := NewCSVSource().Read(ctx, writeFile(t, "empty.csv", ""))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeFile(t, "rows.csv", "A\n1\n2\n")
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewCSVSource().Read(cctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
