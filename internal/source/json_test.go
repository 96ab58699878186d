package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadJSONLinesNDJSON(t *testing.T) {
	path := writeTempFile(t, "{\"a\":1}\n{\"a\":2}\n")

	var rows []RawRecord
	require.NoError(t, ReadJSONLines(path, func(r RawRecord) error {
		rows = append(rows, r)
		return nil
	}))

	assert.Len(t, rows, 2)
	assert.Equal(t, int64(0), rows[0].RowIndex)
	assert.Equal(t, int64(1), rows[1].RowIndex)
}

func TestReadJSONLinesArray(t *testing.T) {
	path := writeTempFile(t, `[{"a":1},{"a":2},{"a":3}]`)

	var rows []RawRecord
	require.NoError(t, ReadJSONLines(path, func(r RawRecord) error {
		rows = append(rows, r)
		return nil
	}))

	assert.Len(t, rows, 3)
}

func TestReadJSONLinesSkipsBlankLines(t *testing.T) {
	path := writeTempFile(t, "{\"a\":1}\n\n{\"a\":2}\n")

	var rows []RawRecord
	require.NoError(t, ReadJSONLines(path, func(r RawRecord) error {
		rows = append(rows, r)
		return nil
	}))

	assert.Len(t, rows, 2)
}

func TestReadJSONLinesMissingFileReturnsSourceError(t *testing.T) {
	err := ReadJSONLines(filepath.Join(t.TempDir(), "missing.jsonl"), func(r RawRecord) error { return nil })
	require.Error(t, err)
}
