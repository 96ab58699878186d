package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLocationsEmptyPathReturnsNil(t *testing.T) {
	got, err := ReadLocations("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadLocationsMissingFileReturnsNilWithoutError(t *testing.T) {
	got, err := ReadLocations(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadLocationsKeyedByZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	content := `[{"zip":"78701","county":"Travis","state":"TX"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := ReadLocations(path)
	require.NoError(t, err)
	require.Contains(t, got, "78701")
	assert.Equal(t, "Travis", got["78701"].County)
}

func TestReadLocationsInvalidJSONErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := ReadLocations(path)
	assert.Error(t, err)
}
