package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestate-pipeline/pipeline/internal/writer"
	"github.com/realestate-pipeline/pipeline/pkg/model"
)

func TestClearResetsOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))

	w := New(dir)
	require.NoError(t, w.Clear(context.Background()))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteNodesProducesPartitionFile(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)
	require.NoError(t, w.Clear(context.Background()))

	records := []writer.NodeRecord{
		{PrimaryID: "pool", Fields: map[string]interface{}{"name": "pool", "count": 3}},
	}
	require.NoError(t, w.WriteNodes(context.Background(), model.EntityFeature, records))

	path := filepath.Join(dir, model.EntityFeature.String(), "part-00000.parquet")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteEdgesProducesPartitionFile(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)
	require.NoError(t, w.Clear(context.Background()))

	edges := []model.Relationship{{FromID: "Property:1", ToID: "Feature:pool", Type: model.EdgeHasFeature}}
	require.NoError(t, w.WriteEdges(context.Background(), model.EdgeHasFeature, edges))

	path := filepath.Join(dir, string(model.EdgeHasFeature), "part-00000.parquet")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
