package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

func TestCheckReadableMissingFileFails(t *testing.T) {
	err := checkReadable(filepath.Join(t.TempDir(), "missing.jsonl"))()
	assert.Error(t, err)
}

func TestCheckReadableExistingFilePasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "present.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	assert.NoError(t, checkReadable(path)())
}

func TestCheckWritableDirCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	require.NoError(t, checkWritableDir(dir)())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRunHealthChecksFailsOnMissingSources(t *testing.T) {
	cfg := &pipelineconfig.Config{}
	cfg.Sources.PropertiesPath = filepath.Join(t.TempDir(), "missing.jsonl")
	err := runHealthChecks(cfg)
	assert.Error(t, err)
}

func TestRunHealthChecksPassesWithAllSourcesPresent(t *testing.T) {
	dir := t.TempDir()
	props := filepath.Join(dir, "properties.jsonl")
	neigh := filepath.Join(dir, "neighborhoods.jsonl")
	wiki := filepath.Join(dir, "wikipedia.db")
	for _, p := range []string{props, neigh, wiki} {
		require.NoError(t, os.WriteFile(p, []byte("{}"), 0o644))
	}

	cfg := &pipelineconfig.Config{}
	cfg.Sources.PropertiesPath = props
	cfg.Sources.NeighborhoodsPath = neigh
	cfg.Sources.WikipediaDBPath = wiki

	assert.NoError(t, runHealthChecks(cfg))
}
