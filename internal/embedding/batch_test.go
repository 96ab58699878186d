package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

type countingProvider struct {
	dimension int
	calls     int
}

func (c *countingProvider) Name() string   { return "counting" }
func (c *countingProvider) Dimension() int { return c.dimension }
func (c *countingProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, c.dimension)
	}
	return out, nil
}

func TestBatcherDeduplicatesByFingerprint(t *testing.T) {
	p := &countingProvider{dimension: 4}
	b := NewBatcher(p, pipelineconfig.EmbeddingConfig{BatchSize: 32})

	out, err := b.EmbedAll(context.Background(), "property", []string{"a", "a", "b"})
	require.NoError(t, err)

	assert.Len(t, out, 3)
	assert.Equal(t, 2, b.Emitted)
	assert.Equal(t, 1, b.Cached)
	assert.Equal(t, 1, b.BatchesRun)
}

func TestBatcherRejectsWrongDimension(t *testing.T) {
	p := &countingProvider{dimension: 4}
	b := NewBatcher(p, pipelineconfig.EmbeddingConfig{BatchSize: 32, MaxRetries: 1})
	b.provider = &wrongDimensionProvider{want: 4}

	_, err := b.EmbedAll(context.Background(), "property", []string{"a"})
	assert.Error(t, err)
}

type wrongDimensionProvider struct{ want int }

func (w *wrongDimensionProvider) Name() string   { return "wrong" }
func (w *wrongDimensionProvider) Dimension() int { return w.want }
func (w *wrongDimensionProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, w.want+1)
	}
	return out, nil
}
