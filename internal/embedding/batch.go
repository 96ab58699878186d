package embedding

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
	"github.com/realestate-pipeline/pipeline/pkg/pipelineerr"
)

// Cache deduplicates embedding requests by content fingerprint: two rows
// with identical selected text (e.g. two properties sharing a boilerplate
// description) are embedded once.
type Cache struct {
	vectors map[[32]byte][]float32
}

// NewCache creates an empty fingerprint->vector cache.
func NewCache() *Cache {
	return &Cache{vectors: make(map[[32]byte][]float32)}
}

// Batcher drives a Provider with batching, fingerprint dedup, and bounded
// retry on transient provider errors.
type Batcher struct {
	provider  Provider
	cache     *Cache
	batchSize int
	maxRetry  int

	BatchesRun int
	// Emitted counts texts that required a provider call; Cached counts
	// texts served from the fingerprint cache without one.
	Emitted int
	Cached  int
}

// NewBatcher creates a Batcher bound to the given provider and config.
func NewBatcher(provider Provider, cfg pipelineconfig.EmbeddingConfig) *Batcher {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 32
	}
	return &Batcher{
		provider:  provider,
		cache:     NewCache(),
		batchSize: batchSize,
		maxRetry:  cfg.MaxRetries,
	}
}

// EmbedAll embeds every text in texts, returning one vector per input in
// order. Duplicate texts (by fingerprint) are embedded once and the cached
// vector is reused for subsequent occurrences.
func (b *Batcher) EmbedAll(ctx context.Context, stage string, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	toFetch := make([]string, 0, len(texts))
	fetchIdx := make([]int, 0, len(texts))
	pending := make(map[[32]byte]bool)
	var dupIdx []int

	for i, t := range texts {
		fp := Fingerprint(t)
		if v, ok := b.cache.vectors[fp]; ok {
			out[i] = v
			b.Cached++
			continue
		}
		if pending[fp] {
			dupIdx = append(dupIdx, i)
			b.Cached++
			continue
		}
		pending[fp] = true
		toFetch = append(toFetch, t)
		fetchIdx = append(fetchIdx, i)
	}
	b.Emitted += len(toFetch)

	for start := 0; start < len(toFetch); start += b.batchSize {
		end := start + b.batchSize
		if end > len(toFetch) {
			end = len(toFetch)
		}
		chunk := toFetch[start:end]

		vectors, err := b.embedWithRetry(ctx, chunk)
		if err != nil {
			return nil, pipelineerr.EmbeddingProvider(stage, fmt.Errorf("provider %s: %w", b.provider.Name(), err))
		}
		b.BatchesRun++

		for _, v := range vectors {
			if len(v) != b.provider.Dimension() {
				return nil, pipelineerr.EmbeddingProvider(stage, fmt.Errorf("provider %s returned dimension %d, expected %d", b.provider.Name(), len(v), b.provider.Dimension()))
			}
		}

		for i, v := range vectors {
			idx := fetchIdx[start+i]
			out[idx] = v
			b.cache.vectors[Fingerprint(chunk[i])] = v
		}
	}

	for _, i := range dupIdx {
		out[i] = b.cache.vectors[Fingerprint(texts[i])]
	}
	return out, nil
}

func (b *Batcher) embedWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(maxRetries(b.maxRetry))), ctx)

	var vectors [][]float32
	op := func() error {
		v, err := b.provider.Embed(ctx, texts)
		if err != nil {
			return err
		}
		vectors = v
		return nil
	}

	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return vectors, nil
}

func maxRetries(configured int) int {
	if configured <= 0 {
		return 3
	}
	return configured
}
