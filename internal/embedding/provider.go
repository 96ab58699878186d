// Package embedding generates vector embeddings for Gold-tier text fields
// through a pluggable provider abstraction, deduplicating identical input
// text via a content fingerprint and retrying transient provider errors with
// bounded exponential backoff.
package embedding

import (
	"context"
	"fmt"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

// Provider generates embeddings for a batch of input texts. Implementations
// must return vectors in input order and of the provider's fixed dimension.
type Provider interface {
	// Name identifies the provider for logging and error context.
	Name() string
	// Dimension is the fixed vector length this provider produces.
	Dimension() int
	// Embed returns one vector per input text, in order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider constructs the provider named by cfg.Provider.
func NewProvider(cfg pipelineconfig.EmbeddingConfig) (Provider, error) {
	switch cfg.Provider {
	case "mock", "":
		return NewMockProvider(cfg.Dimension), nil
	case "local":
		return NewLocalProvider(cfg.Dimension), nil
	case "voyage":
		return NewVoyageProvider(cfg)
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("embedding: unknown provider %q", cfg.Provider)
	}
}
