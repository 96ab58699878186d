package embedding

import (
	"context"
	"math"
	"strings"
)

// LocalProvider computes a feature-hashed bag-of-words embedding with no
// external calls: each token is hashed into one of `dimension` buckets and
// the resulting vector is L2-normalized. Coarser than a learned embedding
// model but sufficient for local development and for properties/CI where no
// provider API key is configured.
type LocalProvider struct {
	dimension int
}

// NewLocalProvider creates a local hashing-based provider.
func NewLocalProvider(dimension int) *LocalProvider {
	if dimension <= 0 {
		dimension = 256
	}
	return &LocalProvider{dimension: dimension}
}

func (p *LocalProvider) Name() string   { return "local" }
func (p *LocalProvider) Dimension() int { return p.dimension }

func (p *LocalProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = hashEmbed(t, p.dimension)
	}
	return out, nil
}

func hashEmbed(text string, dimension int) []float32 {
	v := make([]float32, dimension)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv1a(tok)
		bucket := int(h % uint32(dimension))
		sign := float32(1)
		if h&1 == 1 {
			sign = -1
		}
		v[bucket] += sign
	}
	var sumSquares float64
	for _, f := range v {
		sumSquares += float64(f) * float64(f)
	}
	norm := float32(math.Sqrt(sumSquares))
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i] /= norm
	}
	return v
}

func fnv1a(s string) uint32 {
	const offset32 = 2166136261
	const prime32 = 16777619
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}
