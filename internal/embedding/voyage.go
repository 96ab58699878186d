package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

// VoyageProvider calls Voyage AI's embeddings endpoint over HTTP.
type VoyageProvider struct {
	apiKey    string
	model     string
	dimension int
	client    *http.Client
}

// NewVoyageProvider creates a Voyage AI embedding provider from config.
func NewVoyageProvider(cfg pipelineconfig.EmbeddingConfig) (*VoyageProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding: voyage provider requires api_key")
	}
	model := cfg.Model
	if model == "" {
		model = "voyage-3"
	}
	return &VoyageProvider{
		apiKey:    cfg.APIKey,
		model:     model,
		dimension: cfg.Dimension,
		client:    &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

func (p *VoyageProvider) Name() string   { return "voyage" }
func (p *VoyageProvider) Dimension() int { return p.dimension }

type voyageRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type voyageResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func (p *VoyageProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(voyageRequest{Input: texts, Model: p.model})
	if err != nil {
		return nil, fmt.Errorf("voyage: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.voyageai.com/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("voyage: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voyage: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voyage: unexpected status %d", resp.StatusCode)
	}

	var parsed voyageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("voyage: decode response: %w", err)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("voyage: expected %d embeddings, got %d", len(texts), len(parsed.Data))
	}

	out := make([][]float32, len(parsed.Data))
	for i, d := range parsed.Data {
		out[i] = d.Embedding
	}
	return out, nil
}
