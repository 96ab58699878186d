package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

func TestNewOpenAIProviderRequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIProvider(pipelineconfig.EmbeddingConfig{})
	assert.Error(t, err)
}

func TestNewOpenAIProviderDefaultsModel(t *testing.T) {
	p, err := NewOpenAIProvider(pipelineconfig.EmbeddingConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", p.model)
	assert.Equal(t, "openai", p.Name())
}

func TestOpenAIProviderEmbedReordersByIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 2)

		// Respond out of order to exercise the by-index reassembly.
		resp := openAIResponse{Data: []struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}{
			{Embedding: []float32{9, 9}, Index: 1},
			{Embedding: []float32{1, 1}, Index: 0},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	p, err := NewOpenAIProvider(pipelineconfig.EmbeddingConfig{APIKey: "secret", Dimension: 2})
	require.NoError(t, err)
	p.client = newRedirectClient(server.URL)

	out, err := p.Embed(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, []float32{1, 1}, out[0])
	assert.Equal(t, []float32{9, 9}, out[1])
}

func TestOpenAIProviderEmbedNonOKStatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p := &OpenAIProvider{apiKey: "k", model: "text-embedding-3-small", client: newRedirectClient(server.URL)}

	_, err := p.Embed(context.Background(), []string{"a"})
	assert.Error(t, err)
}
