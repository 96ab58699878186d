package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestate-pipeline/pipeline/pkg/pipelineconfig"
)

// redirectTransport rewrites every request's scheme/host to point at a test
// server, so providers that hardcode their upstream URL can be exercised
// against httptest without modification.
type redirectTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (t redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	req.Host = t.target.Host
	return t.base.RoundTrip(req)
}

func newRedirectClient(serverURL string) *http.Client {
	u, err := url.Parse(serverURL)
	if err != nil {
		panic(err)
	}
	return &http.Client{Transport: redirectTransport{target: u, base: http.DefaultTransport}}
}

func TestNewVoyageProviderRequiresAPIKey(t *testing.T) {
	_, err := NewVoyageProvider(pipelineconfig.EmbeddingConfig{})
	assert.Error(t, err)
}

func TestNewVoyageProviderDefaultsModel(t *testing.T) {
	p, err := NewVoyageProvider(pipelineconfig.EmbeddingConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "voyage-3", p.model)
	assert.Equal(t, "voyage", p.Name())
}

func TestVoyageProviderEmbedSendsAuthHeaderAndParsesResponse(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req voyageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := voyageResponse{}
		for range req.Input {
			resp.Data = append(resp.Data, struct {
				Embedding []float32 `json:"embedding"`
			}{Embedding: []float32{0.1, 0.2}})
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	p, err := NewVoyageProvider(pipelineconfig.EmbeddingConfig{APIKey: "secret", RequestTimeout: time.Second})
	require.NoError(t, err)
	p.client = newRedirectClient(server.URL)

	out, err := p.Embed(context.Background(), []string{"a listing", "another listing"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, []float32{0.1, 0.2}, out[0])
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestVoyageProviderEmbedMismatchedCountErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(voyageResponse{}))
	}))
	defer server.Close()

	p := &VoyageProvider{apiKey: "k", model: "voyage-3", client: newRedirectClient(server.URL)}

	_, err := p.Embed(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}
