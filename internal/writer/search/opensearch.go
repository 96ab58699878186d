package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	opensearch "github.com/opensearch-project/opensearch-go/v2"
	opensearchapi "github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// OpenSearchClient is the OpenSearch backend for the Client interface. It
// mirrors ElasticsearchClient closely since both engines expose the same
// bulk/search/scroll protocol; they are kept as separate types rather than
// one client parameterized on a transport because their client libraries'
// request builders are not interchangeable.
type OpenSearchClient struct {
	os *opensearch.Client
}

// NewOpenSearchClient connects to an OpenSearch cluster at the given
// addresses.
func NewOpenSearchClient(addresses []string, username, password string) (*OpenSearchClient, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch: new client: %w", err)
	}
	return &OpenSearchClient{os: client}, nil
}

func (c *OpenSearchClient) EnsureIndex(ctx context.Context, index string, mapping Mapping) error {
	exists, err := c.os.Indices.Exists([]string{index}, c.os.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("opensearch: check index %s: %w", index, err)
	}
	defer exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	mappingBody := buildMappingBody(mapping)
	if mapping.VectorField != "" {
		// OpenSearch indexes vectors as knn_vector fields on a knn-enabled
		// index; it has no dense_vector type.
		properties := mappingBody["mappings"].(map[string]interface{})["properties"].(map[string]interface{})
		properties[mapping.VectorField] = map[string]interface{}{"type": "knn_vector", "dimension": mapping.VectorDims}
		mappingBody["settings"] = map[string]interface{}{"index": map[string]interface{}{"knn": true}}
	}
	body, err := json.Marshal(mappingBody)
	if err != nil {
		return fmt.Errorf("opensearch: encode mapping for %s: %w", index, err)
	}

	res, err := c.os.Indices.Create(index,
		c.os.Indices.Create.WithContext(ctx),
		c.os.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return fmt.Errorf("opensearch: create index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("opensearch: create index %s: %s", index, res.String())
	}
	return nil
}

func (c *OpenSearchClient) DeleteIndex(ctx context.Context, index string) error {
	res, err := c.os.Indices.Delete([]string{index},
		c.os.Indices.Delete.WithContext(ctx),
		c.os.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return fmt.Errorf("opensearch: delete index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("opensearch: delete index %s: %s", index, res.String())
	}
	return nil
}

func (c *OpenSearchClient) Bulk(ctx context.Context, index string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, d := range docs {
		action := map[string]interface{}{"index": map[string]interface{}{"_index": index, "_id": d.ID}}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return fmt.Errorf("opensearch: encode bulk action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(d.Source); err != nil {
			return fmt.Errorf("opensearch: encode bulk document %s: %w", d.ID, err)
		}
	}

	res, err := c.os.Bulk(bytes.NewReader(buf.Bytes()),
		c.os.Bulk.WithContext(ctx),
		c.os.Bulk.WithIndex(index),
	)
	if err != nil {
		return fmt.Errorf("opensearch: bulk request to %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("opensearch: bulk request to %s: %s", index, res.String())
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("opensearch: decode bulk response for %s: %w", index, err)
	}
	return parsed.firstItemError(index)
}

func (c *OpenSearchClient) Get(ctx context.Context, index, id string) (map[string]interface{}, bool, error) {
	res, err := c.os.Get(index, id, c.os.Get.WithContext(ctx))
	if err != nil {
		return nil, false, fmt.Errorf("opensearch: get %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return nil, false, nil
	}
	if res.IsError() {
		return nil, false, fmt.Errorf("opensearch: get %s/%s: %s", index, id, res.String())
	}

	var parsed struct {
		Source map[string]interface{} `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("opensearch: decode get response for %s/%s: %w", index, id, err)
	}
	return parsed.Source, true, nil
}

func (c *OpenSearchClient) Scroll(ctx context.Context, index string, batchSize int, fn func([]map[string]interface{}) error) error {
	query := map[string]interface{}{"query": map[string]interface{}{"match_all": map[string]interface{}{}}, "size": batchSize}
	body, err := json.Marshal(query)
	if err != nil {
		return fmt.Errorf("opensearch: encode scroll query: %w", err)
	}

	res, err := c.os.Search(
		c.os.Search.WithContext(ctx),
		c.os.Search.WithIndex(index),
		c.os.Search.WithBody(bytes.NewReader(body)),
		c.os.Search.WithScroll(scrollTTL),
	)
	if err != nil {
		return fmt.Errorf("opensearch: scroll search on %s: %w", index, err)
	}

	scrollID, hits, err := decodeOpenSearchHits(res)
	if err != nil {
		return err
	}
	for len(hits) > 0 {
		if err := fn(hits); err != nil {
			return err
		}
		scrollRes, err := c.os.Scroll(
			c.os.Scroll.WithContext(ctx),
			c.os.Scroll.WithScrollID(scrollID),
			c.os.Scroll.WithScroll(scrollTTL),
		)
		if err != nil {
			return fmt.Errorf("opensearch: continue scroll on %s: %w", index, err)
		}
		scrollID, hits, err = decodeOpenSearchHits(scrollRes)
		if err != nil {
			return err
		}
	}
	return nil
}

func decodeOpenSearchHits(res *opensearchapi.Response) (string, []map[string]interface{}, error) {
	defer res.Body.Close()
	if res.IsError() {
		return "", nil, fmt.Errorf("opensearch: search response: %s", res.String())
	}

	var parsed struct {
		ScrollID string `json:"_scroll_id"`
		Hits     struct {
			Hits []struct {
				ID     string                 `json:"_id"`
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", nil, fmt.Errorf("opensearch: decode search response: %w", err)
	}

	out := make([]map[string]interface{}, len(parsed.Hits.Hits))
	for i, h := range parsed.Hits.Hits {
		h.Source["_id"] = h.ID
		out[i] = h.Source
	}
	return parsed.ScrollID, out, nil
}
