package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchClient is the Elasticsearch backend for the Client interface.
type ElasticsearchClient struct {
	es *elasticsearch.Client
}

// NewElasticsearchClient connects to an Elasticsearch cluster at the given
// addresses.
func NewElasticsearchClient(addresses []string, username, password string) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: new client: %w", err)
	}
	return &ElasticsearchClient{es: es}, nil
}

func (c *ElasticsearchClient) EnsureIndex(ctx context.Context, index string, mapping Mapping) error {
	exists, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch: check index %s: %w", index, err)
	}
	defer exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	body, err := json.Marshal(buildMappingBody(mapping))
	if err != nil {
		return fmt.Errorf("elasticsearch: encode mapping for %s: %w", index, err)
	}

	res, err := c.es.Indices.Create(index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: create index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch: create index %s: %s", index, res.String())
	}
	return nil
}

func (c *ElasticsearchClient) DeleteIndex(ctx context.Context, index string) error {
	res, err := c.es.Indices.Delete([]string{index},
		c.es.Indices.Delete.WithContext(ctx),
		c.es.Indices.Delete.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: delete index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch: delete index %s: %s", index, res.String())
	}
	return nil
}

func (c *ElasticsearchClient) Bulk(ctx context.Context, index string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, d := range docs {
		action := map[string]interface{}{"index": map[string]interface{}{"_index": index, "_id": d.ID}}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return fmt.Errorf("elasticsearch: encode bulk action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(d.Source); err != nil {
			return fmt.Errorf("elasticsearch: encode bulk document %s: %w", d.ID, err)
		}
	}

	res, err := c.es.Bulk(bytes.NewReader(buf.Bytes()),
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithIndex(index),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: bulk request to %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch: bulk request to %s: %s", index, res.String())
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("elasticsearch: decode bulk response for %s: %w", index, err)
	}
	return parsed.firstItemError(index)
}

func (c *ElasticsearchClient) Get(ctx context.Context, index, id string) (map[string]interface{}, bool, error) {
	res, err := c.es.Get(index, id, c.es.Get.WithContext(ctx))
	if err != nil {
		return nil, false, fmt.Errorf("elasticsearch: get %s/%s: %w", index, id, err)
	}
	defer res.Body.Close()
	if res.StatusCode == 404 {
		return nil, false, nil
	}
	if res.IsError() {
		return nil, false, fmt.Errorf("elasticsearch: get %s/%s: %s", index, id, res.String())
	}

	var parsed struct {
		Source map[string]interface{} `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("elasticsearch: decode get response for %s/%s: %w", index, id, err)
	}
	return parsed.Source, true, nil
}

func (c *ElasticsearchClient) Scroll(ctx context.Context, index string, batchSize int, fn func([]map[string]interface{}) error) error {
	query := map[string]interface{}{"query": map[string]interface{}{"match_all": map[string]interface{}{}}, "size": batchSize}
	body, err := json.Marshal(query)
	if err != nil {
		return fmt.Errorf("elasticsearch: encode scroll query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(body)),
		c.es.Search.WithScroll(scrollTTL),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: scroll search on %s: %w", index, err)
	}

	scrollID, hits, err := decodeSearchHits(res)
	if err != nil {
		return err
	}
	for len(hits) > 0 {
		if err := fn(hits); err != nil {
			return err
		}
		scrollRes, err := c.es.Scroll(
			c.es.Scroll.WithContext(ctx),
			c.es.Scroll.WithScrollID(scrollID),
			c.es.Scroll.WithScroll(scrollTTL),
		)
		if err != nil {
			return fmt.Errorf("elasticsearch: continue scroll on %s: %w", index, err)
		}
		scrollID, hits, err = decodeSearchHits(scrollRes)
		if err != nil {
			return err
		}
	}
	return nil
}

const scrollTTL = "1m"

func decodeSearchHits(res *esapi.Response) (string, []map[string]interface{}, error) {
	defer res.Body.Close()
	if res.IsError() {
		return "", nil, fmt.Errorf("elasticsearch: search response: %s", res.String())
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
		return "", nil, fmt.Errorf("elasticsearch: decode search response: %w", err)
	}

	out := make([]map[string]interface{}, len(parsed.Hits.Hits))
	for i, h := range parsed.Hits.Hits {
		h.Source["_id"] = h.ID
		out[i] = h.Source
	}
	return parsed.ScrollID, out, nil
}

type bulkResponse struct {
	Items []map[string]struct {
		Error *struct {
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

func (r bulkResponse) firstItemError(index string) error {
	for _, item := range r.Items {
		for action, result := range item {
			if result.Error != nil {
				return fmt.Errorf("elasticsearch: bulk %s on %s failed: %s", action, index, result.Error.Reason)
			}
		}
	}
	return nil
}
