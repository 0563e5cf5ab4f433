// internal/products/elastic.go
package products

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/common/metrics"
	"shopmate-api/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticStore implements Store against a product search index. Selected by
// database.driver when the catalog lives in Elasticsearch instead of Postgres.
type ElasticStore struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticStore(client *elasticsearch.Client, index string, log logger.Logger) *ElasticStore {
	return &ElasticStore{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "product-store-es"}),
	}
}

type esHit struct {
	Source models.Product `json:"_source"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []esHit `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticStore) NamesByCategory(ctx context.Context, category string) (names []string, err error) {
	start := time.Now()
	defer func() { s.observe(models.QueryTypeNamesByCategory, start, err) }()

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"wildcard": map[string]interface{}{
				"category": map[string]interface{}{
					"value":            "*" + strings.ToLower(category) + "*",
					"case_insensitive": true,
				},
			},
		},
		"_source": []string{"name"},
		"size":    100,
		"sort":    []interface{}{map[string]interface{}{"name.keyword": "asc"}},
	}

	resp, err := s.search(ctx, body)
	if err != nil {
		err = wrapQueryError(ctx, models.QueryTypeNamesByCategory, err)
		return nil, err
	}

	names = make([]string, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		names = append(names, hit.Source.Name)
	}
	return names, nil
}

func (s *ElasticStore) Count(ctx context.Context) (count int, err error) {
	start := time.Now()
	defer func() { s.observe(models.QueryTypeProductCount, start, err) }()

	res, err := s.client.Count(
		s.client.Count.WithContext(ctx),
		s.client.Count.WithIndex(s.index),
	)
	if err != nil {
		err = wrapQueryError(ctx, models.QueryTypeProductCount, err)
		return 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		err = wrapQueryError(ctx, models.QueryTypeProductCount, fmt.Errorf("count products: %s", res.Status()))
		return 0, err
	}

	var countResp struct {
		Count int `json:"count"`
	}
	if decodeErr := json.NewDecoder(res.Body).Decode(&countResp); decodeErr != nil {
		err = wrapQueryError(ctx, models.QueryTypeProductCount, fmt.Errorf("decode count response: %w", decodeErr))
		return 0, err
	}
	return countResp.Count, nil
}

func (s *ElasticStore) ListNames(ctx context.Context, limit int) (names []string, err error) {
	start := time.Now()
	defer func() { s.observe(models.QueryTypeProductList, start, err) }()

	body := map[string]interface{}{
		"query":   map[string]interface{}{"match_all": map[string]interface{}{}},
		"_source": []string{"name"},
		"size":    limit,
		"sort":    []interface{}{map[string]interface{}{"name.keyword": "asc"}},
	}

	resp, err := s.search(ctx, body)
	if err != nil {
		err = wrapQueryError(ctx, models.QueryTypeProductList, err)
		return nil, err
	}

	names = make([]string, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		names = append(names, hit.Source.Name)
	}
	return names, nil
}

func (s *ElasticStore) FindByName(ctx context.Context, fragment string) (product *models.Product, err error) {
	start := time.Now()
	defer func() { s.observe(models.QueryTypeFindByName, start, err) }()

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"wildcard": map[string]interface{}{
				"name": map[string]interface{}{
					"value":            "*" + strings.ToLower(fragment) + "*",
					"case_insensitive": true,
				},
			},
		},
		"size": 1,
	}

	resp, err := s.search(ctx, body)
	if err != nil {
		err = wrapQueryError(ctx, models.QueryTypeFindByName, err)
		return nil, err
	}
	if len(resp.Hits.Hits) == 0 {
		return nil, nil
	}

	hit := resp.Hits.Hits[0].Source
	return &hit, nil
}

func (s *ElasticStore) observe(queryType models.QueryType, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		s.logger.Warn("product query failed", map[string]interface{}{
			"queryType": string(queryType),
			"error":     err.Error(),
		})
	}
	metrics.ProductQueries.WithLabelValues(string(queryType), status).Inc()
	metrics.ProductQueryDuration.WithLabelValues(string(queryType)).Observe(time.Since(start).Seconds())
}

func (s *ElasticStore) search(ctx context.Context, body map[string]interface{}) (*esSearchResponse, error) {
	raw, _ := json.Marshal(body)

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(raw),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search products: %s", res.Status())
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &parsed, nil
}
