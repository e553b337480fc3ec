package resolvers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/mitchellh/mapstructure"

	allocationEntity "shipshare.GO/model/entity/allocation"
	allocationRepo "shipshare.GO/model/repository/allocation"
	gqlmodels "shipshare.GO/graphql/models"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns singleton SearchService.
func GetSearchService() *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService()
	})
	return searchServiceInstance
}

// SearchService matches allocations by free text (order number, tracking
// number, merchant name) against an externally maintained index. Without
// Elasticsearch it falls back to a LIKE scan on the main table.
type SearchService struct {
	client *elasticsearch.Client
	prefix string
}

func NewSearchService() *SearchService {
	host := os.Getenv("ELASTICSEARCH_HOST")
	prefix := os.Getenv("ELASTICSEARCH_INDEX_PREFIX")
	if prefix == "" {
		prefix = "shipshare"
	}
	if host == "" {
		return &SearchService{prefix: prefix}
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return &SearchService{prefix: prefix}
	}

	return &SearchService{
		client: client,
		prefix: prefix,
	}
}

// esAllocationDoc is the slice of the indexed document we need back: the
// business key, used to hydrate full rows from the DB.
type esAllocationDoc struct {
	OrderNumber string `mapstructure:"order_number"`
}

// OrderNumbers runs the text query and returns matching order numbers.
func (s *SearchService) OrderNumbers(ctx context.Context, query string, limit int) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("elasticsearch not configured")
	}

	body := map[string]interface{}{
		"size":    limit,
		"_source": []string{"order_number"},
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"order_number^3", "tracking_number^2", "merchant_names"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.prefix+"_allocations"),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	orderNumbers := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		var doc esAllocationDoc
		if err := mapstructure.Decode(hit.Source, &doc); err != nil {
			continue
		}
		if doc.OrderNumber != "" {
			orderNumbers = append(orderNumbers, doc.OrderNumber)
		}
	}
	return orderNumbers, nil
}

// Search resolves free-text allocation search.
func (r *queryResolver) Search(ctx context.Context, query string, limit int) ([]*gqlmodels.Allocation, error) {
	repo := allocationRepo.NewAllocationRepository(r.db)

	orderNumbers, err := GetSearchService().OrderNumbers(ctx, query, limit)
	if err == nil {
		if len(orderNumbers) == 0 {
			return []*gqlmodels.Allocation{}, nil
		}
		rows, err := repo.List(allocationRepo.ListFilters{OrderNumbers: orderNumbers})
		if err != nil {
			return nil, err
		}
		out := make([]*gqlmodels.Allocation, 0, len(rows))
		for i := range rows {
			out = append(out, mapAllocation(&rows[i]))
		}
		return out, nil
	}

	// SQL fallback when the index is unavailable
	like := "%" + query + "%"
	var matched []string
	if err := r.db.Model(&allocationEntity.AllocationMain{}).
		Where("status = ?", allocationEntity.StatusActive).
		Where("order_number LIKE ? OR tracking_number LIKE ?", like, like).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Pluck("order_number", &matched).Error; err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return []*gqlmodels.Allocation{}, nil
	}

	rows, err := repo.List(allocationRepo.ListFilters{OrderNumbers: matched})
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Allocation, 0, len(rows))
	for i := range rows {
		out = append(out, mapAllocation(&rows[i]))
	}
	return out, nil
}
