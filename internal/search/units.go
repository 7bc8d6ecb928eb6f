// Package search queries the unit index for available, qualified units
// matching an applicant's filters.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Filters narrows a unit search. Zero values mean "no constraint".
type Filters struct {
	PropertyID string  `json:"propertyId"`
	Bedrooms   int     `json:"bedrooms"`
	MinRent    float64 `json:"minRent"`
	MaxRent    float64 `json:"maxRent"`
	From       int     `json:"from"`
	Size       int     `json:"size"`
}

type Result struct {
	Units     []models.Unit `json:"units"`
	TotalHits int           `json:"totalHits"`
}

type UnitSearch struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewUnitSearch(client *elasticsearch.Client, index string, log logger.Logger) *UnitSearch {
	return &UnitSearch{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "unitsearch"}),
	}
}

// BuildQuery assembles the bool query for a filter set. Only available,
// qualified units are ever returned; the rest of the filters are optional.
func BuildQuery(f Filters) map[string]interface{} {
	filterClauses := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"available": true}},
		map[string]interface{}{"term": map[string]interface{}{"qualified": true}},
	}

	if f.PropertyID != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"propertyId": f.PropertyID},
		})
	}
	if f.Bedrooms > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"bedrooms": f.Bedrooms},
		})
	}

	rentRange := map[string]interface{}{}
	if f.MinRent > 0 {
		rentRange["gte"] = f.MinRent
	}
	if f.MaxRent > 0 {
		rentRange["lte"] = f.MaxRent
	}
	if len(rentRange) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"nested": map[string]interface{}{
				"path": "leaseTerms",
				"query": map[string]interface{}{
					"range": map[string]interface{}{"leaseTerms.rent": rentRange},
				},
			},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": filterClauses,
			},
		},
		"sort": []map[string]interface{}{{"number": "asc"}},
	}
}

// Search runs the filter query and decodes hits into unit models.
func (s *UnitSearch) Search(ctx context.Context, f Filters) (*Result, error) {
	body, err := json.Marshal(BuildQuery(f))
	if err != nil {
		return nil, errors.NewSearchQueryError(err.Error())
	}

	from := f.From
	size := f.Size
	if size == 0 {
		size = 20
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		From:  &from,
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, errors.NewSearchQueryError(err.Error())
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, errors.NewSearchQueryError(fmt.Sprintf("status %s: %s", res.Status(), msg))
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Unit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryError(err.Error())
	}

	units := make([]models.Unit, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		units = append(units, hit.Source)
	}

	s.logger.Debug("unit search completed", map[string]interface{}{
		"totalHits": parsed.Hits.Total.Value,
		"returned":  len(units),
	})

	return &Result{Units: units, TotalHits: parsed.Hits.Total.Value}, nil
}
