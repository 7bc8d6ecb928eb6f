// internal/workers/listing/search-units/models.go
package searchunits

import (
	"leasing-workers/internal/models"
	"leasing-workers/internal/search"
)

type Input struct {
	Filters search.Filters `json:"filters"`
}

type Output struct {
	Units     []models.Unit `json:"units"`
	TotalHits int           `json:"totalHits"`
}
