package models

import "errors"

// ErrEmptyQuery is returned when a search query has no text.
var ErrEmptyQuery = errors.New("query cannot be empty")

// SearchQuery is a section search request.
type SearchQuery struct {
	Query        string `json:"query"`
	Limit        int    `json:"limit,omitempty"`
	CollectionID string `json:"collection_id,omitempty"`
	FuzzyEnabled bool   `json:"fuzzy_enabled,omitempty"`
}

// Validate ensures the query is non-empty and normalizes the limit.
func (q *SearchQuery) Validate() error {
	if q.Query == "" {
		return ErrEmptyQuery
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return nil
}
