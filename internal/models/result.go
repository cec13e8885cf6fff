package models

// SearchResult is a single section hit.
type SearchResult struct {
	CollectionID    string  `json:"collection_id"`
	CollectionTitle string  `json:"collection_title"`
	SectionIndex    int     `json:"section_index"`
	Reference       string  `json:"reference"`
	Snippet         string  `json:"snippet"`
	Score           float64 `json:"score"`
	Rank            int     `json:"rank"`
}

// SearchResponse is the response for a section search.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
	Query     string          `json:"query"`
	// AutoFuzzy is set when fuzzy matching was enabled because the exact search found nothing.
	AutoFuzzy bool `json:"auto_fuzzy,omitempty"`
}
