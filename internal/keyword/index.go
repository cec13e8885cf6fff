// Package keyword provides full-text indexing and search over reference sections.
package keyword

import "context"

// Section is the indexed form of one reference section.
type Section struct {
	CollectionID string   `json:"collection_id"`
	MainCategory string   `json:"main_category"`
	SourceName   string   `json:"source_name"`
	Reference    string   `json:"reference"`
	Text         string   `json:"text"`
	Translation  string   `json:"translation"`
	ThemeTags    []string `json:"theme_tags"`
}

// SearchOptions optional parameters for keyword search. Nil means use defaults.
type SearchOptions struct {
	// FuzzyEnabled matches terms within Fuzziness edits for typo tolerance.
	FuzzyEnabled bool
	// Fuzziness is the maximum Levenshtein edit distance (1 or 2). Default 2.
	Fuzziness int
	// CollectionID restricts hits to one collection when set.
	CollectionID string
}

// KeywordIndex defines keyword search operations.
type KeywordIndex interface {
	Index(ctx context.Context, id string, sec *Section) error
	// Replace makes the index contain exactly docs.
	Replace(ctx context.Context, docs map[string]*Section) error
	Search(ctx context.Context, query string, limit int, opts *SearchOptions) ([]*KeywordResult, error)
	Delete(ctx context.Context, id string) error
	DocCount() (uint64, error)
	Close() error
}

// KeywordResult is a single keyword search hit.
type KeywordResult struct {
	ID    string
	Score float64
}
