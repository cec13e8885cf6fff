// Package models defines core data structures for reference texts, directory entries,
// session records and search results.
package models

// MainCategory is one of the two top-level dataset buckets.
type MainCategory string

const (
	// LegalLaws is the statutory/legal bucket.
	LegalLaws MainCategory = "Legal Laws"
	// IslamicLaws is the religious/Islamic bucket.
	IslamicLaws MainCategory = "Islamic Laws"
)

// AllCategories is the leading sentinel of the category menu.
const AllCategories = "All Categories"

// ReferenceSection is one excerpt of a legal or religious source.
type ReferenceSection struct {
	Category       string   `json:"category"`
	SourceType     string   `json:"source_type"`
	SourceName     string   `json:"source_name"`
	Reference      string   `json:"reference"`
	Text           string   `json:"text"`
	Country        string   `json:"country"`
	RelevanceScore float64  `json:"relevance_score"`
	ThemeTags      []string `json:"theme_tags"`

	// Islamic bucket only.
	Translation   string  `json:"translation,omitempty"`
	SemanticScore float64 `json:"semantic_score,omitempty"`
	MatchedTheme  string  `json:"matched_theme,omitempty"`
}

// ReferenceCollection is one source document's full set of sections (a "law book").
type ReferenceCollection struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     string              `json:"category"`
	MainCategory MainCategory        `json:"main_category"`
	Sections     []*ReferenceSection `json:"sections"`
	PDFPath      string              `json:"pdf_path,omitempty"`
}

// CollectionSummary is a collection without its sections, used for catalog listings.
type CollectionSummary struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	MainCategory MainCategory `json:"main_category"`
	SectionCount int          `json:"section_count"`
	PDFPath      string       `json:"pdf_path,omitempty"`
}

// Summary returns the listing view of c.
func (c *ReferenceCollection) Summary() *CollectionSummary {
	return &CollectionSummary{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		MainCategory: c.MainCategory,
		SectionCount: len(c.Sections),
		PDFPath:      c.PDFPath,
	}
}

// Catalog is the ordered result of one catalog load: legal bucket first, then Islamic,
// mapping-table order within each bucket.
type Catalog struct {
	Collections []*ReferenceCollection `json:"collections"`
	// Generation is the monotonic sequence number of the load that produced this catalog.
	Generation uint64 `json:"generation"`
}

// Len returns the number of collections, treating a nil catalog as empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Collections)
}

// SectionCount returns the total number of sections across all collections.
func (c *Catalog) SectionCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, col := range c.Collections {
		n += len(col.Sections)
	}
	return n
}
