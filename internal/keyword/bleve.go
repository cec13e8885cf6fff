package keyword

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
)

const defaultFuzziness = 2

// BleveIndex implements KeywordIndex using Bleve.
type BleveIndex struct {
	index bleve.Index
}

func sectionMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	// Standard analyzer (lowercase + tokenize, no stemming) so legal terms like "khula"
	// and transliterated Urdu words match as written.
	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name
	for _, f := range []string{"text", "translation", "reference", "source_name", "theme_tags"} {
		docMapping.AddFieldMappingsAt(f, text)
	}
	kw := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("collection_id", kw)
	docMapping.AddFieldMappingsAt("main_category", kw)

	im.AddDocumentMapping("section", docMapping)
	im.DefaultType = "section"
	im.DefaultMapping = docMapping
	return im
}

// NewMemIndex creates an in-memory index; contents are lost on Close.
func NewMemIndex() (*BleveIndex, error) {
	index, err := bleve.NewMemOnly(sectionMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// NewBleveIndex creates or opens a Bleve index at path. An empty path yields an in-memory index.
// If you change the index mapping in code, remove the index directory to force a rebuild.
func NewBleveIndex(path string) (*BleveIndex, error) {
	if path == "" {
		return NewMemIndex()
	}
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}
	index, err := bleve.New(path, sectionMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// Index indexes a section by id.
func (b *BleveIndex) Index(ctx context.Context, id string, sec *Section) error {
	return b.index.Index(id, sec)
}

// Replace indexes docs in one batch and deletes every other document.
func (b *BleveIndex) Replace(ctx context.Context, docs map[string]*Section) error {
	batch := b.index.NewBatch()
	count, err := b.index.DocCount()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if count > 0 {
		req := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
		req.Size = int(count)
		res, err := b.index.Search(req)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		for _, hit := range res.Hits {
			if _, keep := docs[hit.ID]; !keep {
				batch.Delete(hit.ID)
			}
		}
	}
	for id, sec := range docs {
		if err := batch.Index(id, sec); err != nil {
			return fmt.Errorf("index %s: %w", id, err)
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}
	return nil
}

// Search runs a match query (or per-term fuzzy queries) and returns up to limit results.
func (b *BleveIndex) Search(ctx context.Context, query string, limit int, opts *SearchOptions) ([]*KeywordResult, error) {
	var q blevequery.Query
	fuzziness := defaultFuzziness
	if opts != nil && opts.Fuzziness > 0 {
		fuzziness = opts.Fuzziness
	}
	if opts != nil && opts.FuzzyEnabled {
		q = buildFuzzyQuery(query, fuzziness)
	} else {
		q = bleve.NewMatchQuery(query)
	}
	if opts != nil && opts.CollectionID != "" {
		tq := bleve.NewTermQuery(opts.CollectionID)
		tq.SetField("collection_id")
		q = bleve.NewConjunctionQuery(q, tq)
	}
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	results, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]*KeywordResult, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &KeywordResult{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// buildFuzzyQuery creates a disjunction of FuzzyQueries, one per term.
func buildFuzzyQuery(queryStr string, fuzziness int) blevequery.Query {
	terms := tokenizeQuery(queryStr)
	if len(terms) == 0 {
		return bleve.NewMatchQuery(queryStr)
	}
	queries := make([]blevequery.Query, 0, len(terms))
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(fuzziness)
		queries = append(queries, fq)
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewDisjunctionQuery(queries...)
}

// tokenizeQuery splits query into lowercase terms.
func tokenizeQuery(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Delete removes a section from the index.
func (b *BleveIndex) Delete(ctx context.Context, id string) error {
	return b.index.Delete(id)
}

// DocCount returns the number of indexed sections.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
