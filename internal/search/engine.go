// Package search provides section-level full-text search over the reference catalog.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/keyword"
	"github.com/saharah/saharah/internal/models"
)

// snippetLen is the maximum snippet length in runes.
const snippetLen = 200

// Engine indexes catalog sections and answers section searches.
type Engine struct {
	keywordIndex keyword.KeywordIndex
	logger       *zap.Logger

	mu      sync.RWMutex
	catalog *models.Catalog
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a search engine over the given keyword index.
func NewEngine(keywordIndex keyword.KeywordIndex, opts ...EngineOption) *Engine {
	e := &Engine{keywordIndex: keywordIndex, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SectionID is the index document id of section i of a collection.
func SectionID(collectionID string, i int) string {
	return collectionID + "#" + strconv.Itoa(i)
}

// ParseSectionID splits a SectionID back into collection id and section index.
func ParseSectionID(id string) (string, int, bool) {
	at := strings.LastIndexByte(id, '#')
	if at < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(id[at+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return id[:at], n, true
}

// Reindex replaces the index contents with the sections of cat. A catalog older than the
// one already indexed is ignored; Reindex reports whether the index changed.
func (e *Engine) Reindex(ctx context.Context, cat *models.Catalog) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.catalog != nil && cat.Generation != 0 && cat.Generation < e.catalog.Generation {
		e.logger.Debug("reindex skipped for stale catalog",
			zap.Uint64("generation", cat.Generation),
			zap.Uint64("indexed_generation", e.catalog.Generation))
		return false, nil
	}
	docs := make(map[string]*keyword.Section, cat.SectionCount())
	for _, col := range cat.Collections {
		for i, sec := range col.Sections {
			docs[SectionID(col.ID, i)] = &keyword.Section{
				CollectionID: col.ID,
				MainCategory: string(col.MainCategory),
				SourceName:   sec.SourceName,
				Reference:    sec.Reference,
				Text:         sec.Text,
				Translation:  sec.Translation,
				ThemeTags:    sec.ThemeTags,
			}
		}
	}
	if err := e.keywordIndex.Replace(ctx, docs); err != nil {
		return false, fmt.Errorf("reindex: %w", err)
	}
	e.catalog = cat
	e.logger.Debug("sections indexed", zap.Int("sections", len(docs)), zap.Uint64("generation", cat.Generation))
	return true, nil
}

// Generation returns the generation of the indexed catalog, or 0 before the first Reindex.
func (e *Engine) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.catalog == nil {
		return 0
	}
	return e.catalog.Generation
}

// Sync reindexes cat unless it is the catalog already indexed.
func (e *Engine) Sync(ctx context.Context, cat *models.Catalog) error {
	e.mu.RLock()
	current := e.catalog
	e.mu.RUnlock()
	if current != nil && current.Generation == cat.Generation {
		return nil
	}
	_, err := e.Reindex(ctx, cat)
	return err
}

// IndexSize returns the number of indexed sections.
func (e *Engine) IndexSize() int {
	n, err := e.keywordIndex.DocCount()
	if err != nil {
		return 0
	}
	return int(n)
}

// Search runs a keyword search over sections. When the exact search finds nothing it is
// retried once with fuzzy matching.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	start := time.Now()
	if err := query.Validate(); err != nil {
		return nil, err
	}
	opts := &keyword.SearchOptions{FuzzyEnabled: query.FuzzyEnabled, CollectionID: query.CollectionID}
	hits, err := e.keywordIndex.Search(ctx, query.Query, query.Limit, opts)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	autoFuzzy := false
	if len(hits) == 0 && !query.FuzzyEnabled {
		opts.FuzzyEnabled = true
		fuzzyHits, fuzzyErr := e.keywordIndex.Search(ctx, query.Query, query.Limit, opts)
		if fuzzyErr == nil && len(fuzzyHits) > 0 {
			hits = fuzzyHits
			autoFuzzy = true
		}
	}

	e.mu.RLock()
	cat := e.catalog
	e.mu.RUnlock()
	terms := strings.Fields(query.Query)
	results := make([]*models.SearchResult, 0, len(hits))
	for _, h := range hits {
		r := e.resolve(cat, h.ID)
		if r == nil {
			continue
		}
		r.Score = h.Score
		r.Rank = len(results) + 1
		r.Snippet = Highlight(r.Snippet, terms, snippetLen)
		results = append(results, r)
	}
	return &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Query:     query.Query,
		AutoFuzzy: autoFuzzy,
	}, nil
}

// resolve maps an index id to a result carrying the full section text in Snippet.
func (e *Engine) resolve(cat *models.Catalog, id string) *models.SearchResult {
	colID, i, ok := ParseSectionID(id)
	if !ok || cat == nil {
		return nil
	}
	for _, col := range cat.Collections {
		if col.ID != colID || i >= len(col.Sections) {
			continue
		}
		sec := col.Sections[i]
		return &models.SearchResult{
			CollectionID:    col.ID,
			CollectionTitle: col.Title,
			SectionIndex:    i,
			Reference:       sec.Reference,
			Snippet:         sec.Text,
		}
	}
	e.logger.Debug("search hit not in indexed catalog", zap.String("id", id))
	return nil
}
