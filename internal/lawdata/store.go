// Package lawdata loads the reference-text catalog from static JSON assets and answers
// lookups and category queries over it.
package lawdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/saharah/saharah/internal/labels"
	"github.com/saharah/saharah/internal/models"
)

// descriptionTags is how many unique theme tags a synthesized description mentions.
const descriptionTags = 5

var errMissingSourceName = errors.New("first section has no source_name")

// Store produces the catalog and answers point lookups.
type Store struct {
	source       Source
	table        Table
	logger       *zap.Logger
	cache        bool
	fetchTimeout time.Duration
	loadTimeout  time.Duration

	seq    atomic.Uint64
	group  singleflight.Group
	mu     sync.RWMutex
	cached *models.Catalog
	floor  uint64 // loads at or below this generation were started before the last Invalidate
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for per-entry diagnostics.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// WithTable replaces the compiled-in mapping table.
func WithTable(t Table) StoreOption {
	return func(s *Store) { s.table = t }
}

// WithCache memoizes the catalog until Invalidate is called.
func WithCache(enabled bool) StoreOption {
	return func(s *Store) { s.cache = enabled }
}

// WithFetchTimeout bounds each individual fetch. Zero means no timeout.
func WithFetchTimeout(d time.Duration) StoreOption {
	return func(s *Store) { s.fetchTimeout = d }
}

// WithLoadTimeout bounds a whole cache refill. Zero means no timeout.
func WithLoadTimeout(d time.Duration) StoreOption {
	return func(s *Store) { s.loadTimeout = d }
}

// NewStore returns a store reading from src using DefaultTable.
func NewStore(src Source, opts ...StoreOption) *Store {
	s := &Store{
		source: src,
		table:  DefaultTable,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the mapping table the store loads from.
func (s *Store) Table() Table { return s.table }

// LoadCatalog fetches every mapping entry, legal bucket first, and returns the collections
// that could be fetched and were non-empty. Per-entry failures are logged and skipped; the
// load itself never fails.
//
// With the cache on, a refill runs detached from ctx so one caller going away cannot
// damage the shared result; a caller whose ctx ends first gets an empty catalog.
// A refill in which any fetch hit a context deadline or cancellation is not memoized.
func (s *Store) LoadCatalog(ctx context.Context) *models.Catalog {
	if !s.cache {
		cat, _ := s.load(ctx)
		return cat
	}
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached
	}
	ch := s.group.DoChan("catalog", func() (interface{}, error) {
		return s.refill(context.WithoutCancel(ctx)), nil
	})
	select {
	case res := <-ch:
		return res.Val.(*models.Catalog)
	case <-ctx.Done():
		return &models.Catalog{Collections: []*models.ReferenceCollection{}}
	}
}

func (s *Store) refill(ctx context.Context) *models.Catalog {
	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}
	cat, degraded := s.load(ctx)
	if degraded {
		s.logger.Warn("catalog load interrupted, not cached",
			zap.Uint64("generation", cat.Generation),
			zap.Int("collections", len(cat.Collections)))
		return cat
	}
	s.remember(cat)
	return cat
}

// GetCollection returns the collection with the given id from a catalog load.
func (s *Store) GetCollection(ctx context.Context, id string) (*models.ReferenceCollection, bool) {
	return Find(s.LoadCatalog(ctx), id)
}

// Invalidate drops the memoized catalog. Loads already in flight are not memoized.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.floor = s.seq.Load()
	s.mu.Unlock()
	s.group.Forget("catalog")
}

// remember memoizes cat unless a newer catalog is already held or cat predates Invalidate.
func (s *Store) remember(cat *models.Catalog) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cat.Generation <= s.floor {
		return false
	}
	if s.cached != nil && s.cached.Generation >= cat.Generation {
		return false
	}
	s.cached = cat
	return true
}

// load reports degraded when an entry was skipped because a context ended rather than
// because its asset was missing or malformed.
func (s *Store) load(ctx context.Context) (cat *models.Catalog, degraded bool) {
	cat = &models.Catalog{
		Generation:  s.seq.Add(1),
		Collections: make([]*models.ReferenceCollection, 0, s.table.Len()),
	}
	for _, entries := range [][]Entry{s.table.Legal, s.table.Islamic} {
		for _, e := range entries {
			col, err := s.loadEntry(ctx, e)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					degraded = true
				}
				s.logger.Warn("catalog entry skipped",
					zap.String("bucket", string(e.Bucket)),
					zap.String("file", e.JSONFile),
					zap.Error(err))
				continue
			}
			if col == nil {
				s.logger.Debug("catalog entry empty", zap.String("bucket", string(e.Bucket)), zap.String("file", e.JSONFile))
				continue
			}
			cat.Collections = append(cat.Collections, col)
		}
	}
	s.logger.Debug("catalog loaded",
		zap.Uint64("generation", cat.Generation),
		zap.Int("collections", len(cat.Collections)),
		zap.Int("entries", s.table.Len()))
	return cat, degraded
}

// loadEntry returns (nil, nil) for an entry whose file holds no sections.
func (s *Store) loadEntry(ctx context.Context, e Entry) (*models.ReferenceCollection, error) {
	sections, err := s.fetchSections(ctx, e)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, nil
	}
	first := sections[0]
	title := first.SourceName
	if title == "" {
		if e.Bucket != BucketIslamic {
			return nil, errMissingSourceName
		}
		title = e.Category
	}
	return &models.ReferenceCollection{
		ID:           e.ID,
		Title:        title,
		Description:  Describe(e.Bucket, sections),
		Category:     e.Category,
		MainCategory: e.Bucket.MainCategory(),
		Sections:     sections,
		PDFPath:      e.PDFPath(),
	}, nil
}

func (s *Store) fetchSections(ctx context.Context, e Entry) ([]*models.ReferenceSection, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	rc, err := s.source.Fetch(ctx, e.ResourcePath())
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var raw []*models.ReferenceSection
	if err := json.NewDecoder(rc).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", e.JSONFile, err)
	}
	// Null elements and sections without text are not sections.
	sections := raw[:0]
	for _, sec := range raw {
		if sec == nil || strings.TrimSpace(sec.Text) == "" {
			continue
		}
		sections = append(sections, sec)
	}
	if dropped := len(raw) - len(sections); dropped > 0 {
		s.logger.Debug("sections without text dropped",
			zap.String("file", e.JSONFile),
			zap.Int("dropped", dropped),
			zap.Int("kept", len(sections)))
	}
	return sections, nil
}

// Describe synthesizes the collection description from the first five unique theme tags
// across sections and the first section's source type.
func Describe(b Bucket, sections []*models.ReferenceSection) string {
	var all []string
	for _, sec := range sections {
		all = append(all, sec.ThemeTags...)
	}
	tags := strings.Join(labels.First(labels.Unique(all), descriptionTags), ", ")
	sourceType := ""
	if len(sections) > 0 {
		sourceType = sections[0].SourceType
	}
	if b == BucketIslamic {
		return fmt.Sprintf("Islamic guidance on %s from %s.", tags, sourceType)
	}
	return fmt.Sprintf("Covers %s and related matters under %s.", tags, sourceType)
}

// Find returns the first collection in cat whose id matches.
func Find(cat *models.Catalog, id string) (*models.ReferenceCollection, bool) {
	if cat == nil {
		return nil, false
	}
	for _, c := range cat.Collections {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}
