// Package uploads keeps the bookkeeping records of documents uploaded in a session.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/extract"
	"github.com/saharah/saharah/internal/i18n"
	"github.com/saharah/saharah/internal/labels"
	"github.com/saharah/saharah/internal/models"
	"github.com/saharah/saharah/internal/storage"
	"github.com/saharah/saharah/pkg/utils"
)

// PreviewLen is the maximum preview length in runes.
const PreviewLen = 300

// DefaultMaxSize is the largest accepted upload.
const DefaultMaxSize = 10 << 20

var (
	// ErrMissingName is returned when a document has no file name.
	ErrMissingName = errors.New("document name is required")
	// ErrTooLarge is returned when a document exceeds the size limit.
	ErrTooLarge = errors.New("document too large")
)

var samples = []struct {
	name       string
	sizeBytes  int64
	uploadedAt time.Time
	tag        i18n.Text
}{
	{"Marriage Certificate.pdf", 245 << 10, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), i18n.Text{En: "Marriage", Ur: "نکاح"}},
	{"Police Report.pdf", 1258291, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), i18n.Text{En: "Legal Document", Ur: "قانونی دستاویز"}},
}

// Service records uploaded documents.
type Service struct {
	store     storage.Storage
	extractor *extract.Extractor
	logger    *zap.Logger
	now       func() time.Time
	maxSize   int64
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock sets the time source for UploadedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMaxSize sets the size limit in bytes; zero or less disables it.
func WithMaxSize(n int64) Option {
	return func(s *Service) { s.maxSize = n }
}

// NewService returns an upload service over store.
func NewService(store storage.Storage, opts ...Option) *Service {
	s := &Service{
		store:     store,
		extractor: extract.NewExtractor(),
		logger:    zap.NewNop(),
		now:       time.Now,
		maxSize:   DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxSize returns the size limit in bytes; zero or less means unlimited.
func (s *Service) MaxSize() int64 { return s.maxSize }

// Seed adds the two sample documents, tagged in lang, when the store has none.
func (s *Service) Seed(ctx context.Context, lang i18n.Language) error {
	n, err := s.store.CountDocuments(ctx)
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, d := range samples {
		doc := &models.UploadedDocument{
			ID:         uuid.New().String(),
			Name:       d.name,
			SizeBytes:  d.sizeBytes,
			Size:       utils.FormatSize(d.sizeBytes),
			UploadedAt: d.uploadedAt,
			Tags:       []string{d.tag.In(lang)},
		}
		if err := s.store.CreateDocument(ctx, doc); err != nil {
			return fmt.Errorf("seed document: %w", err)
		}
	}
	return nil
}

// Add records a document. The content itself is not kept; only its size, page count
// and a text preview when the format can be read.
func (s *Service) Add(ctx context.Context, name string, content []byte, tags []string) (*models.UploadedDocument, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, ErrMissingName
	}
	size := int64(len(content))
	if s.maxSize > 0 && size > s.maxSize {
		return nil, fmt.Errorf("%s is %s: %w", name, utils.FormatSize(size), ErrTooLarge)
	}
	doc := &models.UploadedDocument{
		ID:         uuid.New().String(),
		Name:       name,
		SizeBytes:  size,
		Size:       utils.FormatSize(size),
		UploadedAt: s.now().UTC(),
		Tags:       cleanTags(tags),
	}
	if s.extractor.Supported(name) {
		res, err := s.extractor.Extract(name, content)
		if err != nil {
			s.logger.Warn("document text extraction failed", zap.String("name", name), zap.Error(err))
		} else {
			doc.Pages = res.Pages
			doc.Preview = utils.Truncate(strings.Join(strings.Fields(res.Text), " "), PreviewLen)
		}
	}
	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("document uploaded", zap.String("id", doc.ID), zap.String("name", name), zap.Int64("size", size))
	return doc, nil
}

// List returns documents newest first.
func (s *Service) List(ctx context.Context) ([]*models.UploadedDocument, error) {
	return s.store.ListDocuments(ctx)
}

// Get returns one document. An unknown id yields storage.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.UploadedDocument, error) {
	return s.store.GetDocument(ctx, id)
}

// Delete removes a document. An unknown id yields storage.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteDocument(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("document deleted", zap.String("id", id))
	return nil
}

// cleanTags trims tags, drops blanks and duplicates.
func cleanTags(tags []string) []string {
	trimmed := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return labels.Unique(trimmed)
}

// ParseTags splits a comma-separated tag list.
func ParseTags(s string) []string {
	return cleanTags(strings.Split(s, ","))
}
