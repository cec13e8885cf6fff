// Package contacts manages the session's emergency contacts.
package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/i18n"
	"github.com/saharah/saharah/internal/models"
	"github.com/saharah/saharah/internal/storage"
)

var (
	// ErrMissingFields is returned when a name, phone or relationship is empty.
	ErrMissingFields = errors.New("name, phone and relationship are required")
	// ErrUnknownRelationship is returned for a relationship outside the fixed set.
	ErrUnknownRelationship = errors.New("unknown relationship")
)

var relationships = []struct {
	value string
	label i18n.Text
}{
	{"mother", i18n.Text{En: "Mother", Ur: "والدہ"}},
	{"father", i18n.Text{En: "Father", Ur: "والد"}},
	{"sister", i18n.Text{En: "Sister", Ur: "بہن"}},
	{"brother", i18n.Text{En: "Brother", Ur: "بھائی"}},
	{"friend", i18n.Text{En: "Friend", Ur: "دوست"}},
	{"other", i18n.Text{En: "Other", Ur: "دیگر"}},
}

// Relationships returns the relationship options.
func Relationships(lang i18n.Language) []models.Option {
	opts := make([]models.Option, len(relationships))
	for i, r := range relationships {
		opts[i] = models.Option{Value: r.value, Label: r.label.In(lang)}
	}
	return opts
}

// RelationshipLabel returns the localized label of a relationship, or "" when unknown.
func RelationshipLabel(lang i18n.Language, value string) string {
	for _, r := range relationships {
		if r.value == value {
			return r.label.In(lang)
		}
	}
	return ""
}

var samples = []struct {
	name         i18n.Text
	phone        string
	relationship string
}{
	{i18n.Text{En: "Sister - Fatima", Ur: "بہن - فاطمہ"}, "+92-300-1234567", "sister"},
	{i18n.Text{En: "Friend - Sarah", Ur: "دوست - سارہ"}, "+92-301-2345678", "friend"},
}

// Service validates and stores emergency contacts.
type Service struct {
	store  storage.Storage
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock sets the time source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a contact service over store.
func NewService(store storage.Storage, opts ...Option) *Service {
	s := &Service{store: store, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed adds the two sample contacts, named in lang, when the store has none.
func (s *Service) Seed(ctx context.Context, lang i18n.Language) error {
	n, err := s.store.CountContacts(ctx)
	if err != nil {
		return fmt.Errorf("count contacts: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, c := range samples {
		if _, err := s.Add(ctx, c.name.In(lang), c.phone, c.relationship); err != nil {
			return fmt.Errorf("seed contact: %w", err)
		}
	}
	return nil
}

// Add validates and stores a new contact.
func (s *Service) Add(ctx context.Context, name, phone, relationship string) (*models.EmergencyContact, error) {
	name, phone, relationship = strings.TrimSpace(name), strings.TrimSpace(phone), strings.TrimSpace(relationship)
	if name == "" || phone == "" || relationship == "" {
		return nil, ErrMissingFields
	}
	if RelationshipLabel(i18n.English, relationship) == "" {
		return nil, fmt.Errorf("%q: %w", relationship, ErrUnknownRelationship)
	}
	c := &models.EmergencyContact{
		ID:           uuid.New().String(),
		Name:         name,
		Phone:        phone,
		Relationship: relationship,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateContact(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Debug("emergency contact added", zap.String("id", c.ID), zap.String("relationship", relationship))
	return c, nil
}

// List returns all contacts in the order they were added.
func (s *Service) List(ctx context.Context) ([]*models.EmergencyContact, error) {
	return s.store.ListContacts(ctx)
}

// Delete removes a contact. An unknown id yields storage.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteContact(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("emergency contact deleted", zap.String("id", id))
	return nil
}
