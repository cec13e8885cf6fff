// Package storage defines the session store for emergency contacts and uploaded documents.
package storage

import (
	"context"
	"errors"

	"github.com/saharah/saharah/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// MemoryPath is the database path of a store that lives only as long as the process.
const MemoryPath = ":memory:"

// Storage defines contact and document persistence operations.
type Storage interface {
	// Contact operations
	CreateContact(ctx context.Context, c *models.EmergencyContact) error
	ListContacts(ctx context.Context) ([]*models.EmergencyContact, error)
	DeleteContact(ctx context.Context, id string) error
	CountContacts(ctx context.Context) (int64, error)

	// Document operations
	CreateDocument(ctx context.Context, doc *models.UploadedDocument) error
	GetDocument(ctx context.Context, id string) (*models.UploadedDocument, error)
	ListDocuments(ctx context.Context) ([]*models.UploadedDocument, error)
	DeleteDocument(ctx context.Context, id string) error
	CountDocuments(ctx context.Context) (int64, error)

	Close() error
}
