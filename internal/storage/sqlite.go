package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/saharah/saharah/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// An empty path or MemoryPath gives an in-memory database. Parent directories of a file
// path are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		dbPath = MemoryPath
	}
	inMemory := dbPath == MemoryPath
	if !inMemory {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if inMemory {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		relationship TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		size TEXT NOT NULL,
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		tags TEXT,
		pages INTEGER NOT NULL DEFAULT 0,
		preview TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents(uploaded_at);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateContact inserts a contact.
func (s *SQLiteStorage) CreateContact(ctx context.Context, c *models.EmergencyContact) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, phone, relationship, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Phone, c.Relationship, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// ListContacts returns contacts in insertion order.
func (s *SQLiteStorage) ListContacts(ctx context.Context) ([]*models.EmergencyContact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, relationship, created_at FROM contacts ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []*models.EmergencyContact{}
	for rows.Next() {
		var c models.EmergencyContact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Relationship, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

// DeleteContact removes a contact by ID.
func (s *SQLiteStorage) DeleteContact(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "contacts", id)
}

// CountContacts returns the number of contacts.
func (s *SQLiteStorage) CountContacts(ctx context.Context) (int64, error) {
	return s.count(ctx, "contacts")
}

// CreateDocument inserts a document record.
func (s *SQLiteStorage) CreateDocument(ctx context.Context, doc *models.UploadedDocument) error {
	tagsJSON, err := json.Marshal(doc.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, size_bytes, size, uploaded_at, tags, pages, preview)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Name, doc.SizeBytes, doc.Size, doc.UploadedAt, string(tagsJSON), doc.Pages, doc.Preview,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetDocument returns a document by ID.
func (s *SQLiteStorage) GetDocument(ctx context.Context, id string) (*models.UploadedDocument, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, size_bytes, size, uploaded_at, tags, pages, preview
		 FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	return doc, err
}

// ListDocuments returns documents newest first.
func (s *SQLiteStorage) ListDocuments(ctx context.Context) ([]*models.UploadedDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, size_bytes, size, uploaded_at, tags, pages, preview
		 FROM documents ORDER BY uploaded_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*models.UploadedDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document by ID.
func (s *SQLiteStorage) DeleteDocument(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "documents", id)
}

// CountDocuments returns the number of documents.
func (s *SQLiteStorage) CountDocuments(ctx context.Context) (int64, error) {
	return s.count(ctx, "documents")
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*models.UploadedDocument, error) {
	var doc models.UploadedDocument
	var tagsJSON, preview sql.NullString
	err := row.Scan(&doc.ID, &doc.Name, &doc.SizeBytes, &doc.Size, &doc.UploadedAt, &tagsJSON, &doc.Pages, &preview)
	if err != nil {
		return nil, err
	}
	doc.Preview = preview.String
	doc.Tags = []string{}
	if tagsJSON.Valid && tagsJSON.String != "" && tagsJSON.String != "null" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &doc.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	return &doc, nil
}

// table is always one of the package's own table names.
func (s *SQLiteStorage) deleteByID(ctx context.Context, table, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStorage) count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}
