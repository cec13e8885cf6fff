// Package extract provides text extraction for uploaded documents.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for file formats with no text extractor.
var ErrUnsupported = errors.New("unsupported document format")

// Result is the text of a document and, where the format has pages, its page count.
type Result struct {
	Text  string
	Pages int
}

// Extractor extracts plain text from uploaded document bytes.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supported reports whether name has an extension the extractor understands.
func (e *Extractor) Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx", ".xlsx", ".txt", ".md":
		return true
	}
	return false
}

// Extract returns the text of a document, choosing the format by the extension of name.
// Formats without an extractor (images, legacy .doc) return ErrUnsupported.
func (e *Extractor) Extract(name string, content []byte) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		text, err := extractDOCX(content)
		if err != nil {
			return nil, err
		}
		return &Result{Text: text}, nil
	case ".xlsx":
		return extractExcel(content)
	case ".txt", ".md":
		return &Result{Text: extractPlain(content)}, nil
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupported)
	}
}
