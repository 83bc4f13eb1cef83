package document

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/showcase/internal/domain"
)

// Document is a knowledge-base article (immutable value object).
type Document struct {
	id       string
	title    string
	content  string
	category string
}

// New validates and creates a Document. ID and title are required.
func New(id, title, content, category string) (Document, error) {
	if strings.TrimSpace(id) == "" {
		return Document{}, fmt.Errorf("%w: document ID is required", domain.ErrInvalidRecord)
	}
	if strings.TrimSpace(title) == "" {
		return Document{}, fmt.Errorf("%w: document %q has no title", domain.ErrInvalidRecord, id)
	}
	return Document{id: id, title: title, content: content, category: category}, nil
}

// Reconstruct creates a Document without validation (fixture hydration).
func Reconstruct(id, title, content, category string) Document {
	return Document{id: id, title: title, content: content, category: category}
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Title returns the document title.
func (d Document) Title() string { return d.title }

// Content returns the document body.
func (d Document) Content() string { return d.content }

// Category returns the knowledge-base category.
func (d Document) Category() string { return d.category }
