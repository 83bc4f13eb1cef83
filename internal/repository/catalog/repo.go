package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/showcase/internal/domain"
	domdoc "github.com/kailas-cloud/showcase/internal/domain/document"
	dompat "github.com/kailas-cloud/showcase/internal/domain/patient"
)

// Repository is the read-only catalog of documents and patients.
// It is built once and never mutated, so it is safe for concurrent readers.
type Repository struct {
	documents []domdoc.Document
	patients  []dompat.Patient
	byID      map[int]int
}

// New creates a catalog. Document and patient IDs must be unique.
func New(documents []domdoc.Document, patients []dompat.Patient) (*Repository, error) {
	seenDocs := make(map[string]struct{}, len(documents))
	for _, d := range documents {
		if _, ok := seenDocs[d.ID()]; ok {
			return nil, fmt.Errorf("%w: duplicate document id %q", domain.ErrInvalidRecord, d.ID())
		}
		seenDocs[d.ID()] = struct{}{}
	}

	byID := make(map[int]int, len(patients))
	for i, p := range patients {
		if _, ok := byID[p.ID()]; ok {
			return nil, fmt.Errorf("%w: duplicate patient id %d", domain.ErrInvalidRecord, p.ID())
		}
		byID[p.ID()] = i
	}

	docs := make([]domdoc.Document, len(documents))
	copy(docs, documents)
	pats := make([]dompat.Patient, len(patients))
	copy(pats, patients)

	return &Repository{documents: docs, patients: pats, byID: byID}, nil
}

// Default returns the built-in demo catalog.
func Default() *Repository {
	r, err := New(defaultDocuments(), defaultPatients())
	if err != nil {
		panic("catalog: invalid built-in fixtures: " + err.Error())
	}
	return r
}

// Load reads a YAML catalog file. Sections left empty fall back to the built-in fixtures.
func Load(path string) (*Repository, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Repository, error) {
	var f fileDTO
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	docs := defaultDocuments()
	if len(f.Documents) > 0 {
		docs = make([]domdoc.Document, 0, len(f.Documents))
		for _, d := range f.Documents {
			doc, err := d.toDomain()
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}

	pats := defaultPatients()
	if len(f.Patients) > 0 {
		pats = make([]dompat.Patient, 0, len(f.Patients))
		for _, p := range f.Patients {
			pat, err := p.toDomain()
			if err != nil {
				return nil, err
			}
			pats = append(pats, pat)
		}
	}

	return New(docs, pats)
}

// Documents returns a copy of the document catalog in catalog order.
func (r *Repository) Documents() []domdoc.Document {
	out := make([]domdoc.Document, len(r.documents))
	copy(out, r.documents)
	return out
}

// DocumentsByCategory returns the documents of one category; empty category returns all.
func (r *Repository) DocumentsByCategory(category string) []domdoc.Document {
	if category == "" {
		return r.Documents()
	}
	var out []domdoc.Document
	for _, d := range r.documents {
		if d.Category() == category {
			out = append(out, d)
		}
	}
	return out
}

// Patients returns a copy of the patient catalog in catalog order.
func (r *Repository) Patients() []dompat.Patient {
	out := make([]dompat.Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

// Patient returns one patient by id.
func (r *Repository) Patient(id int) (dompat.Patient, error) {
	i, ok := r.byID[id]
	if !ok {
		return dompat.Patient{}, fmt.Errorf("patient %d: %w", id, domain.ErrPatientNotFound)
	}
	return r.patients[i], nil
}

// Counts returns the catalog sizes.
func (r *Repository) Counts() (documents, patients int) {
	return len(r.documents), len(r.patients)
}
