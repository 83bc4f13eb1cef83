package catalog

import (
	"fmt"

	domdoc "github.com/kailas-cloud/showcase/internal/domain/document"
	dompat "github.com/kailas-cloud/showcase/internal/domain/patient"
)

// fileDTO is the YAML layout of a catalog file.
type fileDTO struct {
	Documents []documentDTO `yaml:"documents"`
	Patients  []patientDTO  `yaml:"patients"`
}

type documentDTO struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	Category string `yaml:"category"`
}

type patientDTO struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Age         int    `yaml:"age"`
	Condition   string `yaml:"condition"`
	Preferences []int  `yaml:"preferences"`
}

func (d documentDTO) toDomain() (domdoc.Document, error) {
	doc, err := domdoc.New(d.ID, d.Title, d.Content, d.Category)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("document %q: %w", d.ID, err)
	}
	return doc, nil
}

func (p patientDTO) toDomain() (dompat.Patient, error) {
	pat, err := dompat.New(p.ID, p.Name, p.Age, p.Condition, p.Preferences)
	if err != nil {
		return dompat.Patient{}, fmt.Errorf("patient %d: %w", p.ID, err)
	}
	return pat, nil
}
