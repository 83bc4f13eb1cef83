package document

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/showcase/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	d, err := New("doc-1", "Remote Work Policy", "employees may work remote", "HR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID() != "doc-1" {
		t.Errorf("ID() = %q", d.ID())
	}
	if d.Title() != "Remote Work Policy" {
		t.Errorf("Title() = %q", d.Title())
	}
	if d.Content() != "employees may work remote" {
		t.Errorf("Content() = %q", d.Content())
	}
	if d.Category() != "HR" {
		t.Errorf("Category() = %q", d.Category())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		title string
	}{
		{"empty id", "", "title"},
		{"blank id", "   ", "title"},
		{"empty title", "doc-1", ""},
		{"blank title", "doc-1", "  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.id, tc.title, "content", "cat")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidRecord) {
				t.Errorf("expected ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestNew_EmptyContentAllowed(t *testing.T) {
	d, err := New("doc-1", "Title", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Content() != "" {
		t.Errorf("Content() = %q, want empty", d.Content())
	}
}

func TestReconstruct_SkipsValidation(t *testing.T) {
	d := Reconstruct("", "", "body", "cat")
	if d.Content() != "body" {
		t.Errorf("Content() = %q", d.Content())
	}
}
