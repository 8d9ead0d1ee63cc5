package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/akolanti/PolicyChat/internal/domain/docModel"
)

type stubDocumentStore struct {
	docs []docModel.ProcessedDocument
}

func (s *stubDocumentStore) Load(ctx context.Context) {}
func (s *stubDocumentStore) List(ctx context.Context) []docModel.ProcessedDocument {
	return s.docs
}
func (s *stubDocumentStore) Add(ctx context.Context, docs []docModel.ProcessedDocument) {
	s.docs = append(s.docs, docs...)
}
func (s *stubDocumentStore) DeleteById(ctx context.Context, id string) bool { return false }
func (s *stubDocumentStore) ClearAll(ctx context.Context)                   { s.docs = nil }

func testStore() *stubDocumentStore {
	return &stubDocumentStore{
		docs: []docModel.ProcessedDocument{
			{
				Id:   "doc-1",
				Name: "Employee Handbook",
				Sections: []docModel.DocumentSection{
					{
						Title:    "Vacation Policy",
						Content:  "Employees get 15 vacation days per year. Days accrue monthly over the calendar.",
						Keywords: []string{"vacation", "days"},
					},
				},
				Metadata: docModel.DocumentMetadata{
					PageCount:         3,
					WordCount:         1200,
					ExtractionQuality: docModel.QualityGood,
				},
			},
		},
	}
}

func TestHandleSearch(t *testing.T) {
	s := NewServer(testStore())

	_, out, err := s.handleSearch(context.Background(), nil, SearchInput{Query: "vacation days"})
	if err != nil {
		t.Fatalf("handleSearch failed: %v", err)
	}

	if !strings.Contains(out.Context, "15 vacation days") {
		t.Errorf("Context missing relevant excerpt: %q", out.Context)
	}
	if len(out.Sources) != 1 || out.Sources[0] != "Employee Handbook" {
		t.Errorf("Sources got %v", out.Sources)
	}
}

func TestHandleSearch_NoMatch(t *testing.T) {
	s := NewServer(testStore())

	_, out, err := s.handleSearch(context.Background(), nil, SearchInput{Query: "submarine maintenance"})
	if err != nil {
		t.Fatalf("handleSearch failed: %v", err)
	}
	if out.Context != "" || len(out.Sources) != 0 {
		t.Errorf("Expected empty result, got %+v", out)
	}
}

func TestHandleListDocuments(t *testing.T) {
	s := NewServer(testStore())

	_, out, err := s.handleListDocuments(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("handleListDocuments failed: %v", err)
	}

	if out.Count != 1 || len(out.Documents) != 1 {
		t.Fatalf("Count got %d, want 1", out.Count)
	}
	doc := out.Documents[0]
	if doc.Id != "doc-1" || doc.Name != "Employee Handbook" {
		t.Errorf("Document identity mismatch: %+v", doc)
	}
	if doc.PageCount != 3 || doc.SectionCount != 1 || doc.ExtractionQuality != "good" {
		t.Errorf("Document metadata mismatch: %+v", doc)
	}
}
