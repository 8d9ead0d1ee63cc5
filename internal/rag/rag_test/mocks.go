package rag_test

import (
	"context"
	"sync"

	"github.com/akolanti/PolicyChat/internal/domain/docModel"
)

// MockDocumentStore implements docModel.DocumentStore
type MockDocumentStore struct {
	// Control fields to simulate different behaviors
	OnList func(ctx context.Context) []docModel.ProcessedDocument
	OnAdd  func(ctx context.Context, docs []docModel.ProcessedDocument)

	mu    sync.Mutex
	Added []docModel.ProcessedDocument
}

func (m *MockDocumentStore) Load(ctx context.Context) {}

func (m *MockDocumentStore) List(ctx context.Context) []docModel.ProcessedDocument {
	if m.OnList != nil {
		return m.OnList(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Added
}

func (m *MockDocumentStore) Add(ctx context.Context, docs []docModel.ProcessedDocument) {
	if m.OnAdd != nil {
		m.OnAdd(ctx, docs)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Added = append(m.Added, docs...)
}

func (m *MockDocumentStore) DeleteById(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Added[:0]
	for _, doc := range m.Added {
		if doc.Id != id {
			kept = append(kept, doc)
		}
	}
	removed := len(kept) < len(m.Added)
	m.Added = kept
	return removed
}

func (m *MockDocumentStore) ClearAll(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Added = nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, query string, policyContext string, history []string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, q string, policyContext string, hist []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, policyContext, hist)
	}
	return "mocked llm response", nil
}
