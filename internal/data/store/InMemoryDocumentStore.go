package store

import (
	"context"
	"sync"

	"github.com/akolanti/PolicyChat/internal/domain/docModel"
)

// InMemoryDocumentStore is the fallback when Redis is offline. Documents
// survive for the session only; Load is a no-op.
type InMemoryDocumentStore struct {
	docLock   *sync.RWMutex
	documents []docModel.ProcessedDocument
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docLock: new(sync.RWMutex),
	}
}

func (store *InMemoryDocumentStore) Load(ctx context.Context) {}

func (store *InMemoryDocumentStore) List(ctx context.Context) []docModel.ProcessedDocument {
	store.docLock.RLock()
	defer store.docLock.RUnlock()
	out := make([]docModel.ProcessedDocument, len(store.documents))
	copy(out, store.documents)
	return out
}

func (store *InMemoryDocumentStore) Add(ctx context.Context, docs []docModel.ProcessedDocument) {
	store.docLock.Lock()
	defer store.docLock.Unlock()
	store.documents = append(store.documents, docs...)
	inMemLogger.Info("Added documents to in-memory store", "count", len(docs))
}

func (store *InMemoryDocumentStore) DeleteById(ctx context.Context, id string) bool {
	store.docLock.Lock()
	defer store.docLock.Unlock()
	kept := store.documents[:0]
	for _, doc := range store.documents {
		if doc.Id != id {
			kept = append(kept, doc)
		}
	}
	removed := len(kept) < len(store.documents)
	store.documents = kept
	return removed
}

func (store *InMemoryDocumentStore) ClearAll(ctx context.Context) {
	store.docLock.Lock()
	defer store.docLock.Unlock()
	store.documents = nil
}
