package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/akolanti/PolicyChat/internal/config"
	"github.com/akolanti/PolicyChat/internal/data/redisStore"
	"github.com/akolanti/PolicyChat/internal/domain/docModel"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
)

// documentEnvelope is the persisted schema. Version 1 wraps the array so
// the format can evolve; the loader still accepts the bare legacy array.
type documentEnvelope struct {
	Version   int                          `json:"version"`
	Documents []docModel.ProcessedDocument `json:"documents"`
}

// RedisDocumentStore keeps the full collection in memory (insertion
// ordered) and writes the serialized collection to a single Redis key
// after every mutation, before the call returns.
type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger

	mu        sync.RWMutex
	documents []docModel.ProcessedDocument
}

func GetRedisDocumentStore(ctx context.Context) *RedisDocumentStore {
	internalStore := redisStore.GetRedisStore(ctx, config.RedisDocumentStore)
	if internalStore == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  internalStore,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

// Load populates the collection from the persisted blob. Absent or
// corrupt storage yields an empty collection - never an error to the caller.
func (s *RedisDocumentStore) Load(ctx context.Context) {
	val, err := s.store.Get(ctx, config.DocumentStorageKey)
	if s.store.IsNil(err) {
		s.logger.Debug("No stored documents found")
		return
	} else if err != nil {
		s.logger.Error("Error loading stored documents", "error", err)
		return
	}

	docs, ok := decodeDocuments([]byte(val))
	if !ok {
		s.logger.Error("Stored document blob is corrupt, starting empty")
		return
	}

	s.mu.Lock()
	s.documents = docs
	s.mu.Unlock()
	s.logger.Info("Loaded stored documents", "count", len(docs))
}

func decodeDocuments(data []byte) ([]docModel.ProcessedDocument, bool) {
	var envelope documentEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Version >= 1 {
		return envelope.Documents, true
	}

	//legacy blob: a bare array with no version field
	var docs []docModel.ProcessedDocument
	if err := json.Unmarshal(data, &docs); err == nil {
		return docs, true
	}
	return nil, false
}

func (s *RedisDocumentStore) List(ctx context.Context) []docModel.ProcessedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]docModel.ProcessedDocument, len(s.documents))
	copy(out, s.documents)
	return out
}

// Add appends new documents after the existing ones. No deduplication by
// name or content - every upload is its own document.
func (s *RedisDocumentStore) Add(ctx context.Context, docs []docModel.ProcessedDocument) {
	s.mu.Lock()
	s.documents = append(s.documents, docs...)
	snapshot := make([]docModel.ProcessedDocument, len(s.documents))
	copy(snapshot, s.documents)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.logger.Info("Added documents to store", "added", len(docs), "total", len(snapshot))
}

// DeleteById removes exactly one document and reports whether anything
// was removed; the remaining documents keep their order.
func (s *RedisDocumentStore) DeleteById(ctx context.Context, id string) bool {
	s.mu.Lock()
	kept := s.documents[:0]
	for _, doc := range s.documents {
		if doc.Id != id {
			kept = append(kept, doc)
		}
	}
	removed := len(kept) < len(s.documents)
	s.documents = kept
	snapshot := make([]docModel.ProcessedDocument, len(s.documents))
	copy(snapshot, s.documents)
	s.mu.Unlock()

	if removed {
		s.persist(ctx, snapshot)
	}
	s.logger.Debug("Deleted document", "id", id, "removed", removed, "remaining", len(snapshot))
	return removed
}

func (s *RedisDocumentStore) ClearAll(ctx context.Context) {
	s.mu.Lock()
	s.documents = nil
	s.mu.Unlock()

	if err := s.store.Del(ctx, config.DocumentStorageKey); err != nil {
		s.logger.Error("Error erasing document storage", "error", err)
	}
	s.logger.Info("Cleared all documents")
}

// persist writes the whole collection. A write failure is logged but the
// in-memory mutation stands for the rest of the session.
func (s *RedisDocumentStore) persist(ctx context.Context, docs []docModel.ProcessedDocument) {
	envelope := documentEnvelope{
		Version:   config.DocumentSchemaVersion,
		Documents: docs,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error("Error marshalling documents for persistence", "error", err)
		return
	}
	if err := s.store.Set(ctx, config.DocumentStorageKey, data, config.RedisDocumentStoreTTL); err != nil {
		s.logger.Error("Error persisting documents, in-memory state kept", "error", err)
	}
}

func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test document store"),
	}
}
