package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/akolanti/PolicyChat/internal/config"
	"github.com/akolanti/PolicyChat/internal/data/redisStore"
	"github.com/akolanti/PolicyChat/internal/data/store"
	"github.com/akolanti/PolicyChat/internal/domain/docModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newDocumentStore(t *testing.T) (*store.RedisDocumentStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestDocumentStore(redisStore.NewTestStore(client)), mr
}

func sampleDocument(id string, name string) docModel.ProcessedDocument {
	return docModel.ProcessedDocument{
		Id:      id,
		Name:    name,
		Content: "Employees get 15 vacation days per year.",
		Sections: []docModel.DocumentSection{
			{
				Title:       "Vacation Policy",
				Content:     "Employees get 15 vacation days per year.\n",
				PageNumbers: []int{1},
				Keywords:    []string{"employees", "vacation", "days", "year"},
			},
		},
		Metadata: docModel.DocumentMetadata{
			PageCount:         1,
			WordCount:         7,
			FileSize:          512,
			ExtractionQuality: docModel.QualityFair,
		},
		//second granularity so the json roundtrip compares cleanly
		UploadedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestRedisDocumentStore_Lifecycle(t *testing.T) {
	docStore, mr := newDocumentStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "doc-trace")

	t.Run("Add persists and survives reload", func(t *testing.T) {
		docStore.Add(ctx, []docModel.ProcessedDocument{sampleDocument("doc-1", "handbook.pdf")})

		if !mr.Exists(config.DocumentStorageKey) {
			t.Fatal("Document blob was not written to Redis")
		}

		//a fresh store booting against the same Redis must see the document
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		reloaded := store.TestDocumentStore(redisStore.NewTestStore(client))
		reloaded.Load(ctx)

		docs := reloaded.List(ctx)
		if len(docs) != 1 {
			t.Fatalf("Reloaded store has %d documents, want 1", len(docs))
		}
		if docs[0].Id != "doc-1" || docs[0].Name != "handbook.pdf" {
			t.Errorf("Reloaded document mismatch: %+v", docs[0])
		}
		if docs[0].Metadata.ExtractionQuality != docModel.QualityFair {
			t.Errorf("Metadata lost in roundtrip: %+v", docs[0].Metadata)
		}
	})

	t.Run("DeleteById keeps sibling order", func(t *testing.T) {
		docStore.Add(ctx, []docModel.ProcessedDocument{
			sampleDocument("doc-2", "benefits.pdf"),
			sampleDocument("doc-3", "conduct.pdf"),
		})

		if !docStore.DeleteById(ctx, "doc-2") {
			t.Fatal("DeleteById reported nothing removed for an existing id")
		}

		docs := docStore.List(ctx)
		if len(docs) != 2 {
			t.Fatalf("Got %d documents after delete, want 2", len(docs))
		}
		if docs[0].Id != "doc-1" || docs[1].Id != "doc-3" {
			t.Errorf("Order broken after delete: %s, %s", docs[0].Id, docs[1].Id)
		}
	})

	t.Run("DeleteById on missing id", func(t *testing.T) {
		if docStore.DeleteById(ctx, "ghost-id") {
			t.Error("Expected removed=false for non-existent id")
		}
	})

	t.Run("ClearAll empties store and Redis", func(t *testing.T) {
		docStore.ClearAll(ctx)

		if len(docStore.List(ctx)) != 0 {
			t.Error("Documents remain in memory after ClearAll")
		}
		if mr.Exists(config.DocumentStorageKey) {
			t.Error("Document blob still in Redis after ClearAll")
		}

		//a reload after clearing must come up empty, not error
		docStore.Load(ctx)
		if len(docStore.List(ctx)) != 0 {
			t.Error("Load after ClearAll produced documents")
		}
	})
}

func TestRedisDocumentStore_LoadFormats(t *testing.T) {
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "load-trace")

	t.Run("Corrupt blob loads empty", func(t *testing.T) {
		docStore, mr := newDocumentStore(t)
		mr.Set(config.DocumentStorageKey, "{not valid json")

		docStore.Load(ctx)
		if len(docStore.List(ctx)) != 0 {
			t.Error("Corrupt blob should yield an empty collection")
		}
	})

	t.Run("Legacy bare array still loads", func(t *testing.T) {
		docStore, mr := newDocumentStore(t)
		mr.Set(config.DocumentStorageKey,
			`[{"id":"legacy-1","name":"old.pdf","content":"text","sections":[],"metadata":{"pageCount":1,"wordCount":1,"fileSize":1,"extractionQuality":"poor"},"uploadedAt":"2024-01-01T00:00:00Z"}]`)

		docStore.Load(ctx)
		docs := docStore.List(ctx)
		if len(docs) != 1 || docs[0].Id != "legacy-1" {
			t.Fatalf("Legacy array did not load: %+v", docs)
		}
	})
}
