package docModel

import (
	"context"
	"time"
)

type ExtractionQuality string

const (
	QualityExcellent ExtractionQuality = "excellent"
	QualityGood      ExtractionQuality = "good"
	QualityFair      ExtractionQuality = "fair"
	QualityPoor      ExtractionQuality = "poor"
)

// ProcessedDocument is immutable once ingestion finishes - the only
// mutation the store supports afterwards is whole-document deletion.
type ProcessedDocument struct {
	Id         string            `json:"id"`
	Name       string            `json:"name"`
	Content    string            `json:"content"`
	Sections   []DocumentSection `json:"sections"`
	Metadata   DocumentMetadata  `json:"metadata"`
	UploadedAt time.Time         `json:"uploadedAt"`
}

type DocumentSection struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	PageNumbers []int    `json:"pageNumbers"`
	Keywords    []string `json:"keywords"`
}

type DocumentMetadata struct {
	PageCount         int               `json:"pageCount"`
	WordCount         int               `json:"wordCount"`
	FileSize          int64             `json:"fileSize"`
	ExtractionQuality ExtractionQuality `json:"extractionQuality"`
}

type DocType string

var (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	ERR  DocType = "ERROR"
)

// DocumentStore owns the processed document collection. Each mutating
// call persists the full collection before it returns, so a reader never
// observes a half-written state.
type DocumentStore interface {
	Load(ctx context.Context)
	List(ctx context.Context) []ProcessedDocument
	Add(ctx context.Context, docs []ProcessedDocument)
	DeleteById(ctx context.Context, id string) bool
	ClearAll(ctx context.Context)
}
