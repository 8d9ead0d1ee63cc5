package ingest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/akolanti/PolicyChat/internal/adapter/utils"
	"github.com/akolanti/PolicyChat/internal/config"
	"github.com/akolanti/PolicyChat/internal/domain/docModel"
	"github.com/akolanti/PolicyChat/internal/domain/jobModel"
	"github.com/akolanti/PolicyChat/internal/metrics"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
)

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Progress milestones, per file: extraction start, document opened, per
// page advance across the middle band, cleaning done, file done.
const (
	progressStart     = 10
	progressOpened    = 20
	progressPagesBand = 60
	progressCleaned   = 85
	progressDone      = 100
)

// ProcessDocumentIngestion runs one uploaded batch, strictly file by file
// and page by page. A failed file is recorded against its name and the
// remaining files still process; the job only fails as a whole when every
// file failed. report is called at each milestone so the job store can
// expose monotonic progress. The logger stays local to the call, workers
// can run two batches at once.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, documents docModel.DocumentStore, report func(jobModel.Job)) jobModel.Job {
	logger := logger_i.NewLogger("Document Ingestion ").With("traceId", ctx.Value(config.TRACE_ID_KEY).(string))

	if report == nil {
		report = func(jobModel.Job) {}
	}

	files := job.JobPayload.IngestFiles
	logger.Debug("Processing batch", "files", len(files))

	var processed []docModel.ProcessedDocument
	for i, file := range files {
		logger.Debug("Processing document", "filename", file.Name, "position", fmt.Sprintf("%d/%d", i+1, len(files)))

		job.CurrentStep = jobModel.IngestExtracting
		job.Progress = progressStart
		report(job)

		doc, err := processFile(&job, file, report, logger)
		if err != nil {
			logger.Error("Error processing document", "filename", file.Name, "error", err)
			job.JobPayload.FileErrors = append(job.JobPayload.FileErrors,
				fmt.Sprintf("failed to extract text from %s: %v", file.Name, err))
			removeTempFile(file.Path, logger)
			continue
		}

		processed = append(processed, doc)
		job.JobPayload.DocumentIds = append(job.JobPayload.DocumentIds, doc.Id)
		job.Progress = progressDone
		report(job)

		metrics.IncrementDocumentsIngested()
		logger.Debug("Processed document", "filename", file.Name,
			"words", doc.Metadata.WordCount, "sections", len(doc.Sections), "quality", doc.Metadata.ExtractionQuality)
		removeTempFile(file.Path, logger)
	}

	if len(processed) == 0 {
		job.Status = jobModel.JobStatusError
		job.Error = jobModel.JobError{
			Code:    http.StatusUnprocessableEntity,
			Message: "no document in the batch could be processed",
		}
		return job
	}

	job.CurrentStep = jobModel.IngestPersisting
	report(job)
	documents.Add(ctx, processed)

	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	return job
}

func processFile(job *jobModel.Job, file jobModel.IngestFile, report func(jobModel.Job), logger *logger_i.Logger) (docModel.ProcessedDocument, error) {
	docType := getDocType(file.Path)
	if docType == docModel.ERR {
		return docModel.ProcessedDocument{}, fmt.Errorf("unsupported file type for %s", file.Name)
	}

	onPage := func(page int, total int) {
		job.Progress = progressOpened + int(float64(page)/float64(total)*progressPagesBand)
		report(*job)
		metrics.IncrementPagesExtracted()
	}

	job.Progress = progressOpened
	report(*job)

	pages, pageCount, err := extractText(file.Path, docType, onPage, logger)
	if err != nil {
		return docModel.ProcessedDocument{}, err
	}

	job.CurrentStep = jobModel.IngestSectioning
	job.Progress = progressCleaned
	report(*job)

	return buildDocument(file, pages, pageCount), nil
}

func buildDocument(file jobModel.IngestFile, pages []rawPage, pageCount int) docModel.ProcessedDocument {
	fullText := ""
	for _, page := range pages {
		fullText += page.Content + "\n\n"
	}
	cleanedText := normalizeText(fullText)

	if pageCount < 1 {
		pageCount = 1
	}
	sections := extractDocumentSections(cleanedText, pageCount)
	wordCount := len(strings.Fields(cleanedText))

	return docModel.ProcessedDocument{
		Id:       utils.GetNewUUID(),
		Name:     file.Name,
		Content:  cleanedText,
		Sections: sections,
		Metadata: docModel.DocumentMetadata{
			PageCount:         pageCount,
			WordCount:         wordCount,
			FileSize:          file.Size,
			ExtractionQuality: assessExtractionQuality(cleanedText, wordCount, pageCount),
		},
		UploadedAt: time.Now(),
	}
}

func removeTempFile(path string, logger *logger_i.Logger) {
	if err := os.Remove(path); err != nil {
		logger.Error("Error removing file", "error", err)
	}
}
