package rag

import (
	"context"
	"time"

	"github.com/akolanti/PolicyChat/internal/config"
	"github.com/akolanti/PolicyChat/internal/domain/docModel"
	"github.com/akolanti/PolicyChat/internal/domain/jobModel"
	"github.com/akolanti/PolicyChat/internal/metrics"
	"github.com/akolanti/PolicyChat/internal/rag/ingest"
	"github.com/akolanti/PolicyChat/internal/rag/llm"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
)

// Service is the only surface the worker sees - it doesn't need to know
// the llm provider or the document store behind it.
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	IngestDocuments(ctx context.Context, job jobModel.Job, report func(jobModel.Job)) jobModel.Job
}

type service struct {
	documents   docModel.DocumentStore
	llmProvider llm.Provider
	logger      *logger_i.Logger
}

// NewService constructor. The store and provider are injected so tests
// can swap in mocks without touching the worker's code.
func NewService(documents docModel.DocumentStore, llm llm.Provider) Service {
	return &service{
		documents:   documents,
		llmProvider: llm,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY).(string), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Retrieval - pure in-memory scoring, an empty context block is a
	// valid outcome and not an error
	policyContext := s.executeSearchStep(processContext, inMethodLogger, &jobt)

	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, policyContext, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	return returnOutput(jobt, answer)
}

func (s *service) IngestDocuments(ctx context.Context, job jobModel.Job, report func(jobModel.Job)) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	j := ingest.ProcessDocumentIngestion(ctx, job, s.documents, report)
	if j.Status == jobModel.JobStatusError {
		s.logger.Error("INGESTION_FAILURE", "error", j.Error.Message)
	}
	return j
}
