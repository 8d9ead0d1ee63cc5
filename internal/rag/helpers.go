package rag

import (
	"context"
	"net/http"
	"time"

	"github.com/akolanti/PolicyChat/internal/domain/jobModel"
	"github.com/akolanti/PolicyChat/internal/metrics"
	"github.com/akolanti/PolicyChat/internal/rag/retrieve"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
)

func returnOutput(job jobModel.Job, ans string) jobModel.Job {
	job.JobPayload.Answer = ans
	job.CurrentStep = jobModel.Complete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessRequest", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeSearchStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) string {
	*job = logOutput(*job, jobModel.SearchCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("search", time.Since(start)) }()

	policyContext, sources := retrieve.SearchWithSources(job.JobPayload.Question, s.documents.List(ctx))
	job.JobPayload.Sources = sources
	return policyContext
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, policyContext string, history []string) (string, error) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, job.JobPayload.Question, policyContext, history)
}
