package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/PolicyChat/internal/api"
	"github.com/akolanti/PolicyChat/internal/domain/docModel"
	"github.com/akolanti/PolicyChat/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:       string(job.Status),
		ChatResponse: ToChatResult(job.JobPayload),
		Ingest:       ToIngestResult(job),
	}

	return api.JobResponse{
		Id:        job.Id,
		ChatId:    job.ChatId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToChatResult(payload jobModel.JobPayload) *api.ChatResult {
	if payload.Answer == "" && len(payload.Sources) == 0 {
		return nil
	}

	return &api.ChatResult{
		Question: payload.Question,
		Answer:   payload.Answer,
		Sources:  payload.Sources,
	}
}

func ToIngestResult(job jobModel.Job) *api.IngestResult {
	if len(job.JobPayload.IngestFiles) == 0 {
		return nil
	}

	return &api.IngestResult{
		Progress:    job.Progress,
		DocumentIds: job.JobPayload.DocumentIds,
		FileErrors:  job.JobPayload.FileErrors,
	}
}

func ToDocumentSummary(doc docModel.ProcessedDocument) api.DocumentSummary {
	return api.DocumentSummary{
		Id:                doc.Id,
		Name:              doc.Name,
		PageCount:         doc.Metadata.PageCount,
		WordCount:         doc.Metadata.WordCount,
		FileSize:          doc.Metadata.FileSize,
		SectionCount:      len(doc.Sections),
		ExtractionQuality: string(doc.Metadata.ExtractionQuality),
		UploadedAt:        doc.UploadedAt,
	}
}

func ToDocumentListResponse(docs []docModel.ProcessedDocument) api.DocumentListResponse {
	summaries := make([]api.DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, ToDocumentSummary(doc))
	}

	return api.DocumentListResponse{
		Documents: summaries,
		Count:     len(summaries),
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		ChatId:    "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
