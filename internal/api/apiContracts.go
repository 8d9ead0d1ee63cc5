package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	ChatId    string            `json:"chat_id" example:"chat_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type ChatResult struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
}

type IngestResult struct {
	Progress    int      `json:"progress"`
	DocumentIds []string `json:"document_ids,omitempty"`
	FileErrors  []string `json:"file_errors,omitempty"`
}

type Result struct {
	Status       string        `json:"status"`
	ChatResponse *ChatResult   `json:"chat_response,omitempty"`
	Ingest       *IngestResult `json:"ingest,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// DocumentSummary is the list-view projection of a processed document -
// full section content stays server side.
type DocumentSummary struct {
	Id                string    `json:"id"`
	Name              string    `json:"name"`
	PageCount         int       `json:"page_count"`
	WordCount         int       `json:"word_count"`
	FileSize          int64     `json:"file_size"`
	SectionCount      int       `json:"section_count"`
	ExtractionQuality string    `json:"extraction_quality"`
	UploadedAt        time.Time `json:"uploaded_at"`
}

type DocumentListResponse struct {
	Documents []DocumentSummary `json:"documents"`
	Count     int               `json:"count"`
}

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" validate:"required" `
	ChatID  string `json:"chatID,omitempty" `
}
type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
