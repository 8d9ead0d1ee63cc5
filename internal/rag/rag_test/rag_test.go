package rag_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/akolanti/PolicyChat/internal/config"
	"github.com/akolanti/PolicyChat/internal/domain/docModel"
	"github.com/akolanti/PolicyChat/internal/domain/jobModel"
	"github.com/akolanti/PolicyChat/internal/rag"
)

func policyFixture() []docModel.ProcessedDocument {
	return []docModel.ProcessedDocument{
		{
			Id:   "doc-1",
			Name: "Employee Handbook",
			Sections: []docModel.DocumentSection{
				{
					Title:       "Vacation Policy",
					Content:     "Employees get 15 vacation days per year. Days accrue monthly and unused days roll over.",
					PageNumbers: []int{1},
					Keywords:    []string{"vacation", "days", "year"},
				},
			},
		},
	}
}

func TestProcessRequest_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(d *MockDocumentStore, l *MockLLM)
		expectedStep   jobModel.InternalStatus
		expectedStatus jobModel.JobStatus
		expectedAnswer string
		expectSources  bool
		expectedErr    string
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(d *MockDocumentStore, l *MockLLM) {
				d.Added = policyFixture()
				l.OnGenerate = func(ctx context.Context, q string, policyContext string, h []string) (string, error) {
					if !strings.Contains(policyContext, "RELEVANT COMPANY POLICY INFORMATION") {
						return "", errors.New("expected grounded context")
					}
					return "final answer", nil
				}
			},
			expectedStep:   jobModel.Complete,
			expectedStatus: jobModel.JobStatusQueued,
			expectedAnswer: "final answer",
			expectSources:  true,
		},
		{
			name: "Success_No_Matching_Documents",
			setupMocks: func(d *MockDocumentStore, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, policyContext string, h []string) (string, error) {
					if policyContext != "" {
						return "", errors.New("expected empty context")
					}
					return "general guidance answer", nil
				}
			},
			expectedStep:   jobModel.Complete,
			expectedStatus: jobModel.JobStatusQueued,
			expectedAnswer: "general guidance answer",
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(d *MockDocumentStore, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, policyContext string, h []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    "LLM_GENERATION_FAILURE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mDocs := &MockDocumentStore{}
			mLLM := &MockLLM{}

			tt.setupMocks(mDocs, mLLM)

			s := rag.NewService(mDocs, mLLM)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			//status stays untouched on the success path, the worker owns it
			job := jobModel.Job{
				Id:     "test-job",
				Status: jobModel.JobStatusQueued,
				JobPayload: jobModel.JobPayload{
					Question: "how many vacation days do employees get",
				},
			}

			result := s.ProcessRequest(ctx, job, []string{})

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if tt.expectedAnswer != "" && result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %s, want %s", result.JobPayload.Answer, tt.expectedAnswer)
			}

			if tt.expectSources && len(result.JobPayload.Sources) == 0 {
				t.Errorf("Expected sources on grounded answer, got none")
			}

			if tt.expectedErr != "" && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error Code got %d, want %s", result.Error.Code, tt.expectedErr)
			}
		})
	}
}

func writeBatchFile(t *testing.T, dir string, name string, content string) jobModel.IngestFile {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return jobModel.IngestFile{Name: name, Path: path, Size: int64(len(content))}
}

func TestIngestDocuments_Scenarios(t *testing.T) {
	policyText := "POLICY: Leave\nEmployees get 15 vacation days per year.\n"

	tests := []struct {
		name            string
		buildFiles      func(t *testing.T, dir string) []jobModel.IngestFile
		expectedStatus  jobModel.JobStatus
		expectedDocs    int
		expectedErrors  int
		failedFileNamed string
	}{
		{
			name: "Ingestion_Success",
			buildFiles: func(t *testing.T, dir string) []jobModel.IngestFile {
				return []jobModel.IngestFile{
					writeBatchFile(t, dir, "leave_policy.txt", policyText),
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
			expectedDocs:   1,
		},
		{
			name: "Failed_File_Skipped_Siblings_Survive",
			buildFiles: func(t *testing.T, dir string) []jobModel.IngestFile {
				return []jobModel.IngestFile{
					{Name: "missing.pdf", Path: filepath.Join(dir, "missing.pdf"), Size: 10},
					writeBatchFile(t, dir, "leave_policy.txt", policyText),
				}
			},
			expectedStatus:  jobModel.JobStatusComplete,
			expectedDocs:    1,
			expectedErrors:  1,
			failedFileNamed: "missing.pdf",
		},
		{
			name: "All_Files_Failed",
			buildFiles: func(t *testing.T, dir string) []jobModel.IngestFile {
				return []jobModel.IngestFile{
					{Name: "broken.xyz", Path: filepath.Join(dir, "broken.xyz"), Size: 5},
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mDocs := &MockDocumentStore{}
			s := rag.NewService(mDocs, &MockLLM{})

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			job := jobModel.Job{
				Id:      "ingest-job-1",
				JobType: jobModel.JobTypeIngest,
				JobPayload: jobModel.JobPayload{
					IngestFiles: tt.buildFiles(t, t.TempDir()),
				},
			}

			var lastProgress int
			report := func(snapshot jobModel.Job) {
				if snapshot.Progress < lastProgress && snapshot.Progress != 10 {
					t.Errorf("Progress moved backwards within a file: %d after %d", snapshot.Progress, lastProgress)
				}
				lastProgress = snapshot.Progress
			}

			result := s.IngestDocuments(ctx, job, report)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if len(result.JobPayload.DocumentIds) != tt.expectedDocs {
				t.Errorf("DocumentIds got %d, want %d", len(result.JobPayload.DocumentIds), tt.expectedDocs)
			}

			if len(mDocs.Added) != tt.expectedDocs {
				t.Errorf("Stored documents got %d, want %d", len(mDocs.Added), tt.expectedDocs)
			}

			if len(result.JobPayload.FileErrors) != tt.expectedErrors {
				t.Errorf("FileErrors got %v, want %d entries", result.JobPayload.FileErrors, tt.expectedErrors)
			}

			if tt.failedFileNamed != "" {
				found := false
				for _, fe := range result.JobPayload.FileErrors {
					if strings.Contains(fe, tt.failedFileNamed) {
						found = true
					}
				}
				if !found {
					t.Errorf("FileErrors %v should name %s", result.JobPayload.FileErrors, tt.failedFileNamed)
				}
			}

			if tt.expectedStatus == jobModel.JobStatusError && result.Error.Code != http.StatusUnprocessableEntity {
				t.Errorf("Error Code got %d, want %d", result.Error.Code, http.StatusUnprocessableEntity)
			}
		})
	}
}

// The worker pool can run two ingest jobs at the same time, so the
// pipeline must not share mutable state between batches.
func TestIngestDocuments_ConcurrentBatches(t *testing.T) {
	policyText := "POLICY: Leave\nEmployees get 15 vacation days per year.\n"

	files := []jobModel.IngestFile{
		writeBatchFile(t, t.TempDir(), "leave_policy.txt", policyText),
		writeBatchFile(t, t.TempDir(), "leave_policy.txt", policyText),
	}

	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(batch int) {
			defer wg.Done()

			mDocs := &MockDocumentStore{}
			s := rag.NewService(mDocs, &MockLLM{})

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "concurrent-trace")
			job := jobModel.Job{
				Id:      "ingest-job-concurrent",
				JobType: jobModel.JobTypeIngest,
				JobPayload: jobModel.JobPayload{
					IngestFiles: []jobModel.IngestFile{files[batch]},
				},
			}

			result := s.IngestDocuments(ctx, job, func(jobModel.Job) {})

			if result.Status != jobModel.JobStatusComplete {
				t.Errorf("Batch %d status got %v, want %v", batch, result.Status, jobModel.JobStatusComplete)
			}
			if len(result.JobPayload.DocumentIds) != 1 {
				t.Errorf("Batch %d DocumentIds got %d, want 1", batch, len(result.JobPayload.DocumentIds))
			}
		}(i)
	}
	wg.Wait()
}
