package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/PolicyChat/internal/adapter"
	"github.com/akolanti/PolicyChat/internal/adapter/utils"
	"github.com/akolanti/PolicyChat/internal/api"
	"github.com/akolanti/PolicyChat/internal/config"
	"github.com/akolanti/PolicyChat/internal/domain/jobModel"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
)

var logRH *logger_i.Logger

// technically i dont need this
// but i want to eventually remove jobHandler from handlers and set it in another package
// so in anticipation for that this struct exists
type newJobData struct {
	id          string
	chatId      string
	message     string
	isNewChat   bool
	traceId     string
	ingestFiles []jobModel.IngestFile
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// ChatHandler godoc
// @Summary      Start a new chat job
// @Description  Accepts a message, initializes a background processing job, and returns a job ID to track status.
// @Tags         Messaging
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest      true  "Chat Message and optional Chat ID"
// @Success      202      {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400      {object}  api.JobResponse      "Invalid request data or chat ID"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.ChatRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Chat handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || !ValidateChatRequest(requestData) {

			logRH.Warn("Bad Chat Request: ", "error:", err, "request data:", requestData)
			WriteErrorResponse(w, http.StatusBadRequest, requestData.ChatID, "Bad Request")
			return
		}
		processNewChatJob(request, w, requestData)
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// PostIngestHandler handles the uploading of PDF, DOCX, TXT or RTF documents.
// @Summary      Upload documents for ingestion
// @Description  Receives one or more files via multipart/form-data, saves them to a temporary directory, and queues a single ingestion job for the batch.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "One or more policy documents to upload"
// @Success      202  {object}  api.InitJobResponse "Accepted - returns job id and status URL"
// @Failure      400  {object}  api.JobResponse "Bad Request - Missing files or upload too large"
// @Failure      500  {object}  api.JobResponse "Internal Server Error - Storage or Write Error"
// @Router       /ingest [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()

		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		err := r.ParseMultipartForm(config.MaxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		if r.MultipartForm == nil || len(r.MultipartForm.File["document"]) == 0 {
			WriteErrorResponse(w, http.StatusBadRequest, "", "At least one document file is required")
			return
		}

		//all files of a batch land in one job, processed in upload order
		var files []jobModel.IngestFile
		for _, fileHeader := range r.MultipartForm.File["document"] {
			saved, err := saveUploadedFile(targetDir, fileHeader)
			if err != nil {
				logRH.Error("Couldn't store uploaded file :", "file", fileHeader.Filename, "err", err)
				removeSavedFiles(files)
				WriteErrorResponse(w, http.StatusInternalServerError, fileHeader.Filename, "Storage error")
				return
			}
			files = append(files, saved)
		}

		processNewIngestJob(r, w, files)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

func saveUploadedFile(targetDir string, fileHeader *multipart.FileHeader) (jobModel.IngestFile, error) {
	fileReader, err := fileHeader.Open()
	if err != nil {
		return jobModel.IngestFile{}, err
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fileHeader.Filename))
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		return jobModel.IngestFile{}, err
	}
	defer destinationFileWriter.Close()

	written, err := io.Copy(destinationFileWriter, fileReader)
	if err != nil {
		return jobModel.IngestFile{}, err
	}

	return jobModel.IngestFile{
		Name: fileHeader.Filename,
		Path: tempFilePath,
		Size: written,
	}, nil
}

func removeSavedFiles(files []jobModel.IngestFile) {
	for _, file := range files {
		if err := os.Remove(file.Path); err != nil {
			logRH.Warn("Couldn't remove temp file :", "path", file.Path, "err", err)
		}
	}
}
