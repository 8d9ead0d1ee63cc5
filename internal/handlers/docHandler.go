package handlers

import (
	"net/http"

	"github.com/akolanti/PolicyChat/internal/adapter"
	"github.com/akolanti/PolicyChat/internal/adapter/utils"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
)

var logDH *logger_i.Logger

// ListDocumentsHandler godoc
// @Summary      List ingested documents
// @Description  Returns metadata summaries for every document currently in the knowledge base.
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.DocumentListResponse
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		if handlerInstance == nil {
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service not ready")
			return
		}

		docs := handlerInstance.documents.List(r.Context())
		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(docs))
	}
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Removes a single document from the knowledge base by its ID.
// @Tags         Documents
// @Produce      json
// @Param        id   path  string  true  "Document ID"
// @Success      204  "Document removed"
// @Failure      404  {object}  api.JobResponse  "Document not found"
// @Router       /documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		if handlerInstance == nil {
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service not ready")
			return
		}

		id := utils.GetChiURLParam(r, "id")
		if id == "" {
			WriteErrorResponse(w, http.StatusBadRequest, id, "Document ID is required")
			return
		}

		if !handlerInstance.documents.DeleteById(r.Context(), id) {
			logDH.Warn("Delete document failed :", "id", id)
			WriteErrorResponse(w, http.StatusNotFound, id, "Document not found")
			return
		}

		logDH.Info("Deleted document", "id", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearDocumentsHandler godoc
// @Summary      Clear the knowledge base
// @Description  Removes every document and its persisted copy.
// @Tags         Documents
// @Produce      json
// @Success      204  "All documents removed"
// @Router       /documents [delete]
func ClearDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		if handlerInstance == nil {
			WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service not ready")
			return
		}

		handlerInstance.documents.ClearAll(r.Context())
		logDH.Info("Cleared all documents")
		w.WriteHeader(http.StatusNoContent)
	}
}
