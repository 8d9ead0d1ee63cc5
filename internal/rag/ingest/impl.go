package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akolanti/PolicyChat/internal/domain/docModel"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
)

func getDocType(docPath string) docModel.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return docModel.PDF
	case ".docx", ".txt", ".rtf":
		return docModel.DOCX
	default:
		return docModel.ERR
	}
}

func extractText(path string, contentType docModel.DocType, onPage func(page int, total int), logger *logger_i.Logger) ([]rawPage, int, error) {
	switch contentType {
	case docModel.PDF:
		return extractPDF(path, onPage, logger)
	case docModel.DOCX:
		return extractdocxTxtRtf(path, logger)
	default:
		return nil, 0, fmt.Errorf("unsupported content type: %s", contentType)
	}
}
