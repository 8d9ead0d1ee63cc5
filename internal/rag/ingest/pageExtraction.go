package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/akolanti/PolicyChat/internal/config"
	"github.com/akolanti/PolicyChat/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

// textFragment is one positioned run of text as the pdf layer reports it.
// Coordinates use the page space where the origin is bottom-left, so a
// larger y means higher on the page.
type textFragment struct {
	text   string
	x      float64
	y      float64
	width  float64
	height float64
}

func extractPDF(path string, onPage func(page int, total int), logger *logger_i.Logger) ([]rawPage, int, error) {
	logger.Debug("extractPDF", "attempting extraction", path)
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file")
		return nil, 0, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []rawPage
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			logger.Debug("extractPDF", "page value is null", i)
			continue
		}

		fragments, err := protectExtract(page, logger)
		if err != nil {
			// Log and continue, a broken page contributes no text
			logger.Error("Error extracting page content", "page", i, "error", err)
			continue
		}

		pages = append(pages, rawPage{
			Number:  i,
			Content: reconstructPage(fragments),
		})
		if onPage != nil {
			onPage(i, numPages)
		}
	}
	return pages, numPages, nil
}

func extractdocxTxtRtf(path string, logger *logger_i.Logger) ([]rawPage, int, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc")
		return nil, 0, fmt.Errorf("failed to extract docx: %w", err)
	}

	//no page boundaries in these formats, everything lands on one page
	return []rawPage{
		{
			Number:  1,
			Content: text,
		},
	}, 1, nil
}

// protectExtract guards the pdf content walk - malformed pages can hang
// or panic inside the library, neither may take the batch down with it.
func protectExtract(page pdf.Page, logger *logger_i.Logger) ([]textFragment, error) {
	type result struct {
		fragments []textFragment
		err       error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{nil, fmt.Errorf("page content walk panicked: %v", r)}
			}
		}()
		content := page.Content()
		var fragments []textFragment
		for _, item := range content.Text {
			if item.S == "" {
				continue
			}
			fragments = append(fragments, textFragment{
				text:   item.S,
				x:      item.X,
				y:      item.Y,
				width:  item.W,
				height: item.FontSize,
			})
		}
		resChan <- result{fragments, nil}
	}()
	select {
	case r := <-resChan:
		return r.fragments, r.err
	case <-time.After(config.PageExtractTimeout):
		logger.Error("pageExtract", "timeout")
		return nil, errors.New("timeout")
	}
}
