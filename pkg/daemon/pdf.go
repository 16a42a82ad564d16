package daemon

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/playwright-community/playwright-go"
)

// exportPDF prints the page to path and validates the result, so a
// truncated or empty export fails the command instead of surfacing
// later as a corrupt file.
func (e *Executor) exportPDF(page playwright.Page, path string) (any, error) {
	_, err := page.PDF(playwright.PagePdfOptions{Path: playwright.String(path)})
	if err != nil {
		return nil, fmt.Errorf("pdf export failed: %w", err)
	}

	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("pdf export produced an invalid file: %w", err)
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf page count: %w", err)
	}

	return map[string]any{"path": path, "pages": pages}, nil
}
