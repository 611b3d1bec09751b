// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts the linear text layer from PDF files with
// pluggable backends. No layout reconstruction is attempted: the result is
// the page text in document order, as the backend produces it.
package convert

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor turns a PDF file into raw text. Different backends (pure Go,
// container-based pdftotext) implement this interface.
type Extractor interface {
	// Extract reads the PDF at pdfPath and returns its text. Failures are
	// reported as *ExtractionError.
	Extract(pdfPath string) (string, error)
}

// ExtractionError reports that a PDF could not be opened, is not a valid
// PDF, or that the backend failed while reading it. No partial text is
// returned alongside it.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func extractionError(path string, err error) *ExtractionError {
	return &ExtractionError{Path: path, Err: err}
}

// PlainTextExtractor reads the text layer with github.com/ledongthuc/pdf.
// Line moves inside a page and page breaks become newlines so words on
// adjacent lines stay separated. Scanned PDFs without a text layer yield
// empty or garbage text.
type PlainTextExtractor struct{}

// NewPlainTextExtractor returns the pure-Go extractor.
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract implements Extractor. The PDF library panics on some malformed
// inputs; those panics are reported as an ExtractionError.
func (p *PlainTextExtractor) Extract(pdfPath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = extractionError(pdfPath, fmt.Errorf("malformed PDF: %v", r))
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", extractionError(pdfPath, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		if t := pageText(page); t != "" {
			pages = append(pages, t)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// checkReadable fails with an ExtractionError when pdfPath cannot be
// opened for reading.
func checkReadable(pdfPath string) error {
	f, err := os.Open(pdfPath)
	if err != nil {
		return extractionError(pdfPath, err)
	}
	return f.Close()
}
