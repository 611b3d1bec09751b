// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from creating a config directory under the user's home.
	model.ConfigPath = "disable"
}

// ValidatingExtractor checks a PDF's structure with pdfcpu before handing
// it to the wrapped extractor. Corrupt or unsupported files are rejected
// with an ExtractionError without running the backend.
type ValidatingExtractor struct {
	next     Extractor
	validate func(path string) error
}

// NewValidatingExtractor wraps next with relaxed pdfcpu validation.
func NewValidatingExtractor(next Extractor) *ValidatingExtractor {
	return &ValidatingExtractor{next: next, validate: validateFile}
}

// Extract implements Extractor.
func (v *ValidatingExtractor) Extract(pdfPath string) (string, error) {
	if err := checkReadable(pdfPath); err != nil {
		return "", err
	}
	if err := v.validate(pdfPath); err != nil {
		return "", extractionError(pdfPath, err)
	}
	return v.next.Extract(pdfPath)
}

func validateFile(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.ValidateFile(path, conf)
}
