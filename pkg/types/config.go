// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionBackend identifies the tool that pulls text out of a PDF.
type ExtractionBackend string

const (
	BackendNative    ExtractionBackend = "native"
	BackendContainer ExtractionBackend = "container"
)

// DetectorKind selects the header detection strategy used for segmentation.
type DetectorKind string

const (
	DetectorPattern    DetectorKind = "pattern"
	DetectorVocabulary DetectorKind = "vocabulary"
)

// PreprocessConfig holds everything a single preprocessing run needs. The
// CLI builds it once from flags and config and passes it by value.
type PreprocessConfig struct {
	// PDFPath is the input PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// TextPath receives the cleaned text.
	TextPath string `json:"text_path" yaml:"text_path"`

	// SectionsPath receives the section map as JSON. Empty disables
	// segmentation.
	SectionsPath string `json:"sections_path,omitempty" yaml:"sections_path,omitempty"`

	// Backend selects the extraction tool: native or container.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// ContainerRuntime names the runtime for the container backend: docker,
	// podman, or empty to detect one.
	ContainerRuntime string `json:"container_runtime,omitempty" yaml:"container_runtime,omitempty"`

	// ContainerImage is the pdftotext image for the container backend.
	ContainerImage string `json:"container_image,omitempty" yaml:"container_image,omitempty"`

	// Detector selects the header detection strategy: pattern or vocabulary.
	Detector DetectorKind `json:"detector" yaml:"detector"`

	// HeadingsFile is an optional YAML vocabulary for the vocabulary detector.
	HeadingsFile string `json:"headings_file,omitempty" yaml:"headings_file,omitempty"`

	// Signature replaces the pattern detector's header expression. Empty
	// uses the built-in capitalized-phrase signature.
	Signature string `json:"signature,omitempty" yaml:"signature,omitempty"`

	// Validate enables structural PDF validation before extraction.
	Validate bool `json:"validate" yaml:"validate"`
}

// WantsSections reports whether the run should segment and write sections.
func (c PreprocessConfig) WantsSections() bool {
	return c.SectionsPath != ""
}
