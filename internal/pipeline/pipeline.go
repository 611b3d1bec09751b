// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences extraction, normalization, and segmentation
// for one PDF and persists the cleaned text and optional section map.
package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/paper-prep/internal/convert"
	"github.com/pdiddy/paper-prep/internal/normalize"
	"github.com/pdiddy/paper-prep/internal/segment"
	"github.com/pdiddy/paper-prep/pkg/types"
)

// IOError reports a failure to create an output directory or to read or
// write an artifact.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Run processes the PDF named by cfg.PDFPath. The cleaned text is written
// to cfg.TextPath; when cfg.SectionsPath is set the text is segmented with
// d and the section map is written there as JSON. Nothing is written if
// extraction fails. Progress lines go to w.
//
// A nil d selects the default pattern detector.
func Run(cfg types.PreprocessConfig, ex convert.Extractor, d segment.HeaderDetector, w io.Writer) (*types.Document, error) {
	raw, err := ex.Extract(cfg.PDFPath)
	if err != nil {
		var ee *convert.ExtractionError
		if !errors.As(err, &ee) {
			err = &convert.ExtractionError{Path: cfg.PDFPath, Err: err}
		}
		return nil, err
	}

	doc := &types.Document{
		SourcePath: cfg.PDFPath,
		Raw:        raw,
		Cleaned:    normalize.Clean(raw),
	}
	if cfg.WantsSections() {
		doc.Sections = segment.Segment(doc.Cleaned, detectorOrDefault(d))
	}

	if err := WriteText(cfg.TextPath, doc.Cleaned); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Cleaned text saved to %s\n", cfg.TextPath)

	if cfg.WantsSections() {
		if err := WriteSections(cfg.SectionsPath, doc.Sections); err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "Sections saved to %s\n", cfg.SectionsPath)
	}

	return doc, nil
}

// SegmentFile reads a cleaned text file, segments it with d, and writes the
// section map to sectionsPath. The text is normalized again first; for
// output of Run this is a no-op.
func SegmentFile(textPath, sectionsPath string, d segment.HeaderDetector, w io.Writer) (types.SectionMap, error) {
	data, err := os.ReadFile(textPath)
	if err != nil {
		return nil, &IOError{Op: "read", Path: textPath, Err: err}
	}

	sections := segment.Segment(normalize.Clean(string(data)), detectorOrDefault(d))
	if err := WriteSections(sectionsPath, sections); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Sections saved to %s\n", sectionsPath)
	return sections, nil
}

// WriteText writes text to path as UTF-8, replacing any existing file and
// creating parent directories.
func WriteText(path, text string) error {
	return writeFile(path, []byte(text))
}

// WriteSections writes the section map as a JSON object with two-space
// indentation. Non-ASCII and HTML characters are written literally.
func WriteSections(path string, sections types.SectionMap) error {
	data, err := EncodeSections(sections)
	if err != nil {
		return fmt.Errorf("encoding sections for %s: %w", path, err)
	}
	return writeFile(path, data)
}

// EncodeSections returns the JSON form written by WriteSections.
func EncodeSections(sections types.SectionMap) ([]byte, error) {
	if sections == nil {
		sections = types.SectionMap{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sections); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func detectorOrDefault(d segment.HeaderDetector) segment.HeaderDetector {
	if d == nil {
		return segment.NewPatternDetector()
	}
	return d
}
