// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the preprocessing stages.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Section is one detected (header, body) pair.
type Section struct {
	// Header is the detected section title, trimmed.
	Header string `json:"header" yaml:"header"`

	// Body is the text between this header and the next one, trimmed.
	Body string `json:"body" yaml:"body"`
}

// SectionMap is the ordered outline of a document. Entries appear in the
// order their headers occur in the cleaned text. Repeated headers are kept
// as separate entries.
type SectionMap []Section

// Len returns the number of sections.
func (m SectionMap) Len() int {
	return len(m)
}

// Headers returns the section headers in document order, including repeats.
func (m SectionMap) Headers() []string {
	headers := make([]string, len(m))
	for i, s := range m {
		headers[i] = s.Header
	}
	return headers
}

// Get returns the body of the first section with the given header.
func (m SectionMap) Get(header string) (string, bool) {
	for _, s := range m {
		if s.Header == header {
			return s.Body, true
		}
	}
	return "", false
}

// Keys returns the object keys used when the map is serialized. A header
// seen for the n-th time (n >= 2) becomes "<header> (n)", skipping any
// suffix that would collide with a header already in use.
func (m SectionMap) Keys() []string {
	keys := make([]string, len(m))
	used := make(map[string]bool, len(m))
	seen := make(map[string]int, len(m))
	for i, s := range m {
		seen[s.Header]++
		key := s.Header
		for n := max(seen[s.Header], 2); used[key]; n++ {
			key = fmt.Sprintf("%s (%d)", s.Header, n)
		}
		used[key] = true
		keys[i] = key
	}
	return keys
}

// MarshalJSON encodes the sections as a single JSON object whose members
// follow document order. HTML-sensitive characters are not escaped.
func (m SectionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	var out bytes.Buffer
	out.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			out.WriteByte(',')
		}
		buf.Reset()
		if err := enc.Encode(key); err != nil {
			return nil, fmt.Errorf("encoding header %q: %w", key, err)
		}
		out.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
		out.WriteByte(':')
		buf.Reset()
		if err := enc.Encode(m[i].Body); err != nil {
			return nil, fmt.Errorf("encoding body of %q: %w", key, err)
		}
		out.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	}
	out.WriteByte('}')
	return out.Bytes(), nil
}

// Document is the result of one preprocessing run. It is built once and
// not modified afterwards.
type Document struct {
	// SourcePath is the PDF the document was extracted from.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// Raw is the verbatim text extracted from the PDF text layer.
	Raw string `json:"raw" yaml:"raw"`

	// Cleaned is Raw after normalization.
	Cleaned string `json:"cleaned" yaml:"cleaned"`

	// Sections is nil when segmentation was not requested.
	Sections SectionMap `json:"sections,omitempty" yaml:"sections,omitempty"`
}
