// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DefaultHeadings lists section names common in scientific papers.
var DefaultHeadings = []string{
	"Abstract",
	"Introduction",
	"Background",
	"Related Work",
	"Preliminaries",
	"Method",
	"Methods",
	"Methodology",
	"Materials and Methods",
	"Approach",
	"Experiments",
	"Experimental Setup",
	"Evaluation",
	"Results",
	"Results and Discussion",
	"Discussion",
	"Limitations",
	"Future Work",
	"Conclusion",
	"Conclusions",
	"Acknowledgments",
	"Acknowledgements",
	"References",
	"Appendix",
}

// numbering matches section numbers such as "2", "2.", "2.1", "IV." that
// may precede a heading.
const numbering = `(?:(?:\d+(?:\.\d+)*\.?|[IVX]+\.)\s+)?`

// Word boundaries are spelled out because RE2's \b only knows ASCII word
// characters and would never match around "はじめに" or "Résumé".
const (
	leadingBoundary  = `(?:^|[^\p{L}\p{N}_])`
	trailingBoundary = `(?:[^\p{L}\p{N}_]|$)`
)

// VocabularyDetector matches a fixed list of section names, case-sensitive
// and on Unicode word boundaries. A leading section number is absorbed into
// the header span but not into the header text.
type VocabularyDetector struct {
	re *regexp.Regexp
}

// NewVocabularyDetector builds a detector for the given headings. Longer
// names are tried first so "Materials and Methods" wins over "Methods".
// It returns an error when headings is empty after trimming.
func NewVocabularyDetector(headings []string) (*VocabularyDetector, error) {
	names := make([]string, 0, len(headings))
	seen := make(map[string]bool, len(headings))
	for _, h := range headings {
		h = strings.Join(strings.Fields(h), " ")
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		names = append(names, h)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("heading vocabulary is empty")
	}

	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	alts := make([]string, len(names))
	for i, n := range names {
		alts[i] = regexp.QuoteMeta(n)
	}

	re, err := regexp.Compile(leadingBoundary + `(` + numbering + `(` + strings.Join(alts, "|") + `))` + trailingBoundary)
	if err != nil {
		return nil, fmt.Errorf("compiling heading vocabulary: %w", err)
	}
	return &VocabularyDetector{re: re}, nil
}

// Scan implements HeaderDetector. The boundary runes are consumed by the
// expression, so each search resumes right after the previous header to
// leave its trailing boundary available as the next leading one.
func (v *VocabularyDetector) Scan(text string) []Match {
	var matches []Match
	for pos := 0; pos < len(text); {
		loc := v.re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		matches = append(matches, Match{
			Start:  pos + loc[2],
			End:    pos + loc[3],
			Header: text[pos+loc[4] : pos+loc[5]],
		})
		pos += loc[3]
	}
	return matches
}

// HeadingsFile is the on-disk form of a heading vocabulary.
type HeadingsFile struct {
	Headings []string `yaml:"headings"`
}

// LoadVocabulary reads a YAML headings file and builds a detector from it.
func LoadVocabulary(path string) (*VocabularyDetector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading headings file: %w", err)
	}
	var hf HeadingsFile
	if err := yaml.Unmarshal(data, &hf); err != nil {
		return nil, fmt.Errorf("parsing headings file %s: %w", path, err)
	}
	d, err := NewVocabularyDetector(hf.Headings)
	if err != nil {
		return nil, fmt.Errorf("headings file %s: %w", path, err)
	}
	return d, nil
}
