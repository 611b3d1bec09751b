// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment partitions cleaned paper text into an ordered sequence of
// (header, body) sections. Header detection is a pluggable strategy: the
// default PatternDetector reproduces the capitalized-phrase heuristic and
// VocabularyDetector matches a fixed list of section names.
package segment

import (
	"sort"
	"strings"

	"github.com/pdiddy/paper-prep/pkg/types"
)

// Match is one candidate header found in the text. Start and End are byte
// offsets of the span that the header occupies; the body of the section
// begins at End.
type Match struct {
	Start  int
	End    int
	Header string
}

// HeaderDetector finds candidate section headers in cleaned text.
type HeaderDetector interface {
	// Scan returns the header matches found in text. Order is not
	// significant; Segment sorts by Start.
	Scan(text string) []Match
}

// Segment splits text at the header boundaries reported by d. Text before
// the first header is discarded. Each header's body runs to the next
// header or the end of text; both are trimmed. Overlapping matches are
// dropped in favor of the one that starts first. A header with nothing
// after it gets an empty body.
func Segment(text string, d HeaderDetector) types.SectionMap {
	matches := usable(d.Scan(text), len(text))
	if len(matches) == 0 {
		return types.SectionMap{}
	}

	sections := make(types.SectionMap, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].Start
		}
		sections = append(sections, types.Section{
			Header: strings.TrimSpace(m.Header),
			Body:   strings.TrimSpace(text[m.End:end]),
		})
	}
	return sections
}

// usable sorts matches by position and drops out-of-range, blank, or
// overlapping ones.
func usable(matches []Match, n int) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})

	out := matches[:0]
	last := 0
	for _, m := range matches {
		if m.Start < last || m.End < m.Start || m.End > n {
			continue
		}
		if strings.TrimSpace(m.Header) == "" {
			continue
		}
		out = append(out, m)
		last = m.End
	}
	return out
}
