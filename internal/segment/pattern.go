// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import "regexp"

// DefaultSignature approximates "a capitalized phrase": an uppercase letter
// followed by one or more letters or spaces.
const DefaultSignature = `[A-Z][A-Za-z ]+`

// PatternDetector reports every non-overlapping match of a regular
// expression as a header. It is prone to false positives on any
// capitalized sentence and is the default for compatibility with existing
// section files.
type PatternDetector struct {
	re *regexp.Regexp
}

// NewPatternDetector returns a detector for DefaultSignature.
func NewPatternDetector() *PatternDetector {
	return &PatternDetector{re: regexp.MustCompile(DefaultSignature)}
}

// NewPatternDetectorFrom compiles a custom header signature.
func NewPatternDetectorFrom(signature string) (*PatternDetector, error) {
	re, err := regexp.Compile(signature)
	if err != nil {
		return nil, err
	}
	return &PatternDetector{re: re}, nil
}

// Scan implements HeaderDetector.
func (p *PatternDetector) Scan(text string) []Match {
	locs := p.re.FindAllStringIndex(text, -1)
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		matches = append(matches, Match{
			Start:  loc[0],
			End:    loc[1],
			Header: text[loc[0]:loc[1]],
		})
	}
	return matches
}
