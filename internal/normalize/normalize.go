// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize rewrites raw extracted text into its canonical cleaned
// form: citation markers removed, whitespace folded to single spaces.
package normalize

import (
	"regexp"
	"strings"
)

const ideographicSpace = "\u3000"

var (
	// citationMarker matches bracketed reference numbers such as "[12]".
	citationMarker = regexp.MustCompile(`\[\p{Nd}+\]`)

	// whitespaceRun matches runs of Unicode whitespace. RE2's \s is
	// ASCII-only, so the Z categories, NEL, and the ASCII separators
	// 0x1C-0x1F are listed explicitly. U+3000 is in Zs.
	whitespaceRun = regexp.MustCompile(`[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`)
)

// Clean normalizes text. It never fails; the empty string maps to itself.
// Clean is idempotent: Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	t := StripCitations(text)
	t = whitespaceRun.ReplaceAllString(t, " ")
	t = strings.ReplaceAll(t, ideographicSpace, " ")
	return strings.TrimSpace(t)
}

// StripCitations removes every "[<digits>]" marker. Removal repeats until
// none remain, since deleting an inner marker can expose an outer one
// ("[[1]2]" becomes "[2]").
func StripCitations(text string) string {
	for citationMarker.MatchString(text) {
		text = citationMarker.ReplaceAllString(text, "")
	}
	return text
}
