package ingest

import (
	"strings"
	"unicode"
)

// SplitResult is a raw node name tokenized into a stable canonical
// reference and a human-readable title. Title is empty when every token
// belongs to the reference.
type SplitResult struct {
	Reference string
	Title     string
}

// markerWords are structural tokens that extend a reference even without
// digits, e.g. "SYSC 4 Annex 1".
var markerWords = map[string]bool{
	"annex":    true,
	"appendix": true,
	"schedule": true,
	"part":     true,
	"chapter":  true,
	"section":  true,
}

// SplitName tokenizes a free-text name such as "SYSC 3 Systems and
// Controls" into ("SYSC 3", "Systems and Controls"). The first token is the
// code; subsequent tokens join the reference while they contain a digit,
// match a marker word, or are all-uppercase immediately after a marker
// word. The first token failing all three starts the title.
func SplitName(name string) SplitResult {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return SplitResult{}
	}
	refTokens := []string{tokens[0]}
	rest := tokens[1:]
	prevMarker := false
	for len(rest) > 0 {
		tok := rest[0]
		switch {
		case containsDigit(tok):
			prevMarker = false
		case markerWords[strings.ToLower(tok)]:
			prevMarker = true
		case prevMarker && isAllUpper(tok):
			prevMarker = false
		default:
			return SplitResult{
				Reference: strings.Join(refTokens, " "),
				Title:     strings.Join(rest, " "),
			}
		}
		refTokens = append(refTokens, tok)
		rest = rest[1:]
	}
	return SplitResult{Reference: strings.Join(refTokens, " ")}
}

// provisionSuffixes maps a provision type to its single-letter reference
// suffix.
var provisionSuffixes = map[string]string{
	"Rules":      "R",
	"Guidance":   "G",
	"Evidential": "E",
	"Direction":  "D",
	"Principles": "P",
}

// ProvisionRef appends the provision type's suffix to label unless it is
// already present, so the function is idempotent. Unknown types pass
// through unchanged.
func ProvisionRef(label, provisionType string) string {
	label = strings.TrimSpace(label)
	suffix, ok := provisionSuffixes[provisionType]
	if !ok || label == "" {
		return label
	}
	if strings.HasSuffix(label, suffix) {
		return label
	}
	return label + suffix
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
