package redact

import "regexp"

// tagPattern matches a redaction tag: one or more uppercase letters or
// underscores inside square brackets.
var tagPattern = regexp.MustCompile(`\[[A-Z_]+\]`)

// Analysis summarises the redaction tags found in a text.
type Analysis struct {
	// Count is the total number of tag occurrences.
	Count int `json:"count"`
	// Types is the number of distinct tags.
	Types int `json:"types"`
	// Tags lists the distinct tags in order of first appearance.
	Tags []string `json:"tags"`
}

// Analyze scans text for redaction tags.
func Analyze(text string) Analysis {
	matches := tagPattern.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches))
	tags := []string{}
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		tags = append(tags, m)
	}

	return Analysis{
		Count: len(matches),
		Types: len(tags),
		Tags:  tags,
	}
}

// LineCount returns the number of lines in text. The empty string has zero
// lines and a trailing newline does not start a new one.
func LineCount(text string) int {
	if text == "" {
		return 0
	}
	n := 1
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' && i != len(text)-1 {
			n++
		}
	}
	return n
}
