package picker

import "strings"

// ParseSearchTerms splits comma-separated search input into lowercase,
// trimmed, non-empty terms. Empty input yields no terms, meaning no filter.
func ParseSearchTerms(raw string) []string {
	var terms []string
	for _, term := range strings.Split(raw, ",") {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// Matches reports whether relativePath contains any of terms,
// case-insensitively. Terms must already be lowercase. An empty term list
// matches everything.
func Matches(relativePath string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	lower := strings.ToLower(relativePath)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
