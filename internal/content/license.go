// Package content turns raw file bytes into the text that is counted and
// exported: license headers stripped, optionally minified, language tagged.
package content

import "strings"

// StripLicenseHeaders removes a leading license comment from code.
//
// If the first line opens a block comment ("/*"), everything through the line
// holding the closing "*/" is dropped; an unterminated block is left alone.
// If the first line is a "//" comment, all consecutive leading "//" lines are
// dropped. The result is trimmed of surrounding whitespace.
func StripLicenseHeaders(code string) string {
	lines := strings.Split(code, "\n")
	start := 0

	switch {
	case strings.HasPrefix(lines[0], "/*"):
		for i, line := range lines {
			if strings.Contains(line, "*/") {
				start = i + 1
				break
			}
		}
	case strings.HasPrefix(lines[0], "//"):
		start = len(lines)
		for i, line := range lines {
			if !strings.HasPrefix(line, "//") {
				start = i
				break
			}
		}
	}

	return strings.TrimSpace(strings.Join(lines[start:], "\n"))
}
