package content

import "strings"

// SplitLines splits on \n and \r\n. A trailing line ending does not produce
// an empty last element; a lone \r is kept as content.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n':
			lines = append(lines, s[start:i])
			start = i + 2
			i++
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// Head returns the first n lines of s joined by \n, and whether lines were
// dropped.
func Head(s string, n int) (string, bool) {
	lines := SplitLines(s)
	if n < 0 || len(lines) <= n {
		return strings.Join(lines, "\n"), false
	}
	return strings.Join(lines[:n], "\n"), true
}

// NonEmptyLines returns the lines of s that contain something besides
// whitespace, trimmed.
func NonEmptyLines(s string) []string {
	var out []string
	for _, l := range SplitLines(s) {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}
