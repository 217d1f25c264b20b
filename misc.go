package aclhelper

import "strings"

// splitNonEmpty splits s on sep and drops empty fields, trimming
// surrounding whitespace from each one.
func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
