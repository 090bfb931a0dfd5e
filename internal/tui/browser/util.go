package browser

import "strings"

// indent returns the prefix for a node at depth.
func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// truncate shortens s to at most n runes, ending with an ellipsis.
func truncate(s string, n int) string {
	// Descriptions can span lines; only the first is shown.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
