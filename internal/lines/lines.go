// Package lines provides the shared line-vector view that every
// line-sensitive extractor operates on, so cross-line semantics never leak
// through raw string offsets.
package lines

import "strings"

// Split returns every line of s, including blank ones, in order.
func Split(s string) []string {
	return strings.Split(s, "\n")
}

// NonEmpty returns every line of s whose trimmed content is non-empty, in
// order. This is the view the document segmenter (C4) and most primitive
// extractors operate on.
func NonEmpty(s string) []string {
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// Join re-joins a line vector with '\n'.
func Join(ls []string) string {
	return strings.Join(ls, "\n")
}
