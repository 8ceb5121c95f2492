// Package segment splits a normalized, non-empty line array into header,
// body and footer regions so the primitive extractors and line-item
// extractors can each focus on the part of the document relevant to them.
package segment

import "regexp"

var (
	bodyStartKeyword = regexp.MustCompile(`(?i)description|item|qty|quantity|part\s*(no|#)|sku|unit\s*price|amount|total|bill\s*to|ship\s*to|customer|product|service|particular|rate|no\.?`)
	tableHeaderKeyword = regexp.MustCompile(`(?i)\b(description|item|qty|quantity|part|sku|unit\s*price|amount|total|rate|no\.?)\b`)
	totalsKeyword      = regexp.MustCompile(`(?i)sub\s*total|subtotal|total|tax|gst|vat|shipping|discount|balance|amount\s*due|net\s*amount|gross\s*amount|grand\s*total`)
)

const (
	headerScanLimit  = 25
	defaultHeaderEnd = 8
)

// Segments holds the three non-overlapping line ranges of a document.
type Segments struct {
	Header []string
	Body   []string
	Footer []string

	HeaderEnd  int
	FooterStart int
}

// Split partitions allLines (normalized, non-empty lines) into header,
// body and footer regions.
func Split(allLines []string) Segments {
	n := len(allLines)
	headerEnd := findHeaderEnd(allLines)
	footerStart := findFooterStart(allLines, headerEnd)

	if headerEnd > n {
		headerEnd = n
	}
	if footerStart > n {
		footerStart = n
	}
	if footerStart < headerEnd {
		footerStart = headerEnd
	}

	return Segments{
		Header:      allLines[0:headerEnd],
		Body:        allLines[headerEnd:footerStart],
		Footer:      allLines[footerStart:n],
		HeaderEnd:   headerEnd,
		FooterStart: footerStart,
	}
}

func findHeaderEnd(allLines []string) int {
	limit := headerScanLimit
	if limit > len(allLines) {
		limit = len(allLines)
	}
	for i := 0; i < limit; i++ {
		line := allLines[i]
		if bodyStartKeyword.MatchString(line) {
			return i
		}
		if len(tableHeaderKeyword.FindAllString(line, -1)) >= 2 {
			return i
		}
	}
	if defaultHeaderEnd < len(allLines) {
		return defaultHeaderEnd
	}
	return len(allLines)
}

func findFooterStart(allLines []string, headerEnd int) int {
	n := len(allLines)
	threshold := (n * 35) / 100
	for i := threshold; i < n; i++ {
		if totalsKeyword.MatchString(allLines[i]) {
			return i
		}
	}
	seventyFive := (n * 75) / 100
	fallback := seventyFive
	if n-15 > fallback {
		fallback = n - 15
	}
	if fallback < headerEnd {
		fallback = headerEnd
	}
	if fallback > n {
		fallback = n
	}
	return fallback
}
