// Package normalize repairs frequent OCR artifacts in raw text without
// altering its semantics. Every transform is newline-count preserving, so
// line indices computed downstream (by the segmenter and line-item
// extractors) stay valid.
package normalize

import "regexp"

var (
	dollarLI        = regexp.MustCompile(`\$[lI](\d)`)
	digitOLetter    = regexp.MustCompile(`(\d)[Oo](\d)`)
	sDollarAmount   = regexp.MustCompile(`(\s)S(\d+\.\d{2})`)
	spaceTabRun     = regexp.MustCompile(`[ \t]{2,}`)
	splitThousands  = regexp.MustCompile(`(?m)(\d) (\d{3})([.,]|[^\d]|$)`)
	dashVariants    = regexp.MustCompile(`[\x{2013}\x{2014}]`)
	zeroWidthChars  = regexp.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}]`)
)

// Normalize applies the eight OCR-repair transforms, in order, to raw,
// repeating the sequence until a pass changes nothing. The result has
// exactly as many '\n' characters as raw. Calling Normalize on an
// already-normalized string returns it unchanged.
func Normalize(raw string) string {
	s := normalizeOnce(raw)
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

// normalizeOnce makes one pass of the eight transforms. A single pass can
// expose a new match for an earlier step (e.g. "1 234 567" -> "1234 567").
func normalizeOnce(raw string) string {
	s := raw

	// 1. "$l5" / "$I5" -> "$15" (lowercase L / uppercase I after a
	// currency symbol misread as the digit 1).
	s = dollarLI.ReplaceAllString(s, "$$1$1")

	// 2. "5O5" / "5o5" -> "505" (O misread as 0 inside a numeric run).
	s = digitOLetter.ReplaceAllString(s, "${1}0${2}")

	// 3. " S12.34" -> " $12.34" (S misread as $).
	s = sDollarAmount.ReplaceAllString(s, "${1}$$${2}")

	// 4. Collapse runs of 2+ spaces/tabs to exactly two spaces, preserving
	// the column separation that the table-oriented line-item extractor
	// depends on.
	s = spaceTabRun.ReplaceAllString(s, "  ")

	// 5. "5 678.00" -> "5678.00" (OCR-inserted space inside a monetary
	// value's thousands group).
	s = splitThousands.ReplaceAllString(s, "${1}${2}${3}")

	// 6. En/em dash -> ASCII hyphen.
	s = dashVariants.ReplaceAllString(s, "-")

	// 7. Strip zero-width characters.
	s = zeroWidthChars.ReplaceAllString(s, "")

	// 8. Trim trailing whitespace per line.
	s = trimTrailingPerLine(s)

	return s
}

func trimTrailingPerLine(s string) string {
	lines := splitKeepCount(s)
	for i, line := range lines {
		lines[i] = trimRightSpace(line)
	}
	return joinLines(lines)
}

func splitKeepCount(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func trimRightSpace(s string) string {
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if c == ' ' || c == '\t' || c == '\r' {
			end--
			continue
		}
		break
	}
	return s[:end]
}
