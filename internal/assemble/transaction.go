package assemble

import "regexp"

var (
	invoiceNumberLabel = regexp.MustCompile(`(?i)tax\s*invoice\s*(?:no\.?|#)|e-?invoice\s*[#:]|invoice\s*(?:no\.?|#|number)|inv\s*[#:]`)

	// poNumberLabel intentionally matches the word "Number" itself as
	// part of the label (not the value) for both "PO Number" and
	// "Purchase Order Number" phrasing, so the captured value token never
	// starts with the literal word "Number".
	poNumberLabel = regexp.MustCompile(`(?i)\bP\.?O\.?\s*(?:#|(?:No\.?|Number)\b)|Purchase\s*Order\s*(?:#|No\.?|Number)?`)

	quoteNumberLabel = regexp.MustCompile(`(?i)quote\s*(?:no\.?|#|number)`)

	// paymentModeLabel and paymentTermsLabel are kept disjoint by
	// requiring "mode/method/type" or "terms" respectively, rather than
	// relying on a negative-lookahead exclusion RE2 cannot express.
	paymentModeLabel  = regexp.MustCompile(`(?i)payment\s*(?:mode|method|type)\b[:\s]*`)
	paymentTermsLabel = regexp.MustCompile(`(?i)payment\s*terms?\b[:\s]*`)

	valueToken    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-/]{1,}`)
	valueLine     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-/]{2,}$`)
	valueLineFree = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-/ ]{2,}$`)
	leadingPunct  = regexp.MustCompile(`^[\s:#.\-]+`)

	// columnBoundary marks where a free-text labeled value ends when the
	// label sits in one column of an aligned table row — the same
	// two-or-more-spaces-or-pipe idiom as primitives' doubleSpaceSplit.
	columnBoundary = regexp.MustCompile(`[ \t]{2,}|\|`)

	transactionTimePattern = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)(?::[0-5]\d)?\s*([AaPp][Mm])?\b`)
)

// labeledToken finds labelRe on some line of allLines and returns the
// alphanumeric token immediately following it (same line, no newline
// crossing). If the label is never found with a same-line value, it falls
// back to: a line consisting of only the label, followed within 2 lines
// by a line matching the value shape. The second return value reports
// whether the fallback branch was used (a warning-worthy event).
func labeledToken(allLines []string, labelRe *regexp.Regexp) (string, bool, bool) {
	for _, line := range allLines {
		loc := labelRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		rest := leadingPunct.ReplaceAllString(line[loc[1]:], "")
		if v := valueToken.FindString(rest); v != "" {
			return v, false, true
		}
	}

	for i, line := range allLines {
		loc := labelRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		remainder := leadingPunct.ReplaceAllString(line[loc[1]:], "")
		if remainder != "" {
			continue
		}
		for j := i + 1; j <= i+2 && j < len(allLines); j++ {
			candidate := trimSpace(allLines[j])
			if valueLine.MatchString(candidate) {
				return candidate, true, true
			}
		}
	}

	return "", false, false
}

// labeledValue behaves like labeledToken but captures the rest of the line
// (up to the next column boundary) instead of a single alphanumeric token,
// for labels whose value is genuinely free text with internal spaces (e.g.
// "Payment Terms: Net 30", "Payment Mode: Credit Card") rather than a single
// identifier token like an invoice or PO number.
func labeledValue(allLines []string, labelRe *regexp.Regexp) (string, bool, bool) {
	for _, line := range allLines {
		loc := labelRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		rest := leadingPunct.ReplaceAllString(line[loc[1]:], "")
		if loc := columnBoundary.FindStringIndex(rest); loc != nil {
			rest = rest[:loc[0]]
		}
		if v := trimSpace(rest); v != "" {
			return v, false, true
		}
	}

	for i, line := range allLines {
		loc := labelRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		remainder := leadingPunct.ReplaceAllString(line[loc[1]:], "")
		if remainder != "" {
			continue
		}
		for j := i + 1; j <= i+2 && j < len(allLines); j++ {
			candidate := trimSpace(allLines[j])
			if valueLineFree.MatchString(candidate) {
				return candidate, true, true
			}
		}
	}

	return "", false, false
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// ExtractTransactionTime returns the first HH:MM(:SS)? (AM|PM)? match in
// allLines, in its original OCR-captured form.
func ExtractTransactionTime(allLines []string) (string, bool) {
	for _, line := range allLines {
		if m := transactionTimePattern.FindString(line); m != "" {
			return m, true
		}
	}
	return "", false
}
