package primitives

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/patterns"
)

var (
	leadingParenQualifier = regexp.MustCompile(`^\s*\([^)]*\)\s*`)
	totalsKeywordLine     = regexp.MustCompile(`(?i)sub\s*total|subtotal|total|tax|gst|vat|shipping|discount|balance|amount due|net amount|gross amount|grand total`)
)

// ExtractLabeledAmount finds the monetary value associated with labelRe
// within allLines. Phase one looks on the label's own line (skipping an
// intermediary parenthesized qualifier like "(8%)"); phase two, used when
// the label sits alone on its line, scans up to 4 following lines for a
// standalone amount, stopping at any totals-keyword line. Returns false
// when no value is found.
func ExtractLabeledAmount(allLines []string, labelRe *regexp.Regexp) (decimal.Decimal, bool) {
	for i, line := range allLines {
		loc := labelRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		rest := line[loc[1]:]
		rest = leadingParenQualifier.ReplaceAllString(rest, "")
		if amt, ok := firstAmountIn(rest); ok {
			return amt, true
		}

		if lineIsLabelAlone(line, loc) {
			for j := i + 1; j <= i+4 && j < len(allLines); j++ {
				if totalsKeywordLine.MatchString(allLines[j]) {
					break
				}
				if amt, ok := firstAmountIn(allLines[j]); ok {
					return amt, true
				}
			}
		}
	}
	return decimal.Zero, false
}

func lineIsLabelAlone(line string, labelLoc []int) bool {
	remainder := strings.TrimSpace(line[labelLoc[1]:])
	remainder = strings.Trim(remainder, ":.- \t")
	return remainder == ""
}

// firstAmountIn finds the first monetary value in s and parses it,
// stripping thousands separators and currency symbols. The returned
// value is always non-negative, per the extract_labeled_amount contract.
func firstAmountIn(s string) (decimal.Decimal, bool) {
	m := patterns.Amount.FindString(s)
	if m == "" {
		m = patterns.AmountBare.FindString(s)
	}
	if m == "" {
		return decimal.Zero, false
	}
	return ParseAmount(m)
}

// ParseAmount parses a monetary literal possibly carrying a currency
// symbol/code, thousands separators, a parenthesized-negative wrapper, or
// a trailing CR/DR suffix, and returns its absolute value.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	negative := false

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	upper := strings.ToUpper(s)
	if strings.HasSuffix(upper, "CR") {
		s = s[:len(s)-2]
	} else if strings.HasSuffix(upper, "DR") {
		negative = true
		s = s[:len(s)-2]
	}

	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "£")
	s = strings.TrimPrefix(s, "¥")
	s = strings.TrimPrefix(s, "₹")
	for _, code := range []string{"USD", "EUR", "GBP", "AUD", "CAD", "NZD"} {
		s = strings.TrimSuffix(strings.TrimSpace(s), code)
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d.Abs(), true
}
