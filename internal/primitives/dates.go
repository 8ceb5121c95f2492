package primitives

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/docextract/docextract/internal/patterns"
)

var (
	invoiceDateLabels     = []*regexp.Regexp{
		regexp.MustCompile(`(?i)invoice\s*date`),
		regexp.MustCompile(`(?i)date\s*issued`),
		regexp.MustCompile(`(?i)\bissued\b`),
		regexp.MustCompile(`(?i)\bdate\b`),
	}
	dueDateLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)due\s*date`),
		regexp.MustCompile(`(?i)payment\s*due`),
		regexp.MustCompile(`(?i)pay\s*by`),
	}
	transactionDateLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)transaction\s*date`),
		regexp.MustCompile(`(?i)sale\s*date`),
		regexp.MustCompile(`(?i)purchase\s*date`),
		regexp.MustCompile(`(?i)order\s*date`),
	}
)

// ExtractDates finds the invoice/due/transaction dates labeled anywhere in
// lines and normalizes each to ISO YYYY-MM-DD when a numeric pattern is
// matched. Unresolved dates are returned as nil.
func ExtractDates(allLines []string) (invoiceDate, dueDate, transactionDate *string) {
	invoiceDate = findLabeledDate(allLines, invoiceDateLabels, dueDateLabels, transactionDateLabels)
	dueDate = findLabeledDate(allLines, dueDateLabels)
	transactionDate = findLabeledDate(allLines, transactionDateLabels)
	return
}

// findLabeledDate tries each label regex (strongest first) across every
// line, returning the first date found after a label match. exclusions
// are other label sets whose match on the same line should block a weak
// (generic "date") match from stealing that line.
func findLabeledDate(allLines []string, wanted []*regexp.Regexp, exclusions ...[]*regexp.Regexp) *string {
	for _, labelRe := range wanted {
		for _, line := range allLines {
			loc := labelRe.FindStringIndex(line)
			if loc == nil {
				continue
			}
			if labelIsWeak(labelRe) && lineMatchesAny(line, exclusions) {
				continue
			}
			rest := line[loc[1]:]
			if iso, ok := firstDateIn(rest); ok {
				return &iso
			}
			if iso, ok := firstDateIn(line); ok {
				return &iso
			}
		}
	}
	return nil
}

func labelIsWeak(re *regexp.Regexp) bool {
	return re.String() == `(?i)\bdate\b`
}

func lineMatchesAny(line string, sets [][]*regexp.Regexp) bool {
	for _, set := range sets {
		for _, re := range set {
			if re.MatchString(line) {
				return true
			}
		}
	}
	return false
}

// firstDateIn finds the first date-shaped substring in s and normalizes it
// to ISO YYYY-MM-DD.
func firstDateIn(s string) (string, bool) {
	if m := patterns.DateISO.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return isoDate(y, mo, d), true
	}
	if m := patterns.DateNumeric.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		y = expandTwoDigitYear(y)
		// Ambiguous MM/DD/YYYY vs DD/MM/YYYY: first component > 12 forces
		// day-first; otherwise ALSO day-first. This intentionally inverts
		// the usual US MM/DD convention; see the open questions in the
		// design notes — it is documented behavior, not a bug.
		day, month := a, b
		return isoDate(y, month, day), true
	}
	if m := patterns.DateLong.FindStringSubmatch(s); m != nil {
		mo := patterns.MonthNumber[lower(m[1])]
		d, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		y = expandTwoDigitYear(y)
		return isoDate(y, mo, d), true
	}
	if m := patterns.DateLongRev.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo := patterns.MonthNumber[lower(m[2])]
		y, _ := strconv.Atoi(m[3])
		y = expandTwoDigitYear(y)
		return isoDate(y, mo, d), true
	}
	return "", false
}

func expandTwoDigitYear(y int) int {
	if y < 100 {
		return 2000 + y
	}
	return y
}

func isoDate(y, m, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
