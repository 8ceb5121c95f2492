// Package lineitems implements the three complementary line-item
// extraction strategies (column-aligned table, multi-line items, vertical
// form) plus the per-line heuristic and whole-document fallbacks, tried
// in strict order until one yields a non-empty result.
package lineitems

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/primitives"
)

var (
	tableHeaderKeyword = regexp.MustCompile(`(?i)\b(description|item|qty|quantity|part|sku|unit\s*price|amount|total|rate|no\.?)\b`)
	footerKeywordLine  = regexp.MustCompile(`(?i)sub\s*total|subtotal|total|tax|gst|vat|shipping|discount|balance|amount\s*due|net\s*amount|gross\s*amount|grand\s*total`)
	pureAlphaLine      = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 ,.'\-]*$`)
	partNumberCode     = regexp.MustCompile(`^[\dA-Z][\w\-/.]{2,}$`)
	digitRe            = regexp.MustCompile(`\d`)
)

// ColumnAlignedTable scans body for a header row carrying >=2
// table-header keywords. It then parses each subsequent row with the same
// numeric-disambiguation logic as parse_line_item, attaching a
// one-line description from the immediately following line when that line
// is alphabetic/non-numeric/non-footer, and extracting a distinct
// part_number from pure-code segments appearing alongside a separate
// alphabetic name.
func ColumnAlignedTable(body []string, defaultTaxPct *decimal.Decimal) []primitives.LineItem {
	headerRow := -1
	for idx, line := range body {
		if len(tableHeaderKeyword.FindAllString(line, -1)) >= 2 {
			headerRow = idx
			break
		}
	}
	if headerRow < 0 {
		return nil
	}

	var items []primitives.LineItem
	i := headerRow + 1
	for i < len(body) {
		line := body[i]
		if footerKeywordLine.MatchString(line) {
			break
		}

		item, ok := primitives.ParseLineItem(line, defaultTaxPct)
		if !ok {
			i++
			continue
		}
		if !hasTwoLetterRun(item.ItemName) {
			i++
			continue
		}

		if pn := extractPartNumber(line, item.ItemName); pn != "" {
			item.PartNumber = pn
		}

		if i+1 < len(body) {
			next := strings.TrimSpace(body[i+1])
			if next != "" && pureAlphaLine.MatchString(next) && !footerKeywordLine.MatchString(next) && !digitRe.MatchString(next) {
				item.Description = next
				i++
			}
		}

		items = append(items, item)
		i++
	}
	return items
}

func hasTwoLetterRun(s string) bool {
	return consecutiveLetters2.MatchString(s)
}

var consecutiveLetters2 = regexp.MustCompile(`[A-Za-z]{2,}`)

// extractPartNumber looks for a pure-code segment (distinct from the item
// name) in line that looks like a part number: matches
// ^[\dA-Z][\w\-/.]{2,}$ and contains at least one digit.
func extractPartNumber(line, itemName string) string {
	for _, seg := range strings.Fields(line) {
		if seg == itemName {
			continue
		}
		if partNumberCode.MatchString(seg) && digitRe.MatchString(seg) && !strings.Contains(itemName, seg) {
			return seg
		}
	}
	return ""
}
