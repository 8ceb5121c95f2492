package lineitems

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/patterns"
	"github.com/docextract/docextract/internal/primitives"
)

// MultiLineItems parses each body line with parse_line_item; when a line
// succeeds, it checks whether the next line is a pure-alphabetic
// description line and, if so, attaches and consumes it. A following
// SKU-labeled line also attaches.
func MultiLineItems(body []string, defaultTaxPct *decimal.Decimal) []primitives.LineItem {
	var items []primitives.LineItem
	i := 0
	for i < len(body) {
		line := body[i]
		item, ok := primitives.ParseLineItem(line, defaultTaxPct)
		if !ok {
			i++
			continue
		}

		if i+1 < len(body) {
			next := strings.TrimSpace(body[i+1])
			if next != "" && pureAlphaLine.MatchString(next) && !footerKeywordLine.MatchString(next) && !digitRe.MatchString(next) {
				item.Description = next
				i++
			} else if m := patterns.SKULabeled.FindStringSubmatch(next); m != nil {
				item.SKU = m[1]
				i++
			}
		}

		items = append(items, item)
		i++
	}
	return items
}
