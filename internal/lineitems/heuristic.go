package lineitems

import (
	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/primitives"
)

// PerLineHeuristic runs parse_line_item independently over each body
// line, with no description/SKU attachment across lines.
func PerLineHeuristic(body []string, defaultTaxPct *decimal.Decimal) []primitives.LineItem {
	var items []primitives.LineItem
	for _, line := range body {
		if item, ok := primitives.ParseLineItem(line, defaultTaxPct); ok {
			items = append(items, item)
		}
	}
	return items
}

// WholeDocumentFallback runs parse_line_item over every line of the
// document, used only when every body-scoped strategy above yielded
// nothing.
func WholeDocumentFallback(allLines []string, defaultTaxPct *decimal.Decimal) []primitives.LineItem {
	var items []primitives.LineItem
	for _, line := range allLines {
		if item, ok := primitives.ParseLineItem(line, defaultTaxPct); ok {
			items = append(items, item)
		}
	}
	return items
}
