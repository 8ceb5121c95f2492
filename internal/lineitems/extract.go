package lineitems

import (
	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/primitives"
)

// Result is the outcome of Extract: the chosen strategy's items, plus
// warnings to surface in Record.Metadata.Warnings.
type Result struct {
	Items    []primitives.LineItem
	Warnings []string
}

// Extract tries the line-item extraction strategies in strict order —
// column-aligned table, multi-line items, vertical form, per-line
// heuristic, whole-document fallback — and returns the first non-empty
// result.
func Extract(allLines, body []string, defaultTaxPct *decimal.Decimal) Result {
	if items := ColumnAlignedTable(body, defaultTaxPct); len(items) > 0 {
		return Result{Items: items}
	}
	if items := MultiLineItems(body, defaultTaxPct); len(items) > 0 {
		return Result{Items: items}
	}
	if items := VerticalForm(allLines); len(items) > 0 {
		return Result{Items: items}
	}
	if items := PerLineHeuristic(body, defaultTaxPct); len(items) > 0 {
		return Result{Items: items}
	}
	items := WholeDocumentFallback(allLines, defaultTaxPct)
	var warnings []string
	if len(items) > 0 {
		warnings = append(warnings, "line items salvaged via whole-document fallback; no header row was found")
	}
	return Result{Items: items, Warnings: warnings}
}
