package assemble

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/primitives"
)

var (
	subtotalLabel     = regexp.MustCompile(`(?i)sub\s*total`)
	shippingLabel     = regexp.MustCompile(`(?i)shipping|freight|delivery`)
	discountLabel     = regexp.MustCompile(`(?i)discount`)
	tipLabel          = regexp.MustCompile(`(?i)\btip\b|gratuity`)
	serviceChargeLabel = regexp.MustCompile(`(?i)service\s*charge`)
	amountPaidLabel   = regexp.MustCompile(`(?i)amount\s*paid|cash\s*tendered|paid\b`)
	balanceDueLabel   = regexp.MustCompile(`(?i)balance\s*due`)

	taxLabeled = regexp.MustCompile(`(?i)total\s*\((?:gst|tax|vat)\)|(?:gst|tax|vat)\s*\(\d{1,2}(?:\.\d+)?%\)|(?:gst|tax|vat)\b`)
	posPercentLine = regexp.MustCompile(`(?i)\bPCT\b.*?(\d{1,2}(?:\.\d+)?)\s?%`)

	grandTotalPrimary   = regexp.MustCompile(`(?i)grand\s*total|total\s*amount\s*due|total\s*due`)
	grandTotalSecondary = regexp.MustCompile(`(?i)amount\s*due|balance\s*due`)
	grandTotalPOS       = regexp.MustCompile(`(?i)amount\s*:`)
	grandTotalFooter    = regexp.MustCompile(`(?i)\btotal\b`)
)

// Totals is the output of totals extraction; assemble.go converts it into
// model.Totals.
type Totals struct {
	GrandTotal    decimal.Decimal
	Subtotal      *decimal.Decimal
	TotalTax      *decimal.Decimal
	ShippingCost  *decimal.Decimal
	Discount      *decimal.Decimal
	Tip           *decimal.Decimal
	ServiceCharge *decimal.Decimal
	AmountPaid    *decimal.Decimal
	BalanceDue    *decimal.Decimal
}

// ExtractTotals implements the §4.6 totals-extraction specifics: prefer
// footer text, fall back to full text, with a strict grand-total priority
// chain.
func ExtractTotals(footer, allLines []string, parts []primitives.LineItem) Totals {
	var t Totals

	if v, ok := primitives.ExtractLabeledAmount(footer, subtotalLabel); ok {
		t.Subtotal = &v
	} else if v, ok := primitives.ExtractLabeledAmount(allLines, subtotalLabel); ok {
		t.Subtotal = &v
	} else if len(parts) > 0 {
		sum := decimal.Zero
		for _, p := range parts {
			sum = sum.Add(p.TotalAmount)
		}
		v := sum.Round(4)
		t.Subtotal = &v
	}

	t.TotalTax = extractTax(footer, allLines)

	if v, ok := primitives.ExtractLabeledAmount(footer, shippingLabel); ok {
		t.ShippingCost = &v
	} else if v, ok := primitives.ExtractLabeledAmount(allLines, shippingLabel); ok {
		t.ShippingCost = &v
	}
	if v, ok := primitives.ExtractLabeledAmount(footer, discountLabel); ok {
		t.Discount = &v
	} else if v, ok := primitives.ExtractLabeledAmount(allLines, discountLabel); ok {
		t.Discount = &v
	}
	if v, ok := primitives.ExtractLabeledAmount(footer, tipLabel); ok {
		t.Tip = &v
	} else if v, ok := primitives.ExtractLabeledAmount(allLines, tipLabel); ok {
		t.Tip = &v
	}
	if v, ok := primitives.ExtractLabeledAmount(footer, serviceChargeLabel); ok {
		t.ServiceCharge = &v
	} else if v, ok := primitives.ExtractLabeledAmount(allLines, serviceChargeLabel); ok {
		t.ServiceCharge = &v
	}
	if v, ok := primitives.ExtractLabeledAmount(footer, amountPaidLabel); ok {
		t.AmountPaid = &v
	} else if v, ok := primitives.ExtractLabeledAmount(allLines, amountPaidLabel); ok {
		t.AmountPaid = &v
	}
	if v, ok := primitives.ExtractLabeledAmount(footer, balanceDueLabel); ok {
		t.BalanceDue = &v
	} else if v, ok := primitives.ExtractLabeledAmount(allLines, balanceDueLabel); ok {
		t.BalanceDue = &v
	}

	t.GrandTotal = extractGrandTotal(footer, allLines, t.Subtotal)

	return t
}

// extractTax recognizes a POS-style "PCT ... %" pattern where the next two
// standalone amounts are subtotal and tax (the smaller is tax); otherwise
// falls back to a labeled "total (gst|tax|vat)" match, then any bare
// gst/tax/vat match.
func extractTax(footer, allLines []string) *decimal.Decimal {
	for _, scope := range [][]string{footer, allLines} {
		for i, line := range scope {
			if !posPercentLine.MatchString(line) {
				continue
			}
			var amounts []decimal.Decimal
			for j := i + 1; j < len(scope) && len(amounts) < 2; j++ {
				if v, ok := primitives.ParseAmount(scope[j]); ok {
					amounts = append(amounts, v)
				}
			}
			if len(amounts) == 2 {
				smaller := amounts[0]
				if amounts[1].LessThan(smaller) {
					smaller = amounts[1]
				}
				return &smaller
			}
		}
	}

	if v, ok := primitives.ExtractLabeledAmount(footer, taxLabeled); ok {
		return &v
	}
	if v, ok := primitives.ExtractLabeledAmount(allLines, taxLabeled); ok {
		return &v
	}
	return nil
}

// extractGrandTotal implements the priority chain: grand total | total
// amount due | total due -> amount due | balance due -> POS-style
// "amount :" -> footer-only word-boundary "total" -> subtotal -> 0.
func extractGrandTotal(footer, allLines []string, subtotal *decimal.Decimal) decimal.Decimal {
	if v, ok := primitives.ExtractLabeledAmount(footer, grandTotalPrimary); ok {
		return v.Round(4)
	}
	if v, ok := primitives.ExtractLabeledAmount(allLines, grandTotalPrimary); ok {
		return v.Round(4)
	}
	if v, ok := primitives.ExtractLabeledAmount(footer, grandTotalSecondary); ok {
		return v.Round(4)
	}
	if v, ok := primitives.ExtractLabeledAmount(allLines, grandTotalSecondary); ok {
		return v.Round(4)
	}
	if v, ok := primitives.ExtractLabeledAmount(footer, grandTotalPOS); ok {
		return v.Round(4)
	}
	// Footer-only match on word-boundary "total" — deliberately not
	// widened to the full document, so a line-item row's own "Total"
	// column header/value is never mistaken for the grand total.
	if v, ok := primitives.ExtractLabeledAmount(footer, grandTotalFooter); ok {
		return v.Round(4)
	}
	if subtotal != nil {
		return subtotal.Round(4)
	}
	return decimal.Zero
}
