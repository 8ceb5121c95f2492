package primitives

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLineItemMathValidatedRow(t *testing.T) {
	line := "Hex Bolt M12 x 75mm   200   0.85   10%   17.00   187.00"
	item, ok := ParseLineItem(line, nil)
	if !ok {
		t.Fatalf("expected line item to parse, got none")
	}
	if !item.Quantity.Equal(mustDecimal(t, "200")) {
		t.Errorf("quantity = %s, want 200", item.Quantity)
	}
	if item.UnitPrice == nil || !item.UnitPrice.Equal(mustDecimal(t, "0.85")) {
		t.Errorf("unit_price = %v, want 0.85", item.UnitPrice)
	}
	if item.TaxPercentage == nil || !item.TaxPercentage.Equal(mustDecimal(t, "10")) {
		t.Errorf("tax_percentage = %v, want 10", item.TaxPercentage)
	}
	if !item.TotalAmount.Equal(mustDecimal(t, "187.00")) {
		t.Errorf("total_amount = %s, want 187.00", item.TotalAmount)
	}
}

func TestParseLineItemRejectsSummaryLines(t *testing.T) {
	for _, line := range []string{
		"Subtotal                         $96.65",
		"Grand Total                     $104.38",
		"Tax (8%)                         $7.73",
	} {
		if _, ok := ParseLineItem(line, nil); ok {
			t.Errorf("expected summary line %q to be rejected", line)
		}
	}
}

func TestParseLineItemRejectsEmptyAndHeaderOnly(t *testing.T) {
	if _, ok := ParseLineItem("", nil); ok {
		t.Errorf("expected empty line to be rejected")
	}
	if _, ok := ParseLineItem("Description   Qty   Unit Price   Total", nil); ok {
		t.Errorf("expected bare header row to be rejected")
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, ok := ParseAmount(s)
	if !ok {
		t.Fatalf("could not parse decimal literal %q", s)
	}
	return d
}
