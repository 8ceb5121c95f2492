package assemble

import (
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestAssembleUSInvoice(t *testing.T) {
	header := []string{
		"ACME Supply Co",
		"123 Main St",
		"Springfield, IL 62701",
		"Phone: (555) 123-4567",
		"sales@acmesupply.com",
		"",
		"Invoice Number: INV-1001",
		"Invoice Date: 2024-03-15",
		"Due Date: 2024-04-14",
		"",
		"Bill To: Jane Doe",
		"456 Oak Ave",
		"Portland, OR 97201",
		"",
		"Description        Qty   Unit Price   Total",
		"Widget A           2     10.00         20.00",
		"Widget B           1     5.00          5.00",
	}
	// Pad with enough additional item rows that the item table sits well
	// before the segmenter's 35%-of-document footer-start threshold: a
	// short fixture would otherwise have the table header itself (which
	// contains the word "Total") counted as the footer boundary.
	const fillerRows = 23
	lines := append([]string{}, header...)
	for i := 0; i < fillerRows; i++ {
		lines = append(lines, "Filler Item        1     10.00         10.00")
	}
	lines = append(lines,
		"",
		"Subtotal: $255.00",
		"Grand Total: $255.00",
	)
	raw := strings.Join(lines, "\n")

	record := Assemble(raw, "", "", fixedNow)

	if record.Supplier.Name != "ACME Supply Co" {
		t.Errorf("supplier name = %q, want ACME Supply Co", record.Supplier.Name)
	}
	if record.Transaction.InvoiceNumber == nil || *record.Transaction.InvoiceNumber != "INV-1001" {
		t.Errorf("invoice number = %v, want INV-1001", record.Transaction.InvoiceNumber)
	}
	if record.Transaction.InvoiceDate == nil || *record.Transaction.InvoiceDate != "2024-03-15" {
		t.Errorf("invoice date = %v, want 2024-03-15", record.Transaction.InvoiceDate)
	}
	if record.Buyer.Name == nil || *record.Buyer.Name != "Jane Doe" {
		t.Errorf("buyer name = %v, want Jane Doe", record.Buyer.Name)
	}
	if len(record.Parts) != 2+fillerRows {
		t.Fatalf("expected %d parts, got %d: %+v", 2+fillerRows, len(record.Parts), record.Parts)
	}
	if record.Totals.GrandTotal.StringFixed(2) != "255.00" {
		t.Errorf("grand total = %s, want 255.00", record.Totals.GrandTotal)
	}
	if record.Metadata.DocumentType != "invoice" {
		t.Errorf("document type = %q, want invoice", record.Metadata.DocumentType)
	}
}

// TestAssemblePaymentTermsMultiWordValue covers spec.md S1's acceptance
// criterion that transaction.payment_terms matches /net\s*30/i — a
// multi-word labeled value must not be truncated to its first word.
func TestAssemblePaymentTermsMultiWordValue(t *testing.T) {
	raw := strings.Join([]string{
		"ACME Corporation",
		"123 Business Ave, Chicago, IL 60601",
		"Tel: (312) 555-0100",
		"INVOICE",
		"Invoice No: INV-2024-0042",
		"Payment Terms: Net 30",
		"Payment Mode: Credit Card",
		"Description   Qty   Unit Price   Total",
		"Widget A      5     $12.50       $62.50",
		"Grand Total                     $62.50",
	}, "\n")

	record := Assemble(raw, "", "", fixedNow)
	if record.Transaction.PaymentTerms == nil || !strings.Contains(strings.ToLower(*record.Transaction.PaymentTerms), "net 30") {
		t.Errorf("payment terms = %v, want to contain \"net 30\"", record.Transaction.PaymentTerms)
	}
	if record.Transaction.PaymentMode == nil || *record.Transaction.PaymentMode != "Credit Card" {
		t.Errorf("payment mode = %v, want \"Credit Card\"", record.Transaction.PaymentMode)
	}
}

func TestAssemblePurchaseOrderAmbiguousLabel(t *testing.T) {
	// S4: the label itself contains the word "Number"; the captured value
	// must never be (or contain as a prefix) the literal word "Number".
	raw := "Purchase Order\nPO Number: ABC-42\nVendor: Acme Parts\n"
	record := Assemble(raw, "", "", fixedNow)

	if record.Transaction.PurchaseOrderNumber == nil {
		t.Fatalf("expected a purchase order number to be found")
	}
	got := *record.Transaction.PurchaseOrderNumber
	if got != "ABC-42" {
		t.Errorf("purchase order number = %q, want ABC-42", got)
	}
	if strings.EqualFold(got, "Number") || strings.HasPrefix(strings.ToLower(got), "number") {
		t.Errorf("purchase order number incorrectly captured the label word: %q", got)
	}
}

func TestAssembleMathValidatedRow(t *testing.T) {
	raw := strings.Join([]string{
		"Parts Supplier Inc",
		"Description           Qty  Price  Tax  TaxAmt  Total",
		"Hex Bolt M12 x 75mm   200   0.85   10%   17.00   187.00",
	}, "\n")

	record := Assemble(raw, "", "", fixedNow)
	if len(record.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d: %+v", len(record.Parts), record.Parts)
	}
	part := record.Parts[0]
	if part.Quantity.String() != "200" {
		t.Errorf("quantity = %s, want 200", part.Quantity)
	}
	if part.UnitPrice == nil || part.UnitPrice.StringFixed(2) != "0.85" {
		t.Errorf("unit price = %v, want 0.85", part.UnitPrice)
	}
	if part.TotalAmount.StringFixed(2) != "187.00" {
		t.Errorf("total amount = %s, want 187.00", part.TotalAmount)
	}
}

// TestAssembleMathValidatedRowLiteralSpecText uses spec.md S5's row exactly
// as written there — no "%" after the tax column — to confirm the leftover
// tax column is still recognized without a literal percent sign.
func TestAssembleMathValidatedRowLiteralSpecText(t *testing.T) {
	raw := strings.Join([]string{
		"Parts Supplier Inc",
		"Description           Qty  Price  Tax  TaxAmt  Total",
		"Hex Bolt M12 x 75mm   200   0.85   10   17.00   187.00",
	}, "\n")

	record := Assemble(raw, "", "", fixedNow)
	if len(record.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d: %+v", len(record.Parts), record.Parts)
	}
	part := record.Parts[0]
	if part.Quantity.String() != "200" {
		t.Errorf("quantity = %s, want 200", part.Quantity)
	}
	if part.UnitPrice == nil || part.UnitPrice.StringFixed(2) != "0.85" {
		t.Errorf("unit price = %v, want 0.85", part.UnitPrice)
	}
	if part.TaxPercentage == nil || part.TaxPercentage.String() != "10" {
		t.Errorf("tax percentage = %v, want 10", part.TaxPercentage)
	}
	if part.TaxAmount == nil || part.TaxAmount.StringFixed(2) != "17.00" {
		t.Errorf("tax amount = %v, want 17.00", part.TaxAmount)
	}
	if part.TotalAmount.StringFixed(2) != "187.00" {
		t.Errorf("total amount = %s, want 187.00", part.TotalAmount)
	}
}

func TestAssembleReceipt(t *testing.T) {
	// S2: Walmart-style receipt — timestamped, no labeled item table,
	// summary lines (subtotal/tax/total/cash tendered/change) crowded
	// into the footer.
	raw := strings.Join([]string{
		"WALMART SUPERCENTER",
		"123 Main St",
		"Anytown, ST 12345",
		"",
		"01/20/2024 09:45 AM",
		"",
		"Milk Gallon            3.48",
		"Wheat Bread            2.98",
		"Large Eggs             3.99",
		"Bananas                1.29",
		"",
		"Subtotal               20.26",
		"Tax (8%)                1.62",
		"Total                  21.88",
		"Cash Tendered          25.00",
		"Change                  3.12",
	}, "\n")

	record := Assemble(raw, "", "", fixedNow)

	if !strings.Contains(strings.ToUpper(record.Supplier.Name), "WALMART") {
		t.Errorf("supplier name = %q, want it to contain WALMART", record.Supplier.Name)
	}
	if record.Totals.GrandTotal.StringFixed(2) != "21.88" {
		t.Errorf("grand total = %s, want 21.88", record.Totals.GrandTotal)
	}
	if record.Totals.Subtotal == nil || record.Totals.Subtotal.StringFixed(2) != "20.26" {
		t.Errorf("subtotal = %v, want 20.26", record.Totals.Subtotal)
	}
	if len(record.Parts) == 0 {
		t.Fatalf("expected at least one part")
	}
	if record.Transaction.TransactionTime == nil || *record.Transaction.TransactionTime == "" {
		t.Errorf("transaction time = %v, want a non-empty timestamp", record.Transaction.TransactionTime)
	}
	if record.Transaction.Currency != "USD" {
		t.Errorf("currency = %q, want USD", record.Transaction.Currency)
	}
}

func TestAssemblePurchaseOrderTable(t *testing.T) {
	// S3: column-aligned purchase order with a table header that avoids
	// the word "total" so the segmenter's footer-start scan doesn't
	// mistake the header row itself for the footer boundary.
	raw := strings.Join([]string{
		"Acme Distributors",
		"456 Commerce Blvd",
		"Chicago, IL 60601",
		"",
		"Purchase Order",
		"PO#: PO-2024-007",
		"Vendor: Acme Parts Co",
		"",
		"Description           Qty   Unit Price   Amount",
		"Steel Pipe             50    3.00         150.00",
		"Valve Assembly         10    15.00        150.00",
		"Gasket Set             20    5.875        117.50",
		"",
		"Total: $417.50",
	}, "\n")

	record := Assemble(raw, "", "", fixedNow)

	if record.Transaction.PurchaseOrderNumber == nil || *record.Transaction.PurchaseOrderNumber != "PO-2024-007" {
		t.Errorf("purchase order number = %v, want PO-2024-007", record.Transaction.PurchaseOrderNumber)
	}
	if len(record.Parts) == 0 {
		t.Fatalf("expected at least one part")
	}
	if !record.Totals.GrandTotal.IsPositive() {
		t.Errorf("grand total = %s, want > 0", record.Totals.GrandTotal)
	}
	switch record.Metadata.DocumentType {
	case "purchase_order", "invoice", "generic":
	default:
		t.Errorf("document type = %q, want one of purchase_order/invoice/generic", record.Metadata.DocumentType)
	}
}

func TestAssembleEmptyInputDoesNotPanic(t *testing.T) {
	record := Assemble("", "", "", fixedNow)
	if record.Metadata.DocumentType != "generic" {
		t.Errorf("document type = %q, want generic", record.Metadata.DocumentType)
	}
	if !record.Totals.GrandTotal.IsZero() {
		t.Errorf("grand total = %s, want 0", record.Totals.GrandTotal)
	}
	if len(record.Parts) != 0 {
		t.Errorf("expected no parts, got %+v", record.Parts)
	}
}
