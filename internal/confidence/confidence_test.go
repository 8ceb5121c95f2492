package confidence

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fullRecord() model.Record {
	email := "sales@acme.com"
	phone := "(555) 123-4567"
	invoiceNumber := "INV-1001"
	invoiceDate := "2024-03-15"
	buyerName := "Jane Doe"
	subtotal := dec("100.00")
	tax := dec("10.00")

	return model.Record{
		Supplier: model.Supplier{
			Name:    "ACME Supply Co",
			Contact: model.Contact{Email: &email, Phone: &phone},
		},
		Buyer: model.Buyer{Name: &buyerName},
		Transaction: model.Transaction{
			InvoiceNumber: &invoiceNumber,
			InvoiceDate:   &invoiceDate,
			Currency:      "USD",
		},
		Parts: []model.Part{
			{ItemName: "Widget A", Quantity: dec("1"), TotalAmount: dec("100.00")},
		},
		Totals: model.Totals{
			GrandTotal: dec("110.00"),
			Subtotal:   &subtotal,
			TotalTax:   &tax,
		},
		Metadata: model.Metadata{DocumentType: model.DocTypeInvoice},
	}
}

// Every sub-score and the overall score must land in [0,1] regardless of
// how sparse or rich the record is (Testable Property 7).
func TestComputeScoresAlwaysInUnitInterval(t *testing.T) {
	cases := []struct {
		name        string
		record      model.Record
		rawText     string
		ocrConf     float64
		claimedType model.DocumentType
	}{
		{"full record", fullRecord(), "Invoice ACME Supply Co Bill To Jane Doe Invoice Number INV-1001", 0.9, model.DocTypeInvoice},
		{"empty record", model.Record{}, "", 0, ""},
		{"empty record with long raw text", model.Record{}, strings.Repeat("word ", 200), 1.0, model.DocTypeReceipt},
		{"mismatched claimed type", fullRecord(), "Invoice text", 0.5, model.DocTypeReceipt},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			score := Compute(c.record, c.rawText, c.ocrConf, c.claimedType)
			for _, sub := range []struct {
				name string
				v    float64
			}{
				{"Overall", score.Overall},
				{"OCR", score.OCR},
				{"Fields", score.Fields},
				{"Numeric", score.Numeric},
				{"DocType", score.DocType},
				{"Keyword", score.Keyword},
			} {
				if sub.v < 0 || sub.v > 1 {
					t.Errorf("%s = %v, want in [0,1]", sub.name, sub.v)
				}
			}
		})
	}
}

// A record with every field populated and a consistent totals equation
// should score very high across the board.
func TestComputeFullyPopulatedRecordScoresHigh(t *testing.T) {
	rawText := "Invoice ACME Supply Co Bill To Jane Doe Invoice Number INV-1001 Invoice Date 2024-03-15"
	score := Compute(fullRecord(), rawText, 0.95, model.DocTypeInvoice)

	if score.Fields < 0.9 {
		t.Errorf("fields score = %v, want >= 0.9 for a fully populated record", score.Fields)
	}
	if score.Numeric != 1.0 {
		t.Errorf("numeric score = %v, want 1.0 for subtotal+tax == grand_total", score.Numeric)
	}
	if score.DocType != 1.0 {
		t.Errorf("doctype score = %v, want 1.0 when claimed matches detected", score.DocType)
	}
}

// numericScore falls back to the neutral 0.5 when there is nothing to
// reconcile: no parts, zero grand total, no subtotal.
func TestNumericScoreNeutralWhenNothingToReconcile(t *testing.T) {
	record := model.Record{}
	score := Compute(record, "", 0, "")
	if score.Numeric != 0.5 {
		t.Errorf("numeric score = %v, want 0.5 neutral fallback", score.Numeric)
	}
}

// numericScore also falls back to 0.5 when parts exist but grand_total is
// still zero (nothing to compare the reconstructed subtotal against).
func TestNumericScoreNeutralWhenGrandTotalZero(t *testing.T) {
	record := model.Record{
		Parts: []model.Part{
			{ItemName: "Widget", Quantity: dec("1"), TotalAmount: dec("10.00")},
		},
	}
	score := Compute(record, "", 0, "")
	if score.Numeric != 0.5 {
		t.Errorf("numeric score = %v, want 0.5 when grand_total is zero", score.Numeric)
	}
}

// A grand total that is wildly inconsistent with the reconstructed
// subtotal should score at the bottom numeric bucket (0.3).
func TestNumericScoreLowForGrossMismatch(t *testing.T) {
	subtotal := dec("10.00")
	record := model.Record{
		Parts: []model.Part{
			{ItemName: "Widget", Quantity: dec("1"), TotalAmount: dec("10.00")},
		},
		Totals: model.Totals{
			GrandTotal: dec("1000.00"),
			Subtotal:   &subtotal,
		},
	}
	score := Compute(record, "", 0, "")
	if score.Numeric != 0.3 {
		t.Errorf("numeric score = %v, want 0.3 for a grossly mismatched total", score.Numeric)
	}
}

// docTypeScore: an empty claimed type (no external hint) gets the 0.7
// "unknown but not contradicted" value, never the 1.0 "confirmed" value.
func TestDocTypeScoreNoClaimIsNotFullConfidence(t *testing.T) {
	score := Compute(fullRecord(), "", 0, "")
	if score.DocType != 0.7 {
		t.Errorf("doctype score = %v, want 0.7 when no claimed type is supplied", score.DocType)
	}
}

// A claimed type that flatly contradicts the detected type scores lowest.
func TestDocTypeScoreContradictionScoresLow(t *testing.T) {
	score := Compute(fullRecord(), "", 0, model.DocTypeWorkOrder)
	if score.DocType != 0.3 {
		t.Errorf("doctype score = %v, want 0.3 for a contradicting claim", score.DocType)
	}
}

// keywordScore falls back to the neutral 0.5 for a document type with no
// curated keyword list (generic).
func TestKeywordScoreNeutralForGenericDocType(t *testing.T) {
	record := model.Record{Metadata: model.Metadata{DocumentType: model.DocTypeGeneric}}
	score := Compute(record, "whatever text", 0, "")
	if score.Keyword != 0.5 {
		t.Errorf("keyword score = %v, want 0.5 neutral fallback for generic doc type", score.Keyword)
	}
}

// keywordScore should reward raw text that actually contains the curated
// keywords for the detected type.
func TestKeywordScoreRewardsMatchingKeywords(t *testing.T) {
	record := model.Record{Metadata: model.Metadata{DocumentType: model.DocTypeReceipt}}
	rawText := "Thank you for shopping with us. Cashier: Dana. Change due: $1.50."
	score := Compute(record, rawText, 0, "")
	if score.Keyword <= 0.5 {
		t.Errorf("keyword score = %v, want > 0.5 when several receipt keywords are present", score.Keyword)
	}
}

// The overall score is the documented weighted sum of the five unrounded
// sub-scores, rounded once at the end (weights: OCR 0.15, Fields 0.35,
// Numeric 0.20, DocType 0.15, Keyword 0.15).
func TestComputeOverallIsWeightedSum(t *testing.T) {
	score := Compute(fullRecord(), "Invoice INV-1001", 0.8, model.DocTypeInvoice)
	want := round4(0.15*score.OCR + 0.35*score.Fields + 0.20*score.Numeric + 0.15*score.DocType + 0.15*score.Keyword)
	// Allow a one-tick rounding slack: Overall is computed from the
	// unrounded sub-scores, while want is recomputed from the already
	// 4-decimal-rounded sub-scores.
	diff := score.Overall - want
	if diff < -0.0002 || diff > 0.0002 {
		t.Errorf("overall = %v, want approximately %v (weighted sum of sub-scores)", score.Overall, want)
	}
}
