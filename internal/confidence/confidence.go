// Package confidence implements the C7 five-factor composite confidence
// score: OCR quality, field population, numeric consistency,
// document-type agreement and keyword match. The engine never fails; it
// treats missing inputs as the neutral value for the affected sub-score.
package confidence

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/model"
	"github.com/docextract/docextract/internal/primitives"
)

const (
	weightOCR      = 0.15
	weightFields   = 0.35
	weightNumeric  = 0.20
	weightDocType  = 0.15
	weightKeyword  = 0.15
)

// Score is the five sub-scores plus the weighted overall, each in [0,1]
// and rounded to 4 decimals.
type Score struct {
	Overall float64
	OCR     float64
	Fields  float64
	Numeric float64
	DocType float64
	Keyword float64
}

// Compute scores record against rawText, the OCR provider's own
// confidence estimate (ocrConfidence, in [0,1]; 0 if unknown), and the
// caller-claimed document type (may differ from record.Metadata.DocumentType
// when the assembler's own classification was used instead of the hint).
func Compute(record model.Record, rawText string, ocrConfidence float64, claimedType model.DocumentType) Score {
	ocr := ocrScore(rawText, ocrConfidence)
	fields := fieldsScore(record)
	numeric := numericScore(record)
	docType := docTypeScore(string(claimedType), string(record.Metadata.DocumentType))
	keyword := keywordScore(rawText, string(record.Metadata.DocumentType))

	overall := weightOCR*ocr + weightFields*fields + weightNumeric*numeric +
		weightDocType*docType + weightKeyword*keyword

	return Score{
		Overall: round4(overall),
		OCR:     round4(ocr),
		Fields:  round4(fields),
		Numeric: round4(numeric),
		DocType: round4(docType),
		Keyword: round4(keyword),
	}
}

func ocrScore(rawText string, providerConf float64) float64 {
	wordCount := len(strings.Fields(rawText))
	lengthTerm := float64(wordCount) / 50.0
	if lengthTerm > 1 {
		lengthTerm = 1
	}
	return 0.6*providerConf + 0.4*lengthTerm
}

func fieldsScore(r model.Record) float64 {
	type weighted struct {
		present bool
		weight  float64
	}
	checks := []weighted{
		{r.Supplier.Name != "", 1},
		{r.Transaction.InvoiceNumber != nil, 1},
		{r.Transaction.InvoiceDate != nil, 1},
		{r.Transaction.Currency != "", 1},
		{r.Totals.GrandTotal.IsPositive(), 1},
		{len(r.Parts) > 0, 1},
		{r.Supplier.Contact.Email != nil, 0.5},
		{r.Supplier.Contact.Phone != nil, 0.5},
		{r.Buyer.Name != nil, 0.5},
	}

	var got, total float64
	for _, c := range checks {
		total += c.weight
		if c.present {
			got += c.weight
		}
	}
	if total == 0 {
		return 0
	}
	return got / total
}

func numericScore(r model.Record) float64 {
	if len(r.Parts) == 0 && r.Totals.GrandTotal.IsZero() && r.Totals.Subtotal == nil {
		return 0.5
	}

	partSum := decimal.Zero
	for _, p := range r.Parts {
		partSum = partSum.Add(p.TotalAmount)
	}
	subtotal := partSum
	if r.Totals.Subtotal != nil {
		subtotal = *r.Totals.Subtotal
	}

	reconstructed := subtotal
	reconstructed = addIfSet(reconstructed, r.Totals.TotalTax)
	reconstructed = addIfSet(reconstructed, r.Totals.ShippingCost)
	reconstructed = addIfSet(reconstructed, r.Totals.Tip)
	reconstructed = addIfSet(reconstructed, r.Totals.ServiceCharge)
	reconstructed = subIfSet(reconstructed, r.Totals.Discount)

	if r.Totals.GrandTotal.IsZero() {
		return 0.5
	}

	diff := reconstructed.Sub(r.Totals.GrandTotal).Abs()
	delta, _ := diff.Div(r.Totals.GrandTotal).Float64()

	switch {
	case delta < 0.01:
		return 1.0
	case delta < 0.05:
		return 0.8
	case delta < 0.15:
		return 0.6
	default:
		return 0.3
	}
}

func docTypeScore(claimed, detected string) float64 {
	if claimed == "" {
		return 0.7
	}
	if claimed == detected {
		return 1.0
	}
	if strings.Contains(detected, claimed) || strings.Contains(claimed, detected) {
		return 0.7
	}
	return 0.3
}

func keywordScore(rawText, docType string) float64 {
	keywords := primitives.KeywordsFor(docType)
	if len(keywords) == 0 {
		return 0.5
	}
	lower := strings.ToLower(rawText)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

func addIfSet(base decimal.Decimal, v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return base
	}
	return base.Add(*v)
}

func subIfSet(base decimal.Decimal, v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return base
	}
	return base.Sub(*v)
}

func round4(f float64) float64 {
	const scale = 10000.0
	v := f*scale + 0.5
	if f < 0 {
		v = f*scale - 0.5
	}
	return float64(int64(v)) / scale
}
