// Package assemble orchestrates the normalizer, segmenter, primitive
// extractors and line-item extractors into a single canonical Record —
// the C6 assembler.
package assemble

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/lineitems"
	"github.com/docextract/docextract/internal/lines"
	"github.com/docextract/docextract/internal/model"
	"github.com/docextract/docextract/internal/normalize"
	"github.com/docextract/docextract/internal/patterns"
	"github.com/docextract/docextract/internal/primitives"
	"github.com/docextract/docextract/internal/segment"
)

// Assemble runs normalize -> segment -> classify -> build_supplier ->
// extract_buyer -> extract_transaction -> extract_parts -> extract_totals
// and returns the resulting Record. docTypeHint and languageHint, when
// non-empty, override the detected document type/language (spec.md §6).
func Assemble(rawText string, docTypeHint, languageHint string, now time.Time) model.Record {
	var warnings []string

	normalized := normalize.Normalize(rawText)
	allLines := lines.NonEmpty(normalized)

	segs := segment.Split(allLines)

	docType := primitives.ClassifyDocumentType(normalized)
	if docTypeHint != "" {
		docType = docTypeHint
	}

	language := primitives.DetectLanguage(normalized)
	if languageHint != "" {
		language = languageHint
	}

	currency := primitives.DetectCurrency(normalized)

	nameHint := ""
	if len(segs.Header) > 0 {
		nameHint = strings.TrimSpace(segs.Header[0])
	} else if len(allLines) > 0 {
		nameHint = strings.TrimSpace(allLines[0])
	}
	headerBlock := lines.Join(segs.Header)
	supplierFields := primitives.BuildSupplier(nameHint, headerBlock, normalized)

	buyerFields := primitives.BuildBuyer(allLines)

	invoiceDate, dueDate, transactionDate := primitives.ExtractDates(allLines)

	invoiceNumber, invFallback, invFound := labeledToken(allLines, invoiceNumberLabel)
	poNumber, poFallback, poFound := labeledToken(allLines, poNumberLabel)
	quoteNumber, _, quoteFound := labeledToken(allLines, quoteNumberLabel)
	paymentMode, _, paymentModeFound := labeledValue(allLines, paymentModeLabel)
	paymentTerms, _, paymentTermsFound := extractPaymentTerms(allLines)
	transactionTime, _ := ExtractTransactionTime(allLines)

	if invFound && invFallback {
		warnings = append(warnings, "invoice number resolved via multi-line label fallback")
	}
	if poFound && poFallback {
		warnings = append(warnings, "purchase order number resolved via multi-line label fallback")
	}

	defaultTaxPct := footerDefaultTaxPercent(segs.Footer)

	lineResult := lineitems.Extract(allLines, segs.Body, defaultTaxPct)
	warnings = append(warnings, lineResult.Warnings...)
	for _, item := range lineResult.Items {
		if item.PositionalFallback {
			warnings = append(warnings, "line-item quantity/unit price assigned via positional fallback")
			break
		}
	}

	totals := ExtractTotals(segs.Footer, allLines, lineResult.Items)

	record := model.Record{
		Supplier: buildSupplierModel(supplierFields),
		Buyer:    buildBuyerModel(buyerFields),
		Transaction: model.Transaction{
			InvoiceNumber:       model.Str(invoiceNumber),
			PurchaseOrderNumber: model.Str(poNumber),
			QuoteNumber:         model.Str(optionalToken(quoteNumber, quoteFound)),
			InvoiceDate:         invoiceDate,
			DueDate:             dueDate,
			TransactionDate:     transactionDate,
			TransactionTime:     model.Str(transactionTime),
			PaymentMode:         model.Str(optionalToken(paymentMode, paymentModeFound)),
			PaymentTerms:        model.Str(optionalToken(paymentTerms, paymentTermsFound)),
			Currency:            currency,
		},
		Parts:  buildPartsModel(lineResult.Items),
		Totals: buildTotalsModel(totals),
		Metadata: model.Metadata{
			DocumentType:        model.DocumentType(docType),
			ExtractionTimestamp: now,
			LanguageDetected:    language,
			Warnings:            warnings,
		},
		RawText: model.Str(rawText),
	}

	return record
}

func optionalToken(v string, found bool) string {
	if !found {
		return ""
	}
	return v
}

func extractPaymentTerms(allLines []string) (string, bool, bool) {
	return labeledValue(allLines, paymentTermsLabel)
}

// footerDefaultTaxPercent scans the footer for a standalone tax
// percentage (e.g. "Tax (8%)") to use as the default when an individual
// line item carries none of its own.
func footerDefaultTaxPercent(footer []string) *decimal.Decimal {
	for _, line := range footer {
		if m := patterns.TaxPercent.FindStringSubmatch(line); m != nil {
			if v, err := decimal.NewFromString(m[1]); err == nil {
				return &v
			}
		}
	}
	return nil
}

func buildSupplierModel(f primitives.SupplierFields) model.Supplier {
	s := model.Supplier{
		Name: f.Name,
		Address: model.Address{
			Street:      model.Str(f.Address.Street),
			City:        model.Str(f.Address.City),
			State:       model.Str(f.Address.State),
			PostalCode:  model.Str(f.Address.PostalCode),
			Country:     model.Str(f.Address.Country),
			FullAddress: model.Str(f.Address.FullAddress),
		},
		Contact: model.Contact{
			Phone:   model.Str(f.Phone),
			Email:   model.Str(f.Email),
			Website: model.Str(f.Website),
		},
	}
	if !f.TaxInformation.IsEmpty() {
		s.TaxInformation = &model.TaxInformation{
			TaxID:     model.Str(f.TaxInformation.TaxID),
			GSTNumber: model.Str(f.TaxInformation.GSTNumber),
			VATNumber: model.Str(f.TaxInformation.VATNumber),
			EIN:       model.Str(f.TaxInformation.EIN),
			ABNNumber: model.Str(f.TaxInformation.ABN),
			ACNNumber: model.Str(f.TaxInformation.ACN),
		}
	}
	return s
}

func buildBuyerModel(f primitives.BuyerFields) model.Buyer {
	var b model.Buyer
	if f.Name != "" {
		b.Name = model.Str(f.Name)
	}
	if !f.Address.IsEmpty() {
		b.Address = &model.Address{
			Street:      model.Str(f.Address.Street),
			City:        model.Str(f.Address.City),
			State:       model.Str(f.Address.State),
			PostalCode:  model.Str(f.Address.PostalCode),
			Country:     model.Str(f.Address.Country),
			FullAddress: model.Str(f.Address.FullAddress),
		}
	}
	if f.Phone != "" || f.Email != "" {
		b.Contact = &model.Contact{
			Phone: model.Str(f.Phone),
			Email: model.Str(f.Email),
		}
	}
	return b
}

func buildPartsModel(items []primitives.LineItem) []model.Part {
	parts := make([]model.Part, 0, len(items))
	for _, it := range items {
		p := model.Part{
			ItemName:           it.ItemName,
			Description:        model.Str(it.Description),
			SKU:                model.Str(it.SKU),
			PartNumber:         model.Str(it.PartNumber),
			Quantity:           it.Quantity,
			TotalAmount:        it.TotalAmount,
			UnitPrice:          it.UnitPrice,
			TaxPercentage:      it.TaxPercentage,
			TaxAmount:          it.TaxAmount,
			PositionalFallback: it.PositionalFallback,
		}
		if p.Quantity.IsZero() {
			p.Quantity = decimal.NewFromInt(1)
		}
		parts = append(parts, p)
	}
	return parts
}

func buildTotalsModel(t Totals) model.Totals {
	return model.Totals{
		GrandTotal:    t.GrandTotal,
		Subtotal:      t.Subtotal,
		TotalTax:      t.TotalTax,
		ShippingCost:  t.ShippingCost,
		Discount:      t.Discount,
		Tip:           t.Tip,
		ServiceCharge: t.ServiceCharge,
		AmountPaid:    t.AmountPaid,
		BalanceDue:    t.BalanceDue,
	}
}
