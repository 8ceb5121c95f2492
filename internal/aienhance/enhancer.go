// Package aienhance implements the optional AI-enhancement collaborator
// described in spec.md §6: when a Record's confidence score falls below the
// caller's threshold, an Enhancer may be asked to fill in fields the core
// pipeline left empty. Its contract is fixed regardless of provider:
//
//   - it MAY populate fields that are currently empty or nil
//   - it MUST NOT overwrite a field that already has a value
//   - it MUST return a Record of the same shape
//   - a provider failure is non-fatal: the caller's original Record comes
//     back unchanged, plus a warning describing what went wrong
//
// This package is not imported by the core packages (the root docextract
// package and what it imports): the core never calls out to a network, per spec.md's concurrency and
// resource model. aienhance is wiring for the demo service in cmd/server.
package aienhance

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/model"
)

// Enhancer fills gaps in an already-assembled Record using an external AI
// provider. Implementations must honor the fill-gaps-only, non-fatal
// contract described in the package doc.
type Enhancer interface {
	// Enhance attempts to fill empty fields in record using rawText as
	// context. It always returns a valid Record: on provider failure that
	// is the original record, accompanied by a warning.
	Enhance(ctx context.Context, record model.Record, rawText string) (model.Record, []string)
}

// patch is the subset of Record fields a provider is allowed to propose
// values for. Every field is optional; zero values mean "no suggestion".
type patch struct {
	SupplierEmail   string `json:"supplier_email"`
	SupplierPhone   string `json:"supplier_phone"`
	SupplierWebsite string `json:"supplier_website"`
	SupplierTaxID   string `json:"supplier_tax_id"`

	BuyerName string `json:"buyer_name"`

	InvoiceNumber       string `json:"invoice_number"`
	PurchaseOrderNumber string `json:"purchase_order_number"`
	InvoiceDate         string `json:"invoice_date"`
	DueDate             string `json:"due_date"`
	PaymentTerms        string `json:"payment_terms"`

	Subtotal   string `json:"subtotal"`
	TotalTax   string `json:"total_tax"`
	AmountPaid string `json:"amount_paid"`
	BalanceDue string `json:"balance_due"`
}

// applyPatch merges p into record, field by field, skipping any field that
// is already populated. It never removes or replaces an existing value.
func applyPatch(record model.Record, p patch) model.Record {
	if record.Supplier.Contact.Email == nil {
		record.Supplier.Contact.Email = model.Str(p.SupplierEmail)
	}
	if record.Supplier.Contact.Phone == nil {
		record.Supplier.Contact.Phone = model.Str(p.SupplierPhone)
	}
	if record.Supplier.Contact.Website == nil {
		record.Supplier.Contact.Website = model.Str(p.SupplierWebsite)
	}
	if record.Supplier.TaxInformation == nil && p.SupplierTaxID != "" {
		record.Supplier.TaxInformation = &model.TaxInformation{TaxID: model.Str(p.SupplierTaxID)}
	}

	if record.Buyer.Name == nil {
		record.Buyer.Name = model.Str(p.BuyerName)
	}

	if record.Transaction.InvoiceNumber == nil {
		record.Transaction.InvoiceNumber = model.Str(p.InvoiceNumber)
	}
	if record.Transaction.PurchaseOrderNumber == nil {
		record.Transaction.PurchaseOrderNumber = model.Str(p.PurchaseOrderNumber)
	}
	if record.Transaction.InvoiceDate == nil {
		record.Transaction.InvoiceDate = model.Str(p.InvoiceDate)
	}
	if record.Transaction.DueDate == nil {
		record.Transaction.DueDate = model.Str(p.DueDate)
	}
	if record.Transaction.PaymentTerms == nil {
		record.Transaction.PaymentTerms = model.Str(p.PaymentTerms)
	}

	if record.Totals.Subtotal == nil {
		if d, ok := parseDecimal(p.Subtotal); ok {
			record.Totals.Subtotal = model.Dec(d)
		}
	}
	if record.Totals.TotalTax == nil {
		if d, ok := parseDecimal(p.TotalTax); ok {
			record.Totals.TotalTax = model.Dec(d)
		}
	}
	if record.Totals.AmountPaid == nil {
		if d, ok := parseDecimal(p.AmountPaid); ok {
			record.Totals.AmountPaid = model.Dec(d)
		}
	}
	if record.Totals.BalanceDue == nil {
		if d, ok := parseDecimal(p.BalanceDue); ok {
			record.Totals.BalanceDue = model.Dec(d)
		}
	}

	return record
}

// parseDecimal parses a provider-supplied numeric string. An empty or
// malformed value yields ok=false so the caller leaves the field unset
// rather than writing a zero.
func parseDecimal(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// gapsPrompt describes, in prose, exactly which fields record is missing so
// the provider only ever proposes values for those fields. Keeping the
// prompt scoped to real gaps keeps the provider from inventing values for
// fields the core already populated with confidence.
func gapsPrompt(record model.Record, rawText string) string {
	var missing []string
	addIfNil := func(label string, isNil bool) {
		if isNil {
			missing = append(missing, label)
		}
	}

	addIfNil("supplier_email", record.Supplier.Contact.Email == nil)
	addIfNil("supplier_phone", record.Supplier.Contact.Phone == nil)
	addIfNil("supplier_website", record.Supplier.Contact.Website == nil)
	addIfNil("supplier_tax_id", record.Supplier.TaxInformation == nil)
	addIfNil("buyer_name", record.Buyer.Name == nil)
	addIfNil("invoice_number", record.Transaction.InvoiceNumber == nil)
	addIfNil("purchase_order_number", record.Transaction.PurchaseOrderNumber == nil)
	addIfNil("invoice_date", record.Transaction.InvoiceDate == nil)
	addIfNil("due_date", record.Transaction.DueDate == nil)
	addIfNil("payment_terms", record.Transaction.PaymentTerms == nil)
	addIfNil("subtotal", record.Totals.Subtotal == nil)
	addIfNil("total_tax", record.Totals.TotalTax == nil)
	addIfNil("amount_paid", record.Totals.AmountPaid == nil)
	addIfNil("balance_due", record.Totals.BalanceDue == nil)

	prompt := "You are given the raw OCR text of a business document and a list of " +
		"fields an automated extractor could not confidently fill in. Find each " +
		"field's value in the text if it is genuinely present. Respond with a " +
		"single JSON object whose keys are exactly the field names listed below " +
		"(omit any you cannot find, or set to an empty string). Do not guess or " +
		"fabricate a value; an absent field is better than a wrong one.\n\n" +
		"Fields to fill: " + joinComma(missing) + "\n\n" +
		"Document text:\n" + rawText

	return prompt
}

func joinComma(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}
