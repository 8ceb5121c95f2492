// Package model defines the canonical, immutable record produced by the
// extraction pipeline: supplier, buyer, transaction, line items, totals and
// extraction metadata.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType classifies the kind of business document a Record was
// extracted from.
type DocumentType string

const (
	DocTypeInvoice           DocumentType = "invoice"
	DocTypeReceipt           DocumentType = "receipt"
	DocTypePurchaseOrder     DocumentType = "purchase_order"
	DocTypeWorkOrder         DocumentType = "work_order"
	DocTypeBill              DocumentType = "bill"
	DocTypeStatement         DocumentType = "statement"
	DocTypeQuote             DocumentType = "quote"
	DocTypeCMMS              DocumentType = "cmms"
	DocTypeSupplierDocument  DocumentType = "supplier_document"
	DocTypeContract          DocumentType = "contract"
	DocTypeGeneric           DocumentType = "generic"
)

// Address is a postal address. Components are optional; FullAddress is set
// whenever any other component is set.
type Address struct {
	Street      *string `json:"street,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
	Country     *string `json:"country,omitempty"`
	FullAddress *string `json:"full_address,omitempty"`
}

// IsEmpty reports whether every component of the address is absent.
func (a Address) IsEmpty() bool {
	return a.Street == nil && a.City == nil && a.State == nil &&
		a.PostalCode == nil && a.Country == nil && a.FullAddress == nil
}

// Contact holds optional phone/email/website details for a party.
type Contact struct {
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Website *string `json:"website,omitempty"`
}

// TaxInformation holds jurisdiction-specific tax and business identifiers.
// At most one value is populated per jurisdiction.
type TaxInformation struct {
	TaxID      *string `json:"tax_id,omitempty"`
	GSTNumber  *string `json:"gst_number,omitempty"`
	VATNumber  *string `json:"vat_number,omitempty"`
	EIN        *string `json:"ein,omitempty"`
	ABNNumber  *string `json:"abn_number,omitempty"`
	ACNNumber  *string `json:"acn_number,omitempty"`
}

// IsEmpty reports whether no tax identifier was found.
func (t TaxInformation) IsEmpty() bool {
	return t.TaxID == nil && t.GSTNumber == nil && t.VATNumber == nil &&
		t.EIN == nil && t.ABNNumber == nil && t.ACNNumber == nil
}

// Coordinates is an optional geocoded location for a Supplier. The core
// never populates this field itself; it exists so downstream enrichers
// (outside this module's scope) have somewhere to put it.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Supplier is the issuing party of a document.
type Supplier struct {
	Name           string          `json:"name"`
	Address        Address         `json:"address"`
	Contact        Contact         `json:"contact"`
	TaxInformation *TaxInformation `json:"tax_information,omitempty"`
	Coordinates    *Coordinates    `json:"coordinates,omitempty"`
}

// Buyer is the receiving party of a document. Any field may be absent.
type Buyer struct {
	Name    *string  `json:"name,omitempty"`
	Address *Address `json:"address,omitempty"`
	Contact *Contact `json:"contact,omitempty"`
}

// Transaction holds the document's transactional metadata: numbers, dates,
// payment terms. Currency defaults to USD when no symbol/code was found.
type Transaction struct {
	InvoiceNumber       *string `json:"invoice_number,omitempty"`
	PurchaseOrderNumber *string `json:"purchase_order_number,omitempty"`
	QuoteNumber         *string `json:"quote_number,omitempty"`
	InvoiceDate         *string `json:"invoice_date,omitempty"`
	DueDate             *string `json:"due_date,omitempty"`
	TransactionDate     *string `json:"transaction_date,omitempty"`
	TransactionTime     *string `json:"transaction_time,omitempty"`
	PaymentMode         *string `json:"payment_mode,omitempty"`
	PaymentTerms        *string `json:"payment_terms,omitempty"`
	Currency            string  `json:"currency"`
}

// Part is a single line item. ItemName and TotalAmount are required;
// Quantity defaults to 1 when not derivable.
type Part struct {
	ItemName                string           `json:"item_name"`
	Description             *string          `json:"description,omitempty"`
	SKU                     *string          `json:"sku,omitempty"`
	PartNumber              *string          `json:"part_number,omitempty"`
	ManufacturerPartNumber  *string          `json:"manufacturer_part_number,omitempty"`
	Unit                    *string          `json:"unit,omitempty"`
	Quantity                decimal.Decimal  `json:"quantity"`
	UnitPrice               *decimal.Decimal `json:"unit_price,omitempty"`
	TotalAmount             decimal.Decimal  `json:"total_amount"`
	Discount                *decimal.Decimal `json:"discount,omitempty"`
	TaxPercentage           *decimal.Decimal `json:"tax_percentage,omitempty"`
	TaxAmount               *decimal.Decimal `json:"tax_amount,omitempty"`
	// PositionalFallback records that quantity/unit_price were assigned by
	// positional heuristic rather than by a validated qty*price=total pair.
	PositionalFallback bool `json:"-"`
}

// Totals is the document's summary financial block. GrandTotal defaults
// to zero when no value was found.
type Totals struct {
	GrandTotal    decimal.Decimal  `json:"grand_total"`
	Subtotal      *decimal.Decimal `json:"subtotal,omitempty"`
	TotalTax      *decimal.Decimal `json:"total_tax,omitempty"`
	ShippingCost  *decimal.Decimal `json:"shipping_cost,omitempty"`
	Discount      *decimal.Decimal `json:"discount,omitempty"`
	Tip           *decimal.Decimal `json:"tip,omitempty"`
	ServiceCharge *decimal.Decimal `json:"service_charge,omitempty"`
	AmountPaid    *decimal.Decimal `json:"amount_paid,omitempty"`
	BalanceDue    *decimal.Decimal `json:"balance_due,omitempty"`
}

// Metadata carries extraction-process information alongside the record.
type Metadata struct {
	DocumentType        DocumentType `json:"document_type"`
	ConfidenceScore     float64      `json:"confidence_score"`
	ExtractionTimestamp time.Time    `json:"extraction_timestamp"`
	LanguageDetected    string       `json:"language_detected"`
	OCRProvider         *string      `json:"ocr_provider,omitempty"`
	AIProviderUsed      *string      `json:"ai_provider_used,omitempty"`
	ProcessingTimeMs    *int64       `json:"processing_time_ms,omitempty"`
	Warnings            []string     `json:"warnings,omitempty"`
}

// Record is the canonical, immutable extraction result. Once returned by
// the assembler it is never mutated in place by this module.
type Record struct {
	Supplier    Supplier    `json:"supplier"`
	Buyer       Buyer       `json:"buyer"`
	Transaction Transaction `json:"transaction"`
	Parts       []Part      `json:"parts"`
	Totals      Totals      `json:"totals"`
	Metadata    Metadata    `json:"metadata"`
	RawText     *string     `json:"raw_text,omitempty"`
}

// Str returns a pointer to s, or nil if s is empty. Used throughout the
// extraction packages to populate optional string fields.
func Str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Dec returns a pointer to d.
func Dec(d decimal.Decimal) *decimal.Decimal {
	return &d
}
