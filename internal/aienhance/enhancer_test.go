package aienhance

import (
	"strings"
	"testing"

	"github.com/docextract/docextract/internal/model"
)

func TestApplyPatchFillsOnlyEmptyFields(t *testing.T) {
	existingEmail := "billing@existing.example"
	record := model.Record{
		Supplier: model.Supplier{
			Contact: model.Contact{Email: &existingEmail},
		},
	}

	p := patch{
		SupplierEmail: "ignored@example.com",
		SupplierPhone: "555-0100",
		InvoiceNumber: "INV-9",
		Subtotal:      "100.00",
	}

	out := applyPatch(record, p)

	if out.Supplier.Contact.Email == nil || *out.Supplier.Contact.Email != existingEmail {
		t.Errorf("email = %v, want unchanged %q (already populated)", out.Supplier.Contact.Email, existingEmail)
	}
	if out.Supplier.Contact.Phone == nil || *out.Supplier.Contact.Phone != "555-0100" {
		t.Errorf("phone = %v, want 555-0100 (was empty)", out.Supplier.Contact.Phone)
	}
	if out.Transaction.InvoiceNumber == nil || *out.Transaction.InvoiceNumber != "INV-9" {
		t.Errorf("invoice number = %v, want INV-9", out.Transaction.InvoiceNumber)
	}
	if out.Totals.Subtotal == nil || out.Totals.Subtotal.StringFixed(2) != "100.00" {
		t.Errorf("subtotal = %v, want 100.00", out.Totals.Subtotal)
	}
}

func TestApplyPatchIgnoresMalformedDecimal(t *testing.T) {
	record := model.Record{}
	out := applyPatch(record, patch{Subtotal: "not-a-number"})
	if out.Totals.Subtotal != nil {
		t.Errorf("subtotal = %v, want nil for an unparseable value", out.Totals.Subtotal)
	}
}

func TestApplyPatchLeavesUnsetFieldsAloneWhenPatchEmpty(t *testing.T) {
	record := model.Record{}
	out := applyPatch(record, patch{})

	if out.Supplier.Contact.Email != nil {
		t.Errorf("email = %v, want nil", out.Supplier.Contact.Email)
	}
	if out.Transaction.InvoiceNumber != nil {
		t.Errorf("invoice number = %v, want nil", out.Transaction.InvoiceNumber)
	}
	if out.Totals.Subtotal != nil {
		t.Errorf("subtotal = %v, want nil", out.Totals.Subtotal)
	}
}

func TestGapsPromptListsOnlyMissingFields(t *testing.T) {
	email := "sales@acme.com"
	record := model.Record{
		Supplier: model.Supplier{Contact: model.Contact{Email: &email}},
	}

	prompt := gapsPrompt(record, "some raw text")

	if strings.Contains(prompt, "supplier_email") {
		t.Errorf("prompt lists supplier_email as missing, but it is already populated:\n%s", prompt)
	}
	if !strings.Contains(prompt, "invoice_number") {
		t.Errorf("prompt does not list invoice_number as missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "some raw text") {
		t.Errorf("prompt does not include the document text")
	}
}
