package primitives

import "testing"

func TestExtractTaxInformationABN(t *testing.T) {
	f := ExtractTaxInformation("Acme Pty Ltd\nABN: 51 824 753 556\n")
	if f.ABN != "51 824 753 556" {
		t.Errorf("ABN = %q, want 51 824 753 556", f.ABN)
	}
}

func TestExtractTaxInformationEIN(t *testing.T) {
	f := ExtractTaxInformation("Acme Inc\nEIN: 12-3456789\n")
	if f.EIN != "12-3456789" {
		t.Errorf("EIN = %q, want 12-3456789", f.EIN)
	}
	if f.TaxID != "12-3456789" {
		t.Errorf("TaxID = %q, want 12-3456789", f.TaxID)
	}
}

func TestExtractTaxInformationVAT(t *testing.T) {
	f := ExtractTaxInformation("Acme GmbH\nVAT: DE123456789\n")
	if f.VATNumber != "DE123456789" {
		t.Errorf("VAT = %q, want DE123456789", f.VATNumber)
	}
}

func TestExtractTaxInformationNone(t *testing.T) {
	f := ExtractTaxInformation("Plain text with no identifiers")
	if !f.IsEmpty() {
		t.Errorf("expected empty tax fields, got %+v", f)
	}
}
