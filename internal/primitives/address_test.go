package primitives

import "testing"

func TestParseAddressUSCityStateZip(t *testing.T) {
	block := "123 Main St\nSpringfield, IL 62701\nUSA"
	f := ParseAddress(block)
	if f.City != "Springfield" {
		t.Errorf("city = %q, want Springfield", f.City)
	}
	if f.State != "IL" {
		t.Errorf("state = %q, want IL", f.State)
	}
	if f.PostalCode != "62701" {
		t.Errorf("postal code = %q, want 62701", f.PostalCode)
	}
	if f.Country != "US" {
		t.Errorf("country = %q, want US", f.Country)
	}
	if f.Street != "123 Main St" {
		t.Errorf("street = %q, want 123 Main St", f.Street)
	}
}

func TestParseAddressAUSuburb(t *testing.T) {
	block := "42 Example Rd\nSydney NSW 2000\nAustralia"
	f := ParseAddress(block)
	if f.City != "Sydney" {
		t.Errorf("city = %q, want Sydney", f.City)
	}
	if f.State != "NSW" {
		t.Errorf("state = %q, want NSW", f.State)
	}
	if f.PostalCode != "2000" {
		t.Errorf("postal code = %q, want 2000", f.PostalCode)
	}
	if f.Country != "AU" {
		t.Errorf("country = %q, want AU", f.Country)
	}
}

func TestParseAddressConflictingSignalsCoerceToUS(t *testing.T) {
	// "Australia" appears as a brand/street name, but the actual city/state
	// line is a US-style ZIP with a non-AU state code — must resolve to US.
	block := "99 Australia Ave\nAustin, TX 78701"
	f := ParseAddress(block)
	if f.Country != "US" {
		t.Errorf("country = %q, want US (conflicting signal coercion)", f.Country)
	}
}

func TestParseAddressEmpty(t *testing.T) {
	f := ParseAddress("")
	if !f.IsEmpty() {
		t.Errorf("expected empty address, got %+v", f)
	}
}
