package primitives

import (
	"strings"

	"github.com/docextract/docextract/internal/patterns"
)

// countryNames maps a curated set of country names to their ISO-3166
// two-letter codes. The bare token "au" is deliberately excluded to avoid
// false positives on words like "auto".
var countryNames = map[string]string{
	"united states":  "US",
	"usa":            "US",
	"u.s.a.":         "US",
	"australia":      "AU",
	"canada":         "CA",
	"united kingdom": "GB",
	"uk":             "GB",
	"germany":        "DE",
	"france":         "FR",
	"spain":          "ES",
	"italy":          "IT",
	"new zealand":    "NZ",
	"india":          "IN",
}

var auStates = map[string]bool{
	"NSW": true, "VIC": true, "QLD": true, "WA": true,
	"SA": true, "TAS": true, "ACT": true, "NT": true,
}

// AddressFields is the output of ParseAddress; assemble.go converts it
// into model.Address.
type AddressFields struct {
	Street      string
	City        string
	State       string
	PostalCode  string
	Country     string
	FullAddress string
}

// ParseAddress extracts street/city/state/postal_code/country from a
// multi-line text block.
func ParseAddress(block string) AddressFields {
	var f AddressFields
	lowerBlock := strings.ToLower(block)

	auSignal := false
	if m := patterns.AUSuburb.FindStringSubmatch(block); m != nil {
		f.City = strings.TrimSpace(m[1])
		f.State = strings.ToUpper(m[2])
		f.PostalCode = m[3]
		f.Country = "AU"
		auSignal = true
	}

	for name, code := range countryNames {
		if name == "au" {
			continue
		}
		if strings.Contains(lowerBlock, name) {
			if code == "AU" {
				auSignal = true
			}
			if f.Country == "" {
				f.Country = code
			}
		}
	}

	usSignal := false
	if m := patterns.USCityStateZip.FindStringSubmatch(block); m != nil {
		city := strings.TrimSpace(m[1])
		state := strings.ToUpper(m[2])
		postal := m[3]
		if f.City == "" {
			f.City = city
		}
		if f.State == "" {
			f.State = state
		}
		if f.PostalCode == "" {
			f.PostalCode = postal + m[4]
		}
		usSignal = true
		if !auSignal && f.Country == "" {
			f.Country = "US"
		}
	}

	// If both AU and US signals are present and the state token is a US
	// two-letter code that is not an AU state, coerce country to US.
	if auSignal && usSignal && f.State != "" && len(f.State) == 2 && !auStates[f.State] {
		f.Country = "US"
	}

	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 5 && patterns.StreetLine.MatchString(trimmed) {
			f.Street = trimmed
			break
		}
	}

	parts := []string{}
	for _, v := range []string{f.Street, f.City, f.State, f.PostalCode, f.Country} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	f.FullAddress = strings.Join(parts, ", ")

	return f
}

// IsEmpty reports whether no address component was found.
func (f AddressFields) IsEmpty() bool {
	return f.Street == "" && f.City == "" && f.State == "" &&
		f.PostalCode == "" && f.Country == "" && f.FullAddress == ""
}
