package primitives

import (
	"regexp"
	"strings"

	"github.com/docextract/docextract/internal/patterns"
)

var consecutiveDigitRun8 = regexp.MustCompile(`\d{8,}`)

// SupplierFields is the output of BuildSupplier; assemble.go converts it
// into model.Supplier.
type SupplierFields struct {
	Name           string
	Phone          string
	Email          string
	Website        string
	Address        AddressFields
	TaxInformation TaxFields
}

// BuildSupplier extracts phone/email/URL/address/tax information from a
// header text block, using nameHint (typically the document's first
// non-empty line) as the supplier name when no better candidate exists.
func BuildSupplier(nameHint, headerBlock, fullText string) SupplierFields {
	return SupplierFields{
		Name:           strings.TrimSpace(nameHint),
		Phone:          bestPhone(headerBlock),
		Email:          patterns.EMAIL.FindString(headerBlock),
		Website:        bestWebsite(headerBlock),
		Address:        ParseAddress(headerBlock),
		TaxInformation: ExtractTaxInformation(fullText),
	}
}

// bestPhone prefers a formatted candidate (contains a phone-style
// separator, has >=10 digits, and has no run of >=8 consecutive digits in
// the original string) over a raw digit run, so store IDs and document
// numbers (e.g. "20231120") are not mistaken for phone numbers. A candidate
// matching the US ZIP+4 shape is rejected explicitly rather than relying on
// PHONE's separator count to exclude it incidentally.
func bestPhone(block string) string {
	candidates := patterns.PHONE.FindAllString(block, -1)
	for i := range candidates {
		candidates[i] = strings.TrimSpace(candidates[i])
	}
	for _, c := range candidates {
		if patterns.USZipPlus4.MatchString(strings.TrimSpace(c)) {
			continue
		}
		if !looksFormatted(c) {
			continue
		}
		if digitCount(c) < 10 {
			continue
		}
		if consecutiveDigitRun8.MatchString(c) {
			continue
		}
		return c
	}
	for _, c := range candidates {
		if !patterns.USZipPlus4.MatchString(strings.TrimSpace(c)) {
			return c
		}
	}
	return ""
}

func looksFormatted(s string) bool {
	return strings.ContainsAny(s, "()-. ")
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

func bestWebsite(block string) string {
	for _, m := range patterns.URL.FindAllString(block, -1) {
		if patterns.EMAIL.MatchString(m) {
			continue
		}
		return m
	}
	return ""
}
