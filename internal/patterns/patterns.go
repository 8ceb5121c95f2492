// Package patterns is the shared regular-expression library: a small,
// stable set of named patterns for dates, amounts, tax identifiers,
// contact details and SKUs, each compiled once at package init and reused
// by every extractor. All patterns are RE2 (Go's regexp package), which
// guarantees linear-time matching with no catastrophic backtracking —
// exactly the property this extraction pipeline needs to run in bounded
// time regardless of input shape.
package patterns

import "regexp"

var (
	// PHONE matches a formatted phone number. It requires at least one
	// separator between digit groups so it never matches a bare run of
	// digits (those are handled separately, since bare runs are ambiguous
	// with document/store IDs). It cannot span a newline: the character
	// classes used for separators never include "\n".
	PHONE = regexp.MustCompile(`\+?\d{0,3}[ .\-]?\(?\d{2,4}\)?[ .\-]\d{3,4}[ .\-]\d{3,4}(?:[ .\-]\d{2,4})?`)

	// EMAIL matches a standard email address.
	EMAIL = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// URL matches an http(s) URL with or without scheme/www prefix.
	URL = regexp.MustCompile(`(?:https?://)?(?:www\.)?[a-zA-Z0-9\-]+\.[a-zA-Z]{2,}(?:/[^\s]*)?`)

	// DATE_ISO matches YYYY-MM-DD or YYYY/MM/DD.
	DateISO = regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`)

	// DateNumeric matches a bare numeric date with 2-4 digit year
	// (MM/DD/YYYY or DD/MM/YYYY — the two are syntactically identical;
	// the ambiguity is resolved by extract_dates, not by the pattern).
	DateNumeric = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2}|\d{4})\b`)

	// DateLong matches "Jan 15, 2024" / "January 15 2024" style dates.
	DateLong = regexp.MustCompile(`(?i)\b(` + monthAlt + `)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{2,4})\b`)

	// DateLongRev matches "15 Jan 2024" / "15th of January, 2024" style dates.
	DateLongRev = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthAlt + `)[a-z]*\.?,?\s+(\d{2,4})\b`)

	// Amount matches a currency-prefixed or currency-suffixed monetary
	// value, e.g. "$1,234.56" or "1234.56 USD".
	Amount = regexp.MustCompile(`[$€£¥]\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\(?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?\)?\s?(?:USD|EUR|GBP|AUD|CAD|NZD)\b`)

	// AmountBare matches a bare decimal number with optional thousands
	// separators and an optional parenthesized-negative wrapper.
	AmountBare = regexp.MustCompile(`\(?-?\d{1,3}(?:,\d{3})*(?:\.\d{1,4})?\)?|\(?-?\d+\.\d{1,4}\)?`)

	// ABN matches an Australian Business Number: 11 digits, optionally
	// grouped 2-3-3-3.
	ABN = regexp.MustCompile(`\b\d{2}\s?\d{3}\s?\d{3}\s?\d{3}\b`)

	// ACN matches an Australian Company Number: 9 digits, optionally
	// grouped 3-3-3.
	ACN = regexp.MustCompile(`\b\d{3}\s?\d{3}\s?\d{3}\b`)

	// GSTAU matches an Australian GST number (identical shape to ABN;
	// Australia uses the ABN as its GST-registration identifier).
	GSTAU = ABN

	// EIN matches a US Employer Identification Number: NN-NNNNNNN.
	EIN = regexp.MustCompile(`\b\d{2}-\d{7}\b`)

	// VAT matches a generic EU-style VAT number: 2-letter country prefix
	// followed by 6-12 alphanumeric characters.
	VAT = regexp.MustCompile(`\b[A-Z]{2}\d{6,12}\b`)

	// GSTIN matches an Indian GST Identification Number (15 characters).
	GSTIN = regexp.MustCompile(`\b\d{2}[A-Z]{5}\d{4}[A-Z]{1}[A-Z\d]{1}[Z]{1}[A-Z\d]{1}\b`)

	// SKULabeled matches a labeled SKU/part-number token: the label
	// followed by an alphanumeric code.
	SKULabeled = regexp.MustCompile(`(?i)\b(?:SKU|PN|MPN|Part\s?(?:No\.?|#)?|Item\s?(?:No\.?|#)?)[\s#:.\-]*([A-Za-z0-9][A-Za-z0-9\-/]{1,})`)

	// SKUBare matches a tri-segment hyphenated code commonly used as a
	// bare part number, e.g. "90-27-3325".
	SKUBare = regexp.MustCompile(`\b[A-Za-z0-9]{2,}-[A-Za-z0-9]{2,}-[A-Za-z0-9]{2,}\b`)

	// TaxPercent matches a percentage value, e.g. "8%" or "8.25 %".
	TaxPercent = regexp.MustCompile(`\b(\d{1,2}(?:\.\d{1,3})?)\s?%`)

	// USZipPlus4 matches the US ZIP+4 shape NNNNN-NNNN, used to exclude
	// postal codes from phone-number detection.
	USZipPlus4 = regexp.MustCompile(`^\d{5}-\d{4}$`)

	// USZip matches a US postal code, with or without the +4 suffix.
	USZip = regexp.MustCompile(`\b\d{5}(-\d{4})?\b`)

	// AUSuburb matches "Suburb STATE NNNN" (Australian address line).
	AUSuburb = regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z .'\-]+?)\s+(NSW|VIC|QLD|WA|SA|TAS|ACT|NT)\s+(\d{4})\b`)

	// USCityStateZip matches "City, ST 12345".
	USCityStateZip = regexp.MustCompile(`([A-Za-z][A-Za-z .'\-]+),\s*([A-Z]{2})\s+(\d{5})(-\d{4})?`)

	// StreetLine matches a leading house/building number followed by a
	// word — the shape of a typical street-address line.
	StreetLine = regexp.MustCompile(`^\s*\d+\s+\S.*`)
)

const monthAlt = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`

// MonthNumber maps a lowercase month name/abbreviation (as captured by
// DateLong/DateLongRev) to its 1-indexed numeric value. Month parsing is a
// static alternation, never the platform locale database, so behavior is
// identical across environments.
var MonthNumber = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}
