// Package primitives implements the pure extraction functions built atop
// the pattern library (C1) and text normalizer (C2): currency/language
// detection, document-type classification, date and amount extraction,
// address parsing, tax-identifier extraction, supplier/buyer assembly and
// line-item parsing.
package primitives

import (
	"regexp"
	"strings"
)

type currencyRule struct {
	pattern *regexp.Regexp
	code    string
}

// currencyRules is ordered most-specific-first: broader symbols/codes
// (plain "$"/"USD") must be tried last so a more specific regional dollar
// ("A$"/"AUD") is not shadowed by it.
var currencyRules = []currencyRule{
	{regexp.MustCompile(`A\$|AUD`), "AUD"},
	{regexp.MustCompile(`C\$|CAD`), "CAD"},
	{regexp.MustCompile(`NZ\$|NZD`), "NZD"},
	{regexp.MustCompile(`£|GBP`), "GBP"},
	{regexp.MustCompile(`€|EUR`), "EUR"},
	{regexp.MustCompile(`¥|JPY`), "JPY"},
	{regexp.MustCompile(`₹|INR`), "INR"},
	{regexp.MustCompile(`R\$|BRL`), "BRL"},
	{regexp.MustCompile(`\$|USD`), "USD"},
}

// DetectCurrency scans text against the ordered currency-rule table and
// returns the first matching ISO-4217 code. It defaults to USD when no
// currency symbol or code is present.
func DetectCurrency(text string) string {
	for _, rule := range currencyRules {
		if rule.pattern.MatchString(text) {
			return rule.code
		}
	}
	return "USD"
}

// languageKeywords maps a BCP-47 language code to vocabulary that is
// distinctive of business documents written in that language.
var languageKeywords = []struct {
	code     string
	keywords []string
}{
	{"fr", []string{"facture", "montant", "total", "tva", "date d'échéance", "client", "merci"}},
	{"de", []string{"rechnung", "betrag", "mehrwertsteuer", "datum", "kunde", "gesamtbetrag"}},
	{"es", []string{"factura", "importe", "total", "iva", "fecha", "cliente", "gracias"}},
	{"it", []string{"fattura", "importo", "totale", "iva", "data", "cliente", "grazie"}},
	{"en", []string{"invoice", "total", "amount", "date", "customer", "thank you", "bill to"}},
}

// DetectLanguage applies a keyword heuristic over the first 800 lowercase
// characters of text and returns a BCP-47 code, defaulting to "en".
func DetectLanguage(text string) string {
	window := text
	if len(window) > 800 {
		window = window[:800]
	}
	lower := strings.ToLower(window)

	bestCode := "en"
	bestScore := 0
	for _, lang := range languageKeywords {
		score := 0
		for _, kw := range lang.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestCode = lang.code
		}
	}
	return bestCode
}
