package primitives

import (
	"regexp"

	"github.com/docextract/docextract/internal/lines"
	"github.com/docextract/docextract/internal/patterns"
)

var (
	abnLabel   = regexp.MustCompile(`(?i)\bABN\b[\s#:.\-]*`)
	acnLabel   = regexp.MustCompile(`(?i)\bACN\b[\s#:.\-]*`)
	gstAULabel = regexp.MustCompile(`(?i)\bGST\b[\s#:.\-]*`)
	einLabel   = regexp.MustCompile(`(?i)\bEIN\b[\s#:.\-]*|\bTax\s*ID\b[\s#:.\-]*`)
	vatLabel   = regexp.MustCompile(`(?i)\bVAT\b[\s#:.\-]*`)
	gstinLabel = regexp.MustCompile(`(?i)\bGSTIN\b[\s#:.\-]*`)
)

// TaxFields is the output of ExtractTaxInformation; assemble.go converts
// it into model.TaxInformation.
type TaxFields struct {
	TaxID     string
	GSTNumber string
	VATNumber string
	EIN       string
	ABN       string
	ACN       string
}

// IsEmpty reports whether no tax identifier was found.
func (f TaxFields) IsEmpty() bool {
	return f.TaxID == "" && f.GSTNumber == "" && f.VATNumber == "" &&
		f.EIN == "" && f.ABN == "" && f.ACN == ""
}

// ExtractTaxInformation applies ABN, ACN, GST_AU, EIN, VAT, GSTIN in
// sequence and returns the merged set of identifiers found.
func ExtractTaxInformation(text string) TaxFields {
	var f TaxFields

	if v, ok := labeledValue(text, abnLabel, patterns.ABN); ok {
		f.ABN = v
	}
	if v, ok := labeledValue(text, acnLabel, patterns.ACN); ok {
		f.ACN = v
	}
	if v, ok := labeledValue(text, gstAULabel, patterns.GSTAU); ok {
		f.GSTNumber = v
	}
	if v, ok := labeledValue(text, einLabel, patterns.EIN); ok {
		f.EIN = v
		f.TaxID = v
	}
	if v, ok := labeledValue(text, vatLabel, patterns.VAT); ok {
		f.VATNumber = v
	}
	if v, ok := labeledValue(text, gstinLabel, patterns.GSTIN); ok {
		f.GSTNumber = v
	}

	return f
}

// labeledValue finds labelRe in text, then looks for valueRe within the
// remainder of that line, then anywhere on that line, then on the
// following line (for labels that sit on their own line).
func labeledValue(text string, labelRe, valueRe *regexp.Regexp) (string, bool) {
	all := lines.Split(text)
	for i, line := range all {
		loc := labelRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		rest := line[loc[1]:]
		if v := valueRe.FindString(rest); v != "" {
			return v, true
		}
		if v := valueRe.FindString(line); v != "" {
			return v, true
		}
		if i+1 < len(all) {
			if v := valueRe.FindString(all[i+1]); v != "" {
				return v, true
			}
		}
	}
	return "", false
}
