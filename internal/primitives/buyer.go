package primitives

import (
	"regexp"
	"strings"

	"github.com/docextract/docextract/internal/patterns"
)

var (
	buyerSectionLabel = regexp.MustCompile(`(?i)^\s*(Bill\s*To|Ship\s*To|Customer(?:\s*Name)?|Sold\s*To|Client)\s*:?\s*$`)
	buyerInlineLabel  = regexp.MustCompile(`(?i)^\s*(Bill\s*To|Ship\s*To|Customer(?:\s*Name)?|Sold\s*To|Client)\s*[:.]\s+(\S.+)$`)
	attnPrefix        = regexp.MustCompile(`(?i)^\s*Attn(?:ention)?[:.]\s*`)
)

// BuyerFields is the output of BuildBuyer; assemble.go converts it into
// model.Buyer.
type BuyerFields struct {
	Name    string
	Address AddressFields
	Phone   string
	Email   string
}

// BuildBuyer isolates the buyer block from allLines and extracts the
// buyer's name, address and contact details.
func BuildBuyer(allLines []string) BuyerFields {
	var f BuyerFields

	for i, line := range allLines {
		if m := buyerInlineLabel.FindStringSubmatch(line); m != nil {
			f.Name = attnPrefix.ReplaceAllString(strings.TrimSpace(m[2]), "")
			f.Address = ParseAddress(strings.Join(allLines[i:min(i+5, len(allLines))], "\n"))
			break
		}
		if buyerSectionLabel.MatchString(line) {
			for j := i + 1; j < len(allLines); j++ {
				candidate := strings.TrimSpace(allLines[j])
				if candidate == "" || buyerSectionLabel.MatchString(candidate) {
					continue
				}
				f.Name = attnPrefix.ReplaceAllString(candidate, "")
				f.Address = ParseAddress(strings.Join(allLines[j:min(j+5, len(allLines))], "\n"))
				break
			}
			break
		}
	}

	if f.Name != "" {
		block := ""
		for i, line := range allLines {
			if strings.Contains(line, f.Name) {
				block = strings.Join(allLines[i:min(i+5, len(allLines))], "\n")
				break
			}
		}
		f.Phone = bestPhone(block)
		f.Email = patterns.EMAIL.FindString(block)
	}

	return f
}
