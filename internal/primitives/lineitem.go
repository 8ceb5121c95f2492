package primitives

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/patterns"
)

var (
	summaryLineKeywords = regexp.MustCompile(`(?i)\b(sub\s*total|subtotal|total|tax|gst|vat|hst|shipping|discount|balance|amount due|paid|change)\b`)
	tableHeaderKeywords  = regexp.MustCompile(`(?i)\b(description|item|qty|quantity|part\s*(?:no|#)|sku|unit\s*price|amount|total|rate|no\.?)\b`)
	numericToken         = regexp.MustCompile(`-?\d{1,3}(?:,\d{3})*(?:\.\d+)?%?|-?\d+\.\d+%?`)
	leadingRowNumber     = regexp.MustCompile(`^\s*\d+[.)\s]+`)
	trailingNumericTail  = regexp.MustCompile(`[\s$€£¥%.,\-]*\d[\d.,\s$€£¥%-]*$`)
	consecutiveLetters2  = regexp.MustCompile(`[A-Za-z]{2,}`)
	doubleSpaceSplit     = regexp.MustCompile(`[ \t]{2,}`)
)

const (
	maxLineItemTotal = 9_999_999
	mathTolerance    = 0.05
)

// LineItem is the output of ParseLineItem; assemble.go converts it into
// model.Part.
type LineItem struct {
	ItemName           string
	Description        string
	SKU                string
	PartNumber         string
	Quantity           decimal.Decimal
	UnitPrice          *decimal.Decimal
	TotalAmount        decimal.Decimal
	TaxPercentage      *decimal.Decimal
	TaxAmount          *decimal.Decimal
	PositionalFallback bool
}

type numToken struct {
	value     decimal.Decimal
	isPercent bool
	start     int
}

// ParseLineItem attempts to parse a single OCR line into a line item,
// applying numeric disambiguation of quantity, unit price, tax percentage
// and tax amount. defaultTaxPct, if non-nil, is used when the line itself
// carries no tax percentage. Returns false when the line is not a line
// item (a summary/totals line, a bare table header, or one with no usable
// total).
func ParseLineItem(line string, defaultTaxPct *decimal.Decimal) (LineItem, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LineItem{}, false
	}

	tokens := extractNumericTokens(trimmed)

	if summaryLineKeywords.MatchString(trimmed) {
		return LineItem{}, false
	}
	if len(tokens) == 0 && countKeywords(tableHeaderKeywords, trimmed) >= 2 {
		return LineItem{}, false
	}
	if len(tokens) == 0 {
		return LineItem{}, false
	}

	// Step 3: tax percentage.
	var taxPct *decimal.Decimal
	for _, t := range tokens {
		if t.isPercent {
			v := t.value
			taxPct = &v
			break
		}
	}
	if taxPct == nil {
		if m := patterns.TaxPercent.FindStringSubmatch(trimmed); m != nil {
			if v, err := decimal.NewFromString(m[1]); err == nil {
				taxPct = &v
			}
		}
	}

	// Step 4: SKU.
	sku := ""
	partNumber := ""
	if m := patterns.SKULabeled.FindStringSubmatch(trimmed); m != nil {
		sku = m[1]
	} else if m := patterns.SKUBare.FindString(trimmed); m != "" {
		sku = m
	}

	// Step 5: total_amount is the rightmost non-percentage token.
	var totalTok *numToken
	for i := len(tokens) - 1; i >= 0; i-- {
		if !tokens[i].isPercent {
			t := tokens[i]
			totalTok = &t
			break
		}
	}
	if totalTok == nil {
		return LineItem{}, false
	}
	total := totalTok.value
	if total.Sign() <= 0 || total.GreaterThan(decimal.NewFromInt(maxLineItemTotal)) {
		return LineItem{}, false
	}

	// Candidates: non-percent tokens strictly before the total token.
	var candidates []decimal.Decimal
	for _, t := range tokens {
		if t.isPercent || t.start >= totalTok.start {
			continue
		}
		candidates = append(candidates, t.value)
	}

	// Step 6: candidate name.
	name := candidateName(trimmed, sku)

	item := LineItem{
		ItemName:    name,
		SKU:         sku,
		PartNumber:  partNumber,
		TotalAmount: total.Round(4),
	}

	quantity, unitPrice, leftoverTaxPct, taxAmount, positional := disambiguateQuantityPrice(candidates, total)
	item.Quantity = quantity
	item.UnitPrice = unitPrice
	item.PositionalFallback = positional
	if taxAmount != nil {
		v := taxAmount.Round(4)
		item.TaxAmount = &v
	}

	// Step 8.
	if item.UnitPrice == nil && item.Quantity.Sign() > 0 {
		up := total.Div(item.Quantity).Round(4)
		item.UnitPrice = &up
	}

	// Step 3 (continued): attach tax percentage, preferring an explicit "%"
	// token, then a bare leftover numeric column disambiguateQuantityPrice
	// identified as a percentage (no literal "%" in the source line), then
	// the caller-supplied default.
	if taxPct == nil {
		taxPct = leftoverTaxPct
	}
	if taxPct == nil {
		taxPct = defaultTaxPct
	}
	if taxPct != nil {
		v := *taxPct
		item.TaxPercentage = &v
	}

	// Step 9.
	if item.TaxAmount == nil && taxPct != nil && item.UnitPrice != nil {
		computed := item.Quantity.Mul(*item.UnitPrice).Mul(*taxPct).Div(decimal.NewFromInt(100)).Round(4)
		item.TaxAmount = &computed
	}

	return item, true
}

func countKeywords(re *regexp.Regexp, s string) int {
	return len(re.FindAllString(s, -1))
}

func extractNumericTokens(line string) []numToken {
	locs := numericToken.FindAllStringIndex(line, -1)
	tokens := make([]numToken, 0, len(locs))
	isLetter := func(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }
	for _, loc := range locs {
		// Digits glued to letters ("M12", "75mm") belong to a word such as
		// a size or model designation, not to a numeric column.
		if (loc[0] > 0 && isLetter(line[loc[0]-1])) || (loc[1] < len(line) && isLetter(line[loc[1]])) {
			continue
		}
		raw := line[loc[0]:loc[1]]
		isPct := strings.HasSuffix(raw, "%")
		clean := strings.TrimSuffix(raw, "%")
		clean = strings.ReplaceAll(clean, ",", "")
		v, err := decimal.NewFromString(clean)
		if err != nil {
			continue
		}
		tokens = append(tokens, numToken{value: v, isPercent: isPct, start: loc[0]})
	}
	return tokens
}

func candidateName(line, sku string) string {
	name := ""
	for _, seg := range doubleSpaceSplit.Split(line, -1) {
		if consecutiveLetters2.MatchString(seg) {
			name = strings.TrimSpace(seg)
			break
		}
	}
	if name == "" {
		name = strings.TrimSpace(trailingNumericTail.ReplaceAllString(line, ""))
	}
	if sku != "" {
		name = strings.ReplaceAll(name, sku, "")
	}
	name = leadingRowNumber.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// disambiguateQuantityPrice implements spec.md step 7: find the
// lowest-error (quantity, unit_price) pair among candidates whose product
// approximates total within 5%, falling back to a positional heuristic
// when no pair validates. When one or more numbers are left over (neither
// chosen as quantity nor unit_price), total is assumed to already include
// them — the worked example in spec.md S5 states a row with no literal "%"
// sign where the only way the pair validates at all is by adding the
// leftover numbers back before comparing to total, so a leftover column is
// treated as tax information even without a "%" marker in the source text.
func disambiguateQuantityPrice(candidates []decimal.Decimal, total decimal.Decimal) (quantity decimal.Decimal, unitPrice *decimal.Decimal, taxPct *decimal.Decimal, taxAmount *decimal.Decimal, positional bool) {
	quantity = decimal.NewFromInt(1)

	if len(candidates) >= 2 {
		denom := total
		if denom.IsZero() {
			denom = decimal.NewFromInt(1)
		}

		bestI, bestJ := -1, -1
		bestHasLeftover := false
		bestAmountIdx := -1 // index into candidates of the leftover used as tax_amount, or -1 for "sum every leftover"
		bestErr := -1.0
		for i := range candidates {
			for j := range candidates {
				if i == j {
					continue
				}
				q, p := candidates[i], candidates[j]
				product := q.Mul(p)

				// Plain match: q*p against total directly.
				errf, _ := product.Sub(total).Abs().Div(denom).Float64()
				if errf < mathTolerance && (bestErr < 0 || errf < bestErr) {
					bestErr = errf
					bestI, bestJ = i, j
					bestHasLeftover = false
				}

				// When one or more numbers are left over, total already
				// includes some of them (tax information): q*p + leftover
				// against total. Each leftover is tried individually as the
				// tax_amount (the rest, if any, are tax-rate-shaped numbers
				// with no literal "%" in the source), and the full sum of
				// leftovers is tried too, for rows where every leftover
				// number really is additive.
				if len(candidates) >= 3 {
					leftoverSum := decimal.Zero
					var leftoverIdx []int
					for k := range candidates {
						if k == i || k == j {
							continue
						}
						leftoverSum = leftoverSum.Add(candidates[k])
						leftoverIdx = append(leftoverIdx, k)
					}

					if errf2 := relativeError(product.Add(leftoverSum), total, denom); errf2 < mathTolerance && (bestErr < 0 || errf2 < bestErr) {
						bestErr = errf2
						bestI, bestJ = i, j
						bestHasLeftover = true
						bestAmountIdx = -1
					}

					for _, m := range leftoverIdx {
						if errf2 := relativeError(product.Add(candidates[m]), total, denom); errf2 < mathTolerance && (bestErr < 0 || errf2 < bestErr) {
							bestErr = errf2
							bestI, bestJ = i, j
							bestHasLeftover = true
							bestAmountIdx = m
						}
					}
				}
			}
		}
		if bestI >= 0 {
			quantity = candidates[bestI]
			up := candidates[bestJ]
			unitPrice = &up
			if bestHasLeftover {
				var leftover []decimal.Decimal
				for k, c := range candidates {
					if k != bestI && k != bestJ {
						leftover = append(leftover, c)
					}
				}
				switch {
				case bestAmountIdx >= 0:
					amt := candidates[bestAmountIdx]
					taxAmount = &amt
					for k, c := range candidates {
						if k != bestI && k != bestJ && k != bestAmountIdx {
							v := c
							taxPct = &v
							break
						}
					}
				case len(leftover) == 1:
					v := leftover[0]
					taxAmount = &v
				default:
					v := decimal.Zero
					for _, c := range leftover {
						v = v.Add(c)
					}
					taxAmount = &v
				}
			}
			return quantity, unitPrice, taxPct, taxAmount, false
		}

		// No validated pair: positional fallback.
		positional = true
		smallIntIdx := -1
		for i, c := range candidates {
			if isPlausibleQuantity(c) {
				smallIntIdx = i
				break
			}
		}
		if smallIntIdx >= 0 {
			quantity = candidates[smallIntIdx]
		}
		rightmostIdx := -1
		for i := range candidates {
			if i == smallIntIdx {
				continue
			}
			rightmostIdx = i
		}
		if rightmostIdx >= 0 {
			up := candidates[rightmostIdx]
			unitPrice = &up
		}
		return quantity, unitPrice, taxPct, taxAmount, positional
	}

	if len(candidates) == 1 {
		n := candidates[0]
		if isPlausibleQuantity(n) && !total.IsZero() {
			derived := total.Div(n)
			f, _ := derived.Float64()
			if f >= 0.01 {
				quantity = n
				return quantity, nil, nil, nil, false
			}
		}
		unitPrice = &n
		return quantity, unitPrice, nil, nil, false
	}

	return quantity, nil, nil, nil, false
}

// relativeError returns |a-b|/denom as a float64, used throughout step 7's
// tolerance checks.
func relativeError(a, b, denom decimal.Decimal) float64 {
	f, _ := a.Sub(b).Abs().Div(denom).Float64()
	return f
}

func isPlausibleQuantity(d decimal.Decimal) bool {
	if d.Sign() <= 0 {
		return false
	}
	if !d.Equal(d.Truncate(0)) {
		return false
	}
	return d.LessThan(decimal.NewFromInt(10000))
}
