package lineitems

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docextract/docextract/internal/primitives"
)

type verticalLabel struct {
	key string
	re  *regexp.Regexp
}

var (
	verticalLabels = []verticalLabel{
		{"part_number", regexp.MustCompile(`(?i)^\s*part\s*number\s*:?\s*$`)},
		{"description", regexp.MustCompile(`(?i)^\s*description\s*:?\s*$`)},
		{"price", regexp.MustCompile(`(?i)^\s*(?:unit\s*)?price\s*:?\s*$`)},
		{"net", regexp.MustCompile(`(?i)^\s*net\s*:?\s*$`)},
		{"total", regexp.MustCompile(`(?i)^\s*total\s*:?\s*$`)},
		{"core_deposit", regexp.MustCompile(`(?i)^\s*core\s*deposit\s*:?\s*$`)},
		{"qty", regexp.MustCompile(`(?i)^\s*qty\.?\s*:?\s*$`)},
	}
	inlineQty        = regexp.MustCompile(`(?i)\bqty\b\s*[:\s]\s*(\d+)`)
	standaloneAmount = regexp.MustCompile(`^\s*\$?\d[\d,]*(\.\d{1,2})?\s*$`)
)

// VerticalForm recognizes POS/thermal-receipt layouts where each field
// occupies its own line (a label, then its value on the following line),
// building a dictionary of the first occurrence of each mapped label.
// Emits at most two parts: the main item, plus an optional "Core
// Deposit" line item.
func VerticalForm(allLines []string) []primitives.LineItem {
	collected := map[string]string{}
	collectedAt := map[string]int{}

	for i, raw := range allLines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if m := inlineQty.FindStringSubmatch(trimmed); m != nil {
			if _, exists := collected["qty"]; !exists {
				collected["qty"] = m[1]
				collectedAt["qty"] = i
			}
			continue
		}
		for _, lbl := range verticalLabels {
			if !lbl.re.MatchString(trimmed) {
				continue
			}
			if _, exists := collected[lbl.key]; exists {
				continue
			}
			if i+1 < len(allLines) {
				val := strings.TrimSpace(allLines[i+1])
				if val != "" {
					collected[lbl.key] = val
					collectedAt[lbl.key] = i + 1
				}
			}
		}
	}

	if len(collected) < 2 {
		return nil
	}
	description, hasDesc := collected["description"]
	partNumber, hasPN := collected["part_number"]
	if !hasDesc && !hasPN {
		return nil
	}

	if !hasDesc || description == "" {
		description = firstAlphaLineExcluding(allLines, partNumber)
	}

	itemName := description
	if itemName == "" {
		itemName = partNumber
	}
	if itemName == "" {
		return nil
	}

	totalStr, hasTotal := collected["total"]
	if !hasTotal || totalStr == "" {
		totalStr = collected["net"]
	}
	total, ok := primitives.ParseAmount(totalStr)
	if !ok {
		return nil
	}

	item := primitives.LineItem{
		ItemName:    itemName,
		Description: description,
		PartNumber:  partNumber,
		TotalAmount: total.Round(4),
		Quantity:    decimal.NewFromInt(1),
	}
	if priceStr, ok := collected["price"]; ok {
		if price, ok := primitives.ParseAmount(priceStr); ok {
			p := price.Round(4)
			item.UnitPrice = &p
		}
	}
	if qtyStr, ok := collected["qty"]; ok {
		if n, err := strconv.Atoi(qtyStr); err == nil && n > 0 {
			item.Quantity = decimal.NewFromInt(int64(n))
		}
	}

	var items []primitives.LineItem
	items = append(items, item)

	if depositStr, ok := collected["core_deposit"]; ok {
		if depositAmount, isDeposit := resolveCoreDeposit(allLines, depositStr, collectedAt["total"], hasTotal); isDeposit {
			items = append(items, primitives.LineItem{
				ItemName:    "Core Deposit",
				TotalAmount: depositAmount.Round(4),
				Quantity:    decimal.NewFromInt(1),
			})
		}
	}

	return items
}

// resolveCoreDeposit implements the "core deposit" rescan: the captured
// value is often actually a quantity; when it parses to <= 2 and a Total
// value was captured, look forward past the Total line for a standalone
// monetary line >= 2 and use that as the deposit amount instead.
func resolveCoreDeposit(allLines []string, depositStr string, totalLineIdx int, hasTotal bool) (decimal.Decimal, bool) {
	amount, ok := primitives.ParseAmount(depositStr)
	if !ok {
		return decimal.Zero, false
	}
	if amount.GreaterThan(decimal.NewFromInt(2)) || !hasTotal {
		return amount, true
	}
	for i := totalLineIdx + 1; i < len(allLines); i++ {
		trimmed := strings.TrimSpace(allLines[i])
		if trimmed == "" {
			continue
		}
		if !standaloneAmount.MatchString(trimmed) {
			continue
		}
		candidate, ok := primitives.ParseAmount(trimmed)
		if ok && candidate.GreaterThanOrEqual(decimal.NewFromInt(2)) {
			return candidate, true
		}
		break
	}
	return amount, true
}

// firstAlphaLineExcluding returns the first substantive alphabetic line in
// allLines that is not exclude, used when no description was captured by
// label pairing.
func firstAlphaLineExcluding(allLines []string, exclude string) string {
	for _, raw := range allLines {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || trimmed == exclude {
			continue
		}
		if pureAlphaLine.MatchString(trimmed) && len(trimmed) > 2 {
			return trimmed
		}
	}
	return ""
}
