package segment

import "testing"

func buildDoc() []string {
	lines := []string{
		"ACME Corp",
		"123 Main St",
		"Invoice #1001",
		"Description   Qty   Unit Price   Total",
	}
	for i := 0; i < 11; i++ {
		lines = append(lines, "Widget   1   10.00   10.00")
	}
	lines = append(lines,
		"Subtotal: $110.00",
		"Tax: $8.80",
		"Grand Total: $118.80",
		"Thank you for your business",
		"Payment terms: Net 30",
	)
	return lines
}

func TestSplitHeaderBodyFooter(t *testing.T) {
	lines := buildDoc()
	segs := Split(lines)

	if segs.HeaderEnd != 3 {
		t.Errorf("HeaderEnd = %d, want 3", segs.HeaderEnd)
	}
	if len(segs.Header) != 3 {
		t.Errorf("len(Header) = %d, want 3", len(segs.Header))
	}
	if segs.FooterStart <= segs.HeaderEnd {
		t.Errorf("FooterStart (%d) should be after HeaderEnd (%d)", segs.FooterStart, segs.HeaderEnd)
	}
	if len(segs.Body) == 0 {
		t.Errorf("expected a non-empty body")
	}
	if len(segs.Footer) == 0 {
		t.Errorf("expected a non-empty footer")
	}
	foundSubtotal := false
	for _, l := range segs.Footer {
		if l == "Subtotal: $110.00" {
			foundSubtotal = true
		}
	}
	if !foundSubtotal {
		t.Errorf("expected footer to contain the subtotal line, footer=%v", segs.Footer)
	}
}

func TestSplitShortDocumentDefaults(t *testing.T) {
	lines := []string{"Just one line with no structure"}
	segs := Split(lines)
	if segs.HeaderEnd > len(lines) || segs.FooterStart > len(lines) {
		t.Errorf("segment bounds out of range: %+v", segs)
	}
	if segs.FooterStart < segs.HeaderEnd {
		t.Errorf("footer start (%d) before header end (%d)", segs.FooterStart, segs.HeaderEnd)
	}
}

func TestSplitEmptyDocument(t *testing.T) {
	segs := Split(nil)
	if len(segs.Header) != 0 || len(segs.Body) != 0 || len(segs.Footer) != 0 {
		t.Errorf("expected all-empty segments for empty input, got %+v", segs)
	}
}
