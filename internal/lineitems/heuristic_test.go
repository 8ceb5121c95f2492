package lineitems

import "testing"

func TestPerLineHeuristic(t *testing.T) {
	body := []string{
		"Bolt M6            4     2.50     10.00",
		"Not a line item at all",
		"Subtotal                          10.00",
	}
	items := PerLineHeuristic(body, nil)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d: %+v", len(items), items)
	}
}

func TestWholeDocumentFallback(t *testing.T) {
	allLines := []string{
		"Some Header Text",
		"Bolt M6            4     2.50     10.00",
		"Footer text",
	}
	items := WholeDocumentFallback(allLines, nil)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d: %+v", len(items), items)
	}
}
