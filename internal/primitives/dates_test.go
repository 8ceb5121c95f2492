package primitives

import "testing"

func TestExtractDatesISO(t *testing.T) {
	lines := []string{
		"Invoice Date: 2024-03-15",
		"Due Date: 2024-04-14",
	}
	inv, due, txn := ExtractDates(lines)
	if inv == nil || *inv != "2024-03-15" {
		t.Errorf("invoice date = %v, want 2024-03-15", inv)
	}
	if due == nil || *due != "2024-04-14" {
		t.Errorf("due date = %v, want 2024-04-14", due)
	}
	if txn != nil {
		t.Errorf("transaction date = %v, want nil", txn)
	}
}

func TestExtractDatesAmbiguousNumericIsDayFirst(t *testing.T) {
	// 03/04/2024 is ambiguous; the documented heuristic always resolves
	// day-first, so this must be April 3rd, not March 4th.
	lines := []string{"Invoice Date: 03/04/2024"}
	inv, _, _ := ExtractDates(lines)
	if inv == nil || *inv != "2024-04-03" {
		t.Errorf("invoice date = %v, want 2024-04-03 (day-first heuristic)", inv)
	}
}

func TestExtractDatesLongForm(t *testing.T) {
	lines := []string{"Invoice Date: January 5, 2024"}
	inv, _, _ := ExtractDates(lines)
	if inv == nil || *inv != "2024-01-05" {
		t.Errorf("invoice date = %v, want 2024-01-05", inv)
	}
}

func TestExtractDatesLongFormReversed(t *testing.T) {
	lines := []string{"Date: 5 January 2024"}
	inv, _, _ := ExtractDates(lines)
	if inv == nil || *inv != "2024-01-05" {
		t.Errorf("invoice date = %v, want 2024-01-05", inv)
	}
}

func TestExtractDatesTwoDigitYearExpansion(t *testing.T) {
	lines := []string{"Invoice Date: 01/02/24"}
	inv, _, _ := ExtractDates(lines)
	if inv == nil || *inv != "2024-02-01" {
		t.Errorf("invoice date = %v, want 2024-02-01", inv)
	}
}

func TestExtractDatesGenericLabelDoesNotStealDueDate(t *testing.T) {
	lines := []string{
		"Invoice Date: 2024-03-15",
		"Due Date: 2024-04-14",
	}
	_, due, _ := ExtractDates(lines)
	if due == nil || *due != "2024-04-14" {
		t.Errorf("due date = %v, want 2024-04-14", due)
	}
}

func TestExtractDatesNoneFound(t *testing.T) {
	lines := []string{"No dates here at all"}
	inv, due, txn := ExtractDates(lines)
	if inv != nil || due != nil || txn != nil {
		t.Errorf("expected all nil, got inv=%v due=%v txn=%v", inv, due, txn)
	}
}
