package normalize

import (
	"strings"
	"testing"
)

func TestNormalizeIdempotent(t *testing.T) {
	cases := []string{
		"",
		"ACME Corp\n123 Main St\nTotal: $l00.00\n",
		"Qty    Price     Total\n5 O5  12.50   62.50\n",
		" S12.34 trailing  \n",
		"price 1 234.56 today\n",
		"em—dash and en–dash\n",
	}
	for _, c := range cases {
		once := Normalize(c)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", c, once, twice)
		}
	}
}

func TestNormalizePreservesNewlineCount(t *testing.T) {
	cases := []string{
		"a\nb\nc",
		"\n\n\n",
		"no newlines at all",
		"line1\nline2   \nline3\t\n",
	}
	for _, c := range cases {
		got := Normalize(c)
		if strings.Count(got, "\n") != strings.Count(c, "\n") {
			t.Errorf("newline count changed for %q: got %q", c, got)
		}
	}
}

func TestDollarLMisread(t *testing.T) {
	got := Normalize("Total: $l00.00")
	if !strings.Contains(got, "$100.00") {
		t.Errorf("expected $l00.00 to become $100.00, got %q", got)
	}
}

func TestDigitOMisread(t *testing.T) {
	got := Normalize("Qty 5O5 units")
	if !strings.Contains(got, "505") {
		t.Errorf("expected 5O5 to become 505, got %q", got)
	}
}

func TestZeroWidthStripped(t *testing.T) {
	got := Normalize("a" + string(rune(0x200B)) + "b" + string(rune(0xFEFF)) + "c")
	if got != "abc" {
		t.Errorf("expected zero-width chars stripped, got %q", got)
	}
}

func TestTrailingWhitespaceTrimmedPerLine(t *testing.T) {
	got := Normalize("line one   \nline two\t\n")
	for _, line := range strings.Split(got, "\n") {
		if line != strings.TrimRight(line, " \t") {
			t.Errorf("line retained trailing whitespace: %q", line)
		}
	}
}
