package table

import (
	"reflect"
	"testing"
)

// TestDetectSeparator tests separator detection over the first non-blank line
func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected rune
	}{
		{"semicolons win", "x;y;z\n1;2;3", ';'},
		{"commas win", "a,b,c\n1,2,3", ','},
		{"tabs win", "a\tb\tc", '\t'},
		{"tie falls back to comma", "a,b;c", ','},
		{"no separator falls back to comma", "header", ','},
		{"empty input falls back to comma", "", ','},
		{"blank lines are skipped", "\n\n  \na;b;c", ';'},
		{"only first line counts", "a,b\n1;2;3;4;5", ','},
		{"quoted separators still count", `"a;b";c`, ';'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSeparator(tt.input); got != tt.expected {
				t.Errorf("DetectSeparator(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestParse tests quote-aware tokenization into a raw table
func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected RawTable
	}{
		{
			"plain comma rows",
			"a,b,c\n1,2,3",
			RawTable{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			"separator inside quotes is kept",
			"name,comment\nAna,\"liked it, a lot\"",
			RawTable{{"name", "comment"}, {"Ana", "liked it, a lot"}},
		},
		{
			"escaped quotes collapse to one",
			"c\n\"He said \"\"hi\"\", cool\"",
			RawTable{{"c"}, {`He said "hi", cool`}},
		},
		{
			"blank lines are dropped",
			"a,b\n\n1,2\n   \n",
			RawTable{{"a", "b"}, {"1", "2"}},
		},
		{
			"crlf line endings",
			"a;b\r\n1;2\r\n",
			RawTable{{"a", "b"}, {"1", "2"}},
		},
		{
			"fields are trimmed",
			"a; b ;c\n 1 ;2; 3",
			RawTable{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			"trailing empty field survives",
			"a,b,\n1,2,",
			RawTable{{"a", "b", ""}, {"1", "2", ""}},
		},
		{
			"blank input yields empty table",
			"\n  \n",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Parse(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

// TestParseWithSeparator tests that a forced separator overrides detection
func TestParseWithSeparator(t *testing.T) {
	got := ParseWithSeparator("a;b,c\n1;2,3", ',')
	expected := RawTable{{"a;b", "c"}, {"1;2", "3"}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ParseWithSeparator = %v, expected %v", got, expected)
	}
}

func TestCleanField(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"quoted"`, "quoted"},
		{`""`, ""},
		{`a ""b"" c`, `a "b" c`},
		{"  spaced  ", "spaced"},
		{`"`, `"`},
	}

	for _, tt := range tests {
		if got := cleanField(tt.input); got != tt.expected {
			t.Errorf("cleanField(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
