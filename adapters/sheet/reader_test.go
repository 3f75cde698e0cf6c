package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/davidsmarcelino/nps-dashboard/internal/errors"
)

// TestReadTextPlainFile tests text formats passing through verbatim
func TestReadTextPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "survey.csv")
	content := "nome;nota\nAna;9\nBruno;3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewReader(path).ReadText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != content {
		t.Errorf("ReadText = %q, expected verbatim content", got)
	}
}

// TestReadTextUnsupportedExtension tests the extension allow-list
func TestReadTextUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "survey.pdf")
	if err := os.WriteFile(path, []byte("whatever"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewReader(path).ReadText()
	if err == nil {
		t.Fatal("expected error for .pdf file")
	}
	if errors.GetCode(err) != errors.CodeUnsupportedFile {
		t.Errorf("error code = %s, expected UNSUPPORTED_FILE", errors.GetCode(err))
	}
}

// TestReadTextMissingFile tests the missing-file path
func TestReadTextMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.csv")).ReadText(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestReadTextWorkbook tests flattening an xlsx workbook into CSV text
func TestReadTextWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "survey.xlsx")

	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	rows := [][]interface{}{
		{"cliente", "nota de 0 a 10", "comentario"},
		{"Ana", 9, "gostei, muito"},
		{"Bruno", 3, `disse "ruim"`},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	got, err := NewReader(path).ReadText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "cliente,nota de 0 a 10,comentario" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `Ana,9,"gostei, muito"` {
		t.Errorf("row 1 = %q, expected quoted comma cell", lines[1])
	}
	if lines[2] != `Bruno,3,"disse ""ruim"""` {
		t.Errorf("row 2 = %q, expected doubled-quote escaping", lines[2])
	}
}

func TestEncodeCell(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"two\nlines", "\"two\nlines\""},
	}

	for _, tt := range tests {
		if got := encodeCell(tt.input); got != tt.expected {
			t.Errorf("encodeCell(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
