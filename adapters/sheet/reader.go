package sheet

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/davidsmarcelino/nps-dashboard/internal/errors"
)

// Reader loads a local spreadsheet export as raw delimited text, so the
// tokenizer stays the single entry point of the pipeline regardless of the
// on-disk format. Text formats (.csv, .tsv, .txt) pass through verbatim;
// .xlsx workbooks are flattened from their first worksheet.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "text"
}

// NewReader creates a reader for the given file path.
func NewReader(filePath string) *Reader {
	fileType := "text"
	if strings.ToLower(filepath.Ext(filePath)) == ".xlsx" {
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// ReadText returns the file content as raw delimited text.
func (r *Reader) ReadText() (string, error) {
	switch strings.ToLower(filepath.Ext(r.filePath)) {
	case ".csv", ".tsv", ".txt", ".xlsx":
	default:
		return "", errors.UnsupportedFile(r.filePath)
	}

	if r.fileType == "xlsx" {
		return r.readWorkbookText()
	}

	content, err := os.ReadFile(r.filePath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read data file %s", r.filePath)
	}
	return string(content), nil
}

// readWorkbookText flattens the first worksheet into CSV text. Cells holding
// separators, quotes or line breaks are quoted with doubled-quote escaping so
// the tokenizer reconstructs them exactly.
func (r *Reader) readWorkbookText() (string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open workbook %s", r.filePath)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.InvalidInput("workbook has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", errors.Wrapf(err, "failed to read worksheet %s", sheets[0])
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(encodeCell(cell))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func encodeCell(cell string) string {
	if !strings.ContainsAny(cell, ",\"\n\r") {
		return cell
	}
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}
