package table

import (
	"fmt"
	"strings"
)

// Record is one normalized data row keyed by column name. Values always hold
// a string (empty when the source cell was absent). The ID is a synthetic
// row identifier assigned at creation, used only for traceability.
type Record struct {
	ID     string
	Values map[string]string
}

// Table is an ordered sequence of Records sharing one column set. Columns
// preserves the source header order; Records preserves the source row order.
type Table struct {
	Columns []string
	Records []Record
}

// Empty reports whether the table carries no usable records.
func (t Table) Empty() bool {
	return len(t.Records) == 0
}

// BuildRecords converts a RawTable into keyed records. The first raw row is
// the header; every header cell is trimmed and an empty cell is replaced by a
// positional placeholder ("coluna_<n>", 1-based). Fewer than two rows, or a
// header with no usable name at all, yields an empty table. Data rows shorter
// than the header are right-padded with empty strings; excess cells are
// ignored. Duplicate header names collapse to one column, keeping the first
// position in the order and the last cell value, mirroring how spreadsheet
// exports resolve them.
func BuildRecords(raw RawTable) Table {
	if len(raw) < 2 {
		return Table{}
	}

	header := raw[0]
	named := false
	positions := make([]string, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("coluna_%d", i+1)
		} else {
			named = true
		}
		positions[i] = name
	}
	if !named {
		return Table{}
	}

	seen := make(map[string]bool, len(positions))
	columns := make([]string, 0, len(positions))
	for _, name := range positions {
		if !seen[name] {
			seen[name] = true
			columns = append(columns, name)
		}
	}

	records := make([]Record, 0, len(raw)-1)
	for n, row := range raw[1:] {
		values := make(map[string]string, len(columns))
		for _, name := range columns {
			values[name] = ""
		}
		for i, name := range positions {
			if i < len(row) {
				values[name] = row[i]
			}
		}
		records = append(records, Record{
			ID:     fmt.Sprintf("row_%d", n+1),
			Values: values,
		})
	}

	return Table{Columns: columns, Records: records}
}

// Clean drops records whose values are all blank after trimming and re-trims
// every retained value, so nothing downstream ever sees an untrimmed cell.
// Record IDs are preserved. Clean is idempotent.
func Clean(t Table) Table {
	cleaned := Table{Columns: t.Columns}
	for _, record := range t.Records {
		trimmed := make(map[string]string, len(record.Values))
		blank := true
		for name, value := range record.Values {
			value = strings.TrimSpace(value)
			trimmed[name] = value
			if value != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		cleaned.Records = append(cleaned.Records, Record{ID: record.ID, Values: trimmed})
	}
	return cleaned
}
