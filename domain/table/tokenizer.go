package table

import "strings"

// RawTable is the unprocessed grid of cell strings straight out of
// tokenization, rows by cells. It is built once and never mutated.
type RawTable [][]string

// DefaultSeparator is used whenever detection cannot decide.
const DefaultSeparator = ','

var separatorCandidates = []rune{',', ';', '\t'}

// DetectSeparator inspects the first non-blank line of text and returns the
// candidate separator (comma, semicolon or tab) with the strictly highest
// occurrence count. Ties, an all-blank input and an empty input all fall back
// to the comma. Quoted occurrences are counted too; real-world exports are
// close enough to uniform for this to pick the right separator on the header
// row.
func DetectSeparator(text string) rune {
	line, ok := firstNonBlankLine(text)
	if !ok {
		return DefaultSeparator
	}

	best := DefaultSeparator
	bestCount := -1
	tied := false
	for _, candidate := range separatorCandidates {
		count := strings.Count(line, string(candidate))
		if count > bestCount {
			best = candidate
			bestCount = count
			tied = false
		} else if count == bestCount {
			tied = true
		}
	}
	if tied || bestCount == 0 {
		return DefaultSeparator
	}
	return best
}

// Parse splits raw delimited text into a RawTable using the detected
// separator. Lines are accepted with either bare or carriage-return line
// endings. Each non-blank line is scanned left to right with an
// inside-quoted-field flag:
//
//   - a double quote toggles the flag, unless it is immediately followed by
//     another quote while already inside a quoted field, in which case a
//     single literal quote is emitted and both characters are consumed
//   - the separator, outside quotes, terminates the current field
//   - anything else is appended to the current field
//
// After the scan every field gets one pass of surface cleanup: a matching
// pair of enclosing quotes is stripped, leftover doubled quotes collapse to
// one, and surrounding whitespace is trimmed. Blank input yields an empty
// table.
func Parse(text string) RawTable {
	return ParseWithSeparator(text, DetectSeparator(text))
}

// ParseWithSeparator behaves like Parse with a caller-chosen separator.
func ParseWithSeparator(text string, separator rune) RawTable {
	var rows RawTable
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := scanLine(line, separator)
		for i, field := range row {
			row[i] = cleanField(field)
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func firstNonBlankLine(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			return line, true
		}
	}
	return "", false
}

func scanLine(line string, separator rune) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped quote inside a quoted field.
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == separator && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(ch)
		}
	}
	// The trailing field completes the row even when empty.
	fields = append(fields, field.String())
	return fields
}

func cleanField(field string) string {
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		field = field[1 : len(field)-1]
	}
	field = strings.ReplaceAll(field, `""`, `"`)
	return strings.TrimSpace(field)
}
