package core

// codec.go converts between raw positional spreadsheet rows and typed,
// identifier-keyed records.
//
// Coercion handles the messy reality of spreadsheet cells:
//   - numbers may carry thousands separators or currency symbols
//   - dates arrive in several calendar formats
//   - booleans may be real booleans or the strings TRUE/true/True
//
// Encoding is intentionally asymmetric with decoding for booleans: cells
// are written as exact-case "TRUE"/"FALSE" (the store-side convention)
// while reads accept any case.

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when parsing a date cell.
// ISO forms first since they are unambiguous.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// DecodeRow converts a raw positional row into a Record using the column
// schema. Cells beyond the end of the raw row decode as absent. The row
// number becomes the record's identity.
func DecodeRow(raw []any, rowNumber int, cols []Column) Record {
	data := make(map[string]any, len(cols))

	for i, col := range cols {
		var cell any
		if i < len(raw) {
			cell = raw[i]
		}

		switch col.Type {
		case TypeNumber:
			data[col.ID] = decodeNumber(cell)
		case TypeBoolean:
			data[col.ID] = decodeBoolean(cell)
		case TypeDate:
			data[col.ID] = decodeDate(cell)
		case TypeText:
			data[col.ID] = decodeText(cell)
		default:
			data[col.ID] = decodeText(cell)
		}
	}

	return Record{
		ID:        strconv.Itoa(rowNumber),
		RowNumber: rowNumber,
		Data:      data,
	}
}

// EncodeRow formats a record's data as a raw row in schema column order.
// Absent and nil values encode as empty cells.
func EncodeRow(data map[string]any, cols []Column) []any {
	row := make([]any, len(cols))

	for i, col := range cols {
		value, ok := data[col.ID]
		if !ok || value == nil {
			row[i] = ""
			continue
		}

		switch col.Type {
		case TypeBoolean:
			if isTrue(value) {
				row[i] = "TRUE"
			} else {
				row[i] = "FALSE"
			}
		case TypeDate:
			row[i] = encodeDate(value)
		case TypeNumber:
			row[i] = encodeNumber(value)
		default:
			row[i] = fmt.Sprintf("%v", value)
		}
	}

	return row
}

// decodeText preserves string cells verbatim so text values round-trip
// exactly, including any surrounding whitespace. Non-string cells take
// the normalized string form.
func decodeText(cell any) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return cellString(cell)
}

// decodeNumber parses a numeric cell, returning nil for empty or
// unparseable input rather than an error.
func decodeNumber(cell any) any {
	switch v := cell.(type) {
	case nil:
		return nil
	case float64:
		return v
	case int:
		return float64(v)
	}

	s := cellString(cell)
	if s == "" {
		return nil
	}
	n, err := ParseNumber(s)
	if err != nil {
		return nil
	}
	return n
}

// decodeBoolean is true iff the cell is a boolean true or the string
// "true" in any case. Everything else, including empty, is false.
func decodeBoolean(cell any) bool {
	if b, ok := cell.(bool); ok {
		return b
	}
	return strings.EqualFold(cellString(cell), "true")
}

// decodeDate parses a date cell at day granularity, nil if empty or
// unparseable.
func decodeDate(cell any) any {
	s := cellString(cell)
	if s == "" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil
	}
	return t
}

// encodeDate renders a date value as an ISO calendar date. Time-of-day
// is not preserved; round-trips hold at day granularity.
func encodeDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format("2006-01-02")
	case string:
		if t, err := ParseDate(v); err == nil {
			return t.Format("2006-01-02")
		}
		return v
	}
	return ""
}

// encodeNumber renders a numeric value without a trailing ".0" for
// whole floats, so an appended "30" does not come back as "30.0".
func encodeNumber(value any) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%v", value)
}

// ParseNumber parses a numeric string, tolerating thousands separators
// and a leading currency symbol.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}

// ParseDate parses a calendar date string against the supported layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

// isTrue reports whether a boolean-column value should encode as TRUE.
func isTrue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

// cellString normalizes a raw cell to its trimmed string form.
func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", cell))
}
