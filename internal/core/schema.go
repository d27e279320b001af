package core

// schema.go derives a typed column schema from a spreadsheet header row.
//
// Inference is deliberately shallow: it looks only at the header text,
// never at data rows. Every inferred column is text and optional; type
// and required flags are meant to be tightened by a later explicit edit.

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// InferColumns builds the ordered column schema for a header row.
//
// Identifiers are the header text lowercased with internal whitespace
// collapsed to single underscores. A blank header at position n (1-based)
// gets the identifier "column_n". When two headers normalize to the same
// identifier, later ones get a numeric suffix (_2, _3, ...) in positional
// order so identifiers stay unique within the table.
func InferColumns(headers []string) []Column {
	cols := make([]Column, 0, len(headers))
	used := make(map[string]bool, len(headers))

	for i, header := range headers {
		id := slugify(header)
		if id == "" {
			id = fmt.Sprintf("column_%d", i+1)
		}

		// A literal header like "a_2" can claim a suffix before the
		// duplicates do, so keep counting until the candidate is free.
		if used[id] {
			n := 2
			for used[fmt.Sprintf("%s_%d", id, n)] {
				n++
			}
			id = fmt.Sprintf("%s_%d", id, n)
		}
		used[id] = true

		cols = append(cols, Column{
			ID:       id,
			Header:   header,
			Type:     TypeText,
			Required: false,
		})
	}

	return cols
}

// slugify converts header text to a machine-safe identifier.
func slugify(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	return whitespaceRun.ReplaceAllString(s, "_")
}
