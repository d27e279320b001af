// Package core provides the business logic for spreadsheet-backed tables.
// This package has no HTTP dependencies and can be used by any frontend.
package core

import (
	"time"
)

// ColumnType represents the expected data type for a table column.
type ColumnType string

const (
	TypeText    ColumnType = "text"
	TypeNumber  ColumnType = "number"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
)

// Valid reports whether t is one of the known column types.
func (t ColumnType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeDate, TypeBoolean:
		return true
	}
	return false
}

// Column defines one logical table column mapped onto a physical
// spreadsheet column. The mapping is positional: the i-th Column in a
// TableConfig corresponds to the i-th cell of every row in the range.
// That link breaks if the header row is edited out-of-band.
type Column struct {
	ID       string     `json:"id"`       // machine-safe slug derived from Header
	Header   string     `json:"header"`   // original header cell text
	Type     ColumnType `json:"type"`     // text, number, date, or boolean
	Required bool       `json:"required"` // reject writes with an empty value
}

// TableConfig is a registered mapping of a spreadsheet tab to a typed
// column schema. Column IDs and headers are fixed at creation; types and
// required flags can be tightened later through the registry.
type TableConfig struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SheetID   string    `json:"sheetId"`
	TabName   string    `json:"tabName"`
	Columns   []Column  `json:"columns"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Record is the typed decoding of one data row. Its identity is the
// physical row number (row 1 is the header, so data starts at row 2).
// Deleting or inserting rows above it changes that identity: records
// are only stable under a single-writer assumption.
type Record struct {
	ID        string         `json:"id"` // string form of RowNumber
	RowNumber int            `json:"rowNumber"`
	Data      map[string]any `json:"data"`
}

// HeaderRange is the A1 expression for the header row of a tab.
func HeaderRange(tabName string) string {
	return tabName + "!1:1"
}

// DataRange is the A1 expression covering all data rows of a tab.
func DataRange(tabName string) string {
	return tabName + "!A2:Z"
}

// CountRange is the A1 expression for the first column of a tab,
// used to count populated rows after an append.
func CountRange(tabName string) string {
	return tabName + "!A1:A"
}
