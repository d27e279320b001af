// Package store defines the boundary to the remote spreadsheet backend
// and its implementations: a Google Sheets client for production and an
// in-memory store for tests and local development.
//
// The backend is position-addressed: rows and columns have no identity
// beyond their physical location, there are no transactions and no
// locks. Callers layer whatever row-number bookkeeping they need on top.
package store

import (
	"context"
	"errors"
)

// Sentinel errors implementations wrap so callers can classify failures
// with errors.Is without knowing the backend.
var (
	// ErrNotFound means the spreadsheet or tab does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied means the credential lacks permission on the
	// spreadsheet.
	ErrAccessDenied = errors.New("access denied")
)

// Store is an authenticated handle to the remote spreadsheet backend.
// Range expressions use A1 notation ("Tab!A2:Z"). Row numbers are
// 1-based physical positions.
type Store interface {
	// RangeExists reports whether the named tab exists in the spreadsheet.
	RangeExists(ctx context.Context, spreadsheetID, tabName string) (bool, error)

	// ReadRange returns the populated rows of a range. Cells are strings,
	// booleans, or numbers depending on backend rendering; absent trailing
	// cells are simply missing from the row slice.
	ReadRange(ctx context.Context, spreadsheetID, rangeExpr string) ([][]any, error)

	// AppendRow appends a row after the last populated row of the tab.
	// The backend picks the target row; the caller does not compute it.
	AppendRow(ctx context.Context, spreadsheetID, tabName string, row []any) error

	// WriteRow overwrites the row at the given 1-based row number.
	WriteRow(ctx context.Context, spreadsheetID, tabName string, rowNumber int, row []any) error

	// DeleteRow removes the row at the given 1-based row number. Every
	// later row shifts up one position.
	DeleteRow(ctx context.Context, spreadsheetID, tabName string, rowNumber int) error
}
