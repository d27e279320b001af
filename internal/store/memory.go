package store

// memory.go provides an in-memory Store used by tests and by local
// development when no Google credentials are configured. It mirrors the
// position semantics of the real backend: append targets the first row
// after the last populated one, and delete shifts later rows up.

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// MemStore is an in-memory Store keyed by spreadsheet ID and tab name.
// The zero value is not usable; call NewMemStore.
type MemStore struct {
	mu     sync.Mutex
	sheets map[string]map[string][][]any // spreadsheetID -> tab -> rows (index 0 = row 1)

	// ForceErr, when set for an op name ("exists", "read", "append",
	// "write", "delete"), makes that operation fail. Test hook only.
	ForceErr map[string]error
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		sheets:   make(map[string]map[string][][]any),
		ForceErr: make(map[string]error),
	}
}

// Seed replaces the contents of a tab, creating the spreadsheet and tab
// as needed. Row 1 is conventionally the header.
func (m *MemStore) Seed(spreadsheetID, tabName string, rows [][]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tabs, ok := m.sheets[spreadsheetID]
	if !ok {
		tabs = make(map[string][][]any)
		m.sheets[spreadsheetID] = tabs
	}
	copied := make([][]any, len(rows))
	for i, row := range rows {
		copied[i] = append([]any(nil), row...)
	}
	tabs[tabName] = copied
}

// Rows returns a copy of a tab's rows, for test assertions.
func (m *MemStore) Rows(spreadsheetID, tabName string) [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.sheets[spreadsheetID][tabName]
	copied := make([][]any, len(rows))
	for i, row := range rows {
		copied[i] = append([]any(nil), row...)
	}
	return copied
}

func (m *MemStore) RangeExists(ctx context.Context, spreadsheetID, tabName string) (bool, error) {
	if err := m.forced("exists"); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tabs, ok := m.sheets[spreadsheetID]
	if !ok {
		return false, fmt.Errorf("spreadsheet %q: %w", spreadsheetID, ErrNotFound)
	}
	_, ok = tabs[tabName]
	return ok, nil
}

func (m *MemStore) ReadRange(ctx context.Context, spreadsheetID, rangeExpr string) ([][]any, error) {
	if err := m.forced("read"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tabName, startRow, err := parseRangeExpr(rangeExpr)
	if err != nil {
		return nil, err
	}
	rows, err := m.tab(spreadsheetID, tabName)
	if err != nil {
		return nil, err
	}
	if startRow > len(rows) {
		return nil, nil
	}

	out := make([][]any, 0, len(rows)-startRow+1)
	for _, row := range rows[startRow-1:] {
		out = append(out, append([]any(nil), row...))
	}
	return out, nil
}

func (m *MemStore) AppendRow(ctx context.Context, spreadsheetID, tabName string, row []any) error {
	if err := m.forced("append"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, err := m.tab(spreadsheetID, tabName)
	if err != nil {
		return err
	}
	m.sheets[spreadsheetID][tabName] = append(rows, append([]any(nil), row...))
	return nil
}

func (m *MemStore) WriteRow(ctx context.Context, spreadsheetID, tabName string, rowNumber int, row []any) error {
	if err := m.forced("write"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, err := m.tab(spreadsheetID, tabName)
	if err != nil {
		return err
	}
	if rowNumber < 1 {
		return fmt.Errorf("row %d out of range", rowNumber)
	}
	// Writing past the end extends the tab, matching the real backend's
	// update semantics.
	for len(rows) < rowNumber {
		rows = append(rows, nil)
	}
	rows[rowNumber-1] = append([]any(nil), row...)
	m.sheets[spreadsheetID][tabName] = rows
	return nil
}

func (m *MemStore) DeleteRow(ctx context.Context, spreadsheetID, tabName string, rowNumber int) error {
	if err := m.forced("delete"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, err := m.tab(spreadsheetID, tabName)
	if err != nil {
		return err
	}
	if rowNumber < 1 || rowNumber > len(rows) {
		return fmt.Errorf("row %d: %w", rowNumber, ErrNotFound)
	}
	m.sheets[spreadsheetID][tabName] = append(rows[:rowNumber-1], rows[rowNumber:]...)
	return nil
}

// tab returns the rows of a tab; the caller must hold m.mu.
func (m *MemStore) tab(spreadsheetID, tabName string) ([][]any, error) {
	tabs, ok := m.sheets[spreadsheetID]
	if !ok {
		return nil, fmt.Errorf("spreadsheet %q: %w", spreadsheetID, ErrNotFound)
	}
	rows, ok := tabs[tabName]
	if !ok {
		return nil, fmt.Errorf("tab %q: %w", tabName, ErrNotFound)
	}
	return rows, nil
}

func (m *MemStore) forced(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ForceErr[op]
}

// parseRangeExpr extracts the tab name and 1-based starting row from an
// A1 range expression like "Tab!A2:Z" or "Tab!1:1". Only the subset of
// A1 notation the engine emits is supported.
func parseRangeExpr(rangeExpr string) (tabName string, startRow int, err error) {
	tabName, cells, ok := strings.Cut(rangeExpr, "!")
	if !ok {
		return "", 0, fmt.Errorf("malformed range %q", rangeExpr)
	}

	first, _, _ := strings.Cut(cells, ":")
	digits := strings.TrimLeft(first, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	if digits == "" {
		return tabName, 1, nil
	}
	startRow, err = strconv.Atoi(digits)
	if err != nil || startRow < 1 {
		return "", 0, fmt.Errorf("malformed range %q", rangeExpr)
	}
	return tabName, startRow, nil
}
