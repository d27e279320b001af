package core

// service.go sequences store operations for record-level CRUD.
//
// Operating constraint: the backend offers no transactions, no locks,
// and no row identity beyond physical position. Concurrent writers to
// the same tab can interleave arbitrarily, so row-number identities are
// only reliable under a single-writer assumption. The service does not
// attempt to detect or repair drift; it documents it.

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/JonMunkholm/sheetdb/internal/store"
)

// Service implements list/append/update/delete of typed records for a
// registered table configuration. It holds no per-operation state; all
// shared state lives in the Registry.
type Service struct {
	registry *Registry
}

// NewService creates a service over the given registry.
func NewService(registry *Registry) *Service {
	return &Service{registry: registry}
}

// Registry returns the config registry this service operates on.
func (s *Service) Registry() *Registry {
	return s.registry
}

// ListRows fetches and decodes every data row of the configured tab.
// Row numbers start at 2 since row 1 holds the headers.
func (s *Service) ListRows(ctx context.Context, st store.Store, configID string) ([]Record, error) {
	cfg, err := s.resolve(configID)
	if err != nil {
		return nil, err
	}

	rows, err := st.ReadRange(ctx, cfg.SheetID, DataRange(cfg.TabName))
	if err != nil {
		return nil, classifyStoreErr("list rows", err)
	}

	records := make([]Record, 0, len(rows))
	for i, raw := range rows {
		rowNumber := i + 2
		if len(raw) > len(cfg.Columns) {
			// Data wider than the header span is unreachable through
			// the schema; surface it rather than dropping it silently.
			slog.Warn("row wider than schema, extra cells ignored",
				"config_id", cfg.ID,
				"row", rowNumber,
				"cells", len(raw),
				"columns", len(cfg.Columns),
			)
		}
		records = append(records, DecodeRow(raw, rowNumber, cfg.Columns))
	}
	return records, nil
}

// AppendRow validates and appends a record, letting the store pick the
// target row. The reported row number comes from re-reading the tab's
// populated row count, which is not atomic with the append: a concurrent
// writer can make the reported identity wrong.
func (s *Service) AppendRow(ctx context.Context, st store.Store, configID string, data map[string]any) (Record, error) {
	cfg, err := s.resolve(configID)
	if err != nil {
		return Record{}, err
	}

	if errs := ValidateRecord(data, cfg.Columns); len(errs) > 0 {
		return Record{}, &ValidationError{Fields: errs}
	}

	row := EncodeRow(data, cfg.Columns)
	if err := st.AppendRow(ctx, cfg.SheetID, cfg.TabName, row); err != nil {
		return Record{}, classifyStoreErr("append row", err)
	}

	rowNumber, err := s.countRows(ctx, st, cfg)
	if err != nil {
		return Record{}, err
	}

	slog.Info("row appended", "config_id", cfg.ID, "row", rowNumber)
	return Record{
		ID:        strconv.Itoa(rowNumber),
		RowNumber: rowNumber,
		Data:      data,
	}, nil
}

// UpdateRow validates and overwrites the record at the given row number.
func (s *Service) UpdateRow(ctx context.Context, st store.Store, configID string, rowNumber int, data map[string]any) (Record, error) {
	cfg, err := s.resolve(configID)
	if err != nil {
		return Record{}, err
	}
	if rowNumber < 2 {
		return Record{}, &ValidationError{Fields: map[string]string{
			"rowNumber": fmt.Sprintf("row %d is not a data row", rowNumber),
		}}
	}

	if errs := ValidateRecord(data, cfg.Columns); len(errs) > 0 {
		return Record{}, &ValidationError{Fields: errs}
	}

	row := EncodeRow(data, cfg.Columns)
	if err := st.WriteRow(ctx, cfg.SheetID, cfg.TabName, rowNumber, row); err != nil {
		return Record{}, classifyStoreErr("update row", err)
	}

	slog.Info("row updated", "config_id", cfg.ID, "row", rowNumber)
	return Record{
		ID:        strconv.Itoa(rowNumber),
		RowNumber: rowNumber,
		Data:      data,
	}, nil
}

// DeleteRow removes the record at the given row number. Every record
// below it shifts up one row the moment the delete succeeds, so any row
// numbers the caller is still holding for later records go stale.
func (s *Service) DeleteRow(ctx context.Context, st store.Store, configID string, rowNumber int) error {
	cfg, err := s.resolve(configID)
	if err != nil {
		return err
	}
	if rowNumber < 2 {
		return &ValidationError{Fields: map[string]string{
			"rowNumber": fmt.Sprintf("row %d is not a data row", rowNumber),
		}}
	}

	if err := st.DeleteRow(ctx, cfg.SheetID, cfg.TabName, rowNumber); err != nil {
		return classifyStoreErr("delete row", err)
	}

	slog.Info("row deleted", "config_id", cfg.ID, "row", rowNumber)
	return nil
}

// resolve looks up a configuration or fails with *NotFoundError.
func (s *Service) resolve(configID string) (TableConfig, error) {
	cfg, ok := s.registry.Get(configID)
	if !ok {
		return TableConfig{}, &NotFoundError{Resource: "configuration", Key: configID}
	}
	return cfg, nil
}

// countRows reports the number of populated rows in the tab's first
// column, which is the row number of the most recent append.
func (s *Service) countRows(ctx context.Context, st store.Store, cfg TableConfig) (int, error) {
	rows, err := st.ReadRange(ctx, cfg.SheetID, CountRange(cfg.TabName))
	if err != nil {
		return 0, classifyStoreErr("count rows", err)
	}
	if len(rows) == 0 {
		return 1, nil
	}
	return len(rows), nil
}
