package core

// registry.go owns the set of table configurations for the process.
//
// The registry is plain in-memory state with no durability beyond the
// process lifetime. It is shared across all requests, so every mutation
// goes through a single mutex. Two configurations may alias the same
// (sheetId, tabName) pair; they are independent and never deduplicated.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/sheetdb/internal/store"
	"github.com/google/uuid"
)

// Registry holds registered table configurations keyed by ID, preserving
// insertion order for listing. Obtain one with NewRegistry and pass it
// to whatever needs it; there is no package-level instance.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]TableConfig
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		configs: make(map[string]TableConfig),
	}
}

// Create verifies the tab exists, infers a column schema from its header
// row, and registers the resulting configuration.
//
// Fails with *NotFoundError if the spreadsheet or tab is absent and with
// *AccessError if the store handle cannot read the spreadsheet. Nothing
// is persisted on failure.
func (r *Registry) Create(ctx context.Context, st store.Store, name, sheetID, tabName string) (TableConfig, error) {
	exists, err := st.RangeExists(ctx, sheetID, tabName)
	if err != nil {
		return TableConfig{}, classifyStoreErr("verify tab", err)
	}
	if !exists {
		return TableConfig{}, &NotFoundError{Resource: "tab", Key: fmt.Sprintf("%s in %s", tabName, sheetID)}
	}

	rows, err := st.ReadRange(ctx, sheetID, HeaderRange(tabName))
	if err != nil {
		return TableConfig{}, classifyStoreErr("read header row", err)
	}

	var headers []string
	if len(rows) > 0 {
		headers = make([]string, len(rows[0]))
		for i, cell := range rows[0] {
			headers[i] = cellString(cell)
		}
	}

	now := time.Now().UTC()
	cfg := TableConfig{
		ID:        uuid.NewString(),
		Name:      name,
		SheetID:   sheetID,
		TabName:   tabName,
		Columns:   InferColumns(headers),
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.configs[cfg.ID] = cfg
	r.order = append(r.order, cfg.ID)
	r.mu.Unlock()

	slog.Info("table configuration created",
		"config_id", cfg.ID,
		"name", cfg.Name,
		"tab", cfg.TabName,
		"columns", len(cfg.Columns),
	)
	return cfg, nil
}

// Update replaces a configuration's name and column typing. This is the
// explicit edit path for tightening inferred schemas: types and required
// flags come from the caller, but the column count must match so the
// positional link to the physical range is preserved. Column IDs and
// headers keep their inferred values.
func (r *Registry) Update(id, name string, columns []Column) (TableConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.configs[id]
	if !ok {
		return TableConfig{}, &NotFoundError{Resource: "configuration", Key: id}
	}

	if len(columns) != len(cfg.Columns) {
		return TableConfig{}, &ValidationError{Fields: map[string]string{
			"columns": fmt.Sprintf("expected %d columns, got %d", len(cfg.Columns), len(columns)),
		}}
	}
	for i, col := range columns {
		if !col.Type.Valid() {
			return TableConfig{}, &ValidationError{Fields: map[string]string{
				cfg.Columns[i].ID: fmt.Sprintf("unknown column type %q", col.Type),
			}}
		}
	}

	if name != "" {
		cfg.Name = name
	}
	// Configs handed out by Get and List share the stored backing array;
	// edit a copy so those snapshots stay stable for concurrent readers.
	edited := make([]Column, len(cfg.Columns))
	copy(edited, cfg.Columns)
	for i := range edited {
		edited[i].Type = columns[i].Type
		edited[i].Required = columns[i].Required
	}
	cfg.Columns = edited
	cfg.UpdatedAt = time.Now().UTC()
	r.configs[id] = cfg

	slog.Info("table configuration updated", "config_id", cfg.ID, "name", cfg.Name)
	return cfg, nil
}

// List returns all registered configurations in insertion order.
func (r *Registry) List() []TableConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TableConfig, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.configs[id])
	}
	return out
}

// Get returns a configuration by ID.
func (r *Registry) Get(id string) (TableConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.configs[id]
	return cfg, ok
}

// Delete removes a configuration. The underlying spreadsheet data is
// untouched. Returns false if the ID was not registered.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.configs[id]; !ok {
		return false
	}
	delete(r.configs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Count returns the number of registered configurations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.configs)
}

// classifyStoreErr wraps a store failure in the matching taxonomy error.
func classifyStoreErr(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrAccessDenied):
		return &AccessError{Op: op, Err: err}
	case errors.Is(err, store.ErrNotFound):
		return &NotFoundError{Resource: "range", Key: err.Error()}
	default:
		return &UpstreamError{Op: op, Err: err}
	}
}
