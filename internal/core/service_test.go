package core

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/JonMunkholm/sheetdb/internal/store"
)

// newPeopleTable registers a config over the seeded People tab and
// tightens its schema to text/number/boolean.
func newPeopleTable(t *testing.T, ms *store.MemStore) (*Service, TableConfig) {
	t.Helper()

	reg := NewRegistry()
	cfg, err := reg.Create(context.Background(), ms, "people", "sheet-1", "People")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	cfg, err = reg.Update(cfg.ID, "", []Column{
		{Type: TypeText, Required: true},
		{Type: TypeNumber},
		{Type: TypeBoolean},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	return NewService(reg), cfg
}

func TestServiceListRows(t *testing.T) {
	ms := store.NewMemStore()
	ms.Seed("sheet-1", "People", [][]any{
		{"Name", "Age", "Active"},
		{"Ann", "30", "TRUE"},
		{"Bob", "41", "FALSE"},
	})
	svc, cfg := newPeopleTable(t, ms)

	records, err := svc.ListRows(context.Background(), ms, cfg.ID)
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].RowNumber != 2 || records[1].RowNumber != 3 {
		t.Errorf("row numbers %d, %d; want 2, 3", records[0].RowNumber, records[1].RowNumber)
	}

	want := map[string]any{"name": "Ann", "age": float64(30), "active": true}
	if !reflect.DeepEqual(records[0].Data, want) {
		t.Errorf("got %#v, want %#v", records[0].Data, want)
	}
}

func TestServiceListRowsEmptyTable(t *testing.T) {
	ms := store.NewMemStore()
	ms.Seed("sheet-1", "People", [][]any{
		{"Name", "Age", "Active"},
	})
	svc, cfg := newPeopleTable(t, ms)

	records, err := svc.ListRows(context.Background(), ms, cfg.ID)
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestServiceUnknownConfig(t *testing.T) {
	ms := store.NewMemStore()
	svc := NewService(NewRegistry())

	_, err := svc.ListRows(context.Background(), ms, "missing")
	var nferr *NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestServiceAppendRow(t *testing.T) {
	ms := store.NewMemStore()
	ms.Seed("sheet-1", "People", [][]any{
		{"Name", "Age", "Active"},
	})
	svc, cfg := newPeopleTable(t, ms)

	record, err := svc.AppendRow(context.Background(), ms, cfg.ID,
		map[string]any{"name": "Ann", "age": "30", "active": "true"})
	if err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	// First data row of a header-only tab lands at row 2.
	if record.RowNumber != 2 || record.ID != "2" {
		t.Errorf("got identity (%q, %d), want (\"2\", 2)", record.ID, record.RowNumber)
	}

	rows := ms.Rows("sheet-1", "People")
	if len(rows) != 2 {
		t.Fatalf("store holds %d rows, want 2", len(rows))
	}
	want := []any{"Ann", "30", "TRUE"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("store received %#v, want %#v", rows[1], want)
	}
}

func TestServiceAppendRowValidationShortCircuits(t *testing.T) {
	ms := store.NewMemStore()
	ms.Seed("sheet-1", "People", [][]any{
		{"Name", "Age", "Active"},
	})
	svc, cfg := newPeopleTable(t, ms)

	_, err := svc.AppendRow(context.Background(), ms, cfg.ID,
		map[string]any{"age": "not a number"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if verr.Fields["name"] != "Name is required" {
		t.Errorf("missing required-field error: %v", verr.Fields)
	}
	if verr.Fields["age"] != "Age must be a number" {
		t.Errorf("missing type error: %v", verr.Fields)
	}

	// Validation failures never reach the store.
	if rows := ms.Rows("sheet-1", "People"); len(rows) != 1 {
		t.Errorf("store was touched: %d rows", len(rows))
	}
}

func TestServiceUpdateRow(t *testing.T) {
	ms := store.NewMemStore()
	ms.Seed("sheet-1", "People", [][]any{
		{"Name", "Age", "Active"},
		{"Ann", "30", "TRUE"},
	})
	svc, cfg := newPeopleTable(t, ms)

	record, err := svc.UpdateRow(context.Background(), ms, cfg.ID, 2,
		map[string]any{"name": "Ann", "age": "31", "active": "false"})
	if err != nil {
		t.Fatalf("UpdateRow: %v", err)
	}
	if record.RowNumber != 2 {
		t.Errorf("got row %d, want 2", record.RowNumber)
	}

	rows := ms.Rows("sheet-1", "People")
	want := []any{"Ann", "31", "FALSE"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("store holds %#v, want %#v", rows[1], want)
	}
}

func TestServiceUpdateRowRejectsHeaderRow(t *testing.T) {
	ms := store.NewMemStore()
	ms.Seed("sheet-1", "People", [][]any{
		{"Name", "Age", "Active"},
	})
	svc, cfg := newPeopleTable(t, ms)

	for _, row := range []int{0, 1, -3} {
		_, err := svc.UpdateRow(context.Background(), ms, cfg.ID, row,
			map[string]any{"name": "Ann"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("row %d: got %v, want ValidationError", row, err)
		}
	}
}

// Deleting a row shifts every later record's identity down by one: the
// former row-3 record is subsequently listed at row 2.
func TestServiceDeleteRowShiftsIdentity(t *testing.T) {
	ms := store.NewMemStore()
	ms.Seed("sheet-1", "People", [][]any{
		{"Name", "Age", "Active"},
		{"Ann", "30", "TRUE"},
		{"Bob", "41", "FALSE"},
		{"Cat", "29", "TRUE"},
	})
	svc, cfg := newPeopleTable(t, ms)
	ctx := context.Background()

	if err := svc.DeleteRow(ctx, ms, cfg.ID, 2); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}

	records, err := svc.ListRows(ctx, ms, cfg.ID)
	if err != nil {
		t.Fatalf("ListRows: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].RowNumber != 2 || records[0].Data["name"] != "Bob" {
		t.Errorf("former row 3 should now be row 2, got %+v", records[0])
	}
	if records[1].RowNumber != 3 || records[1].Data["name"] != "Cat" {
		t.Errorf("former row 4 should now be row 3, got %+v", records[1])
	}
}

func TestServiceStoreFailurePropagation(t *testing.T) {
	ms := store.NewMemStore()
	ms.Seed("sheet-1", "People", [][]any{
		{"Name", "Age", "Active"},
	})
	svc, cfg := newPeopleTable(t, ms)
	ctx := context.Background()

	tests := []struct {
		name       string
		op         string
		forced     error
		call       func() error
		wantAccess bool
	}{
		{
			name:   "access denied on read",
			op:     "read",
			forced: fmt.Errorf("read range: %w", store.ErrAccessDenied),
			call: func() error {
				_, err := svc.ListRows(ctx, ms, cfg.ID)
				return err
			},
			wantAccess: true,
		},
		{
			name:   "upstream failure on append",
			op:     "append",
			forced: errors.New("rpc failure"),
			call: func() error {
				_, err := svc.AppendRow(ctx, ms, cfg.ID, map[string]any{"name": "Ann"})
				return err
			},
		},
		{
			name:   "upstream failure on delete",
			op:     "delete",
			forced: errors.New("rpc failure"),
			call: func() error {
				return svc.DeleteRow(ctx, ms, cfg.ID, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms.ForceErr[tt.op] = tt.forced
			defer delete(ms.ForceErr, tt.op)

			err := tt.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantAccess {
				var aerr *AccessError
				if !errors.As(err, &aerr) {
					t.Errorf("got %v, want AccessError", err)
				}
			} else {
				var uerr *UpstreamError
				if !errors.As(err, &uerr) {
					t.Errorf("got %v, want UpstreamError", err)
				}
			}
		})
	}
}
