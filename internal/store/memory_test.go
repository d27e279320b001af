package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestMemStoreRangeExists(t *testing.T) {
	ms := NewMemStore()
	ms.Seed("s1", "Tab", [][]any{{"Header"}})
	ctx := context.Background()

	ok, err := ms.RangeExists(ctx, "s1", "Tab")
	if err != nil || !ok {
		t.Errorf("got (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = ms.RangeExists(ctx, "s1", "Other")
	if err != nil || ok {
		t.Errorf("got (%v, %v), want (false, nil)", ok, err)
	}

	_, err = ms.RangeExists(ctx, "s2", "Tab")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMemStoreReadRange(t *testing.T) {
	ms := NewMemStore()
	ms.Seed("s1", "Tab", [][]any{
		{"Name", "Age"},
		{"Ann", "30"},
		{"Bob", "41"},
	})
	ctx := context.Background()

	tests := []struct {
		rangeExpr string
		want      int // row count
	}{
		{"Tab!1:1", 3}, // from row 1 to end; caller takes rows[0]
		{"Tab!A2:Z", 2},
		{"Tab!A1:A", 3},
		{"Tab!A4:Z", 0},
	}

	for _, tt := range tests {
		rows, err := ms.ReadRange(ctx, "s1", tt.rangeExpr)
		if err != nil {
			t.Errorf("ReadRange(%q): %v", tt.rangeExpr, err)
			continue
		}
		if len(rows) != tt.want {
			t.Errorf("ReadRange(%q): got %d rows, want %d", tt.rangeExpr, len(rows), tt.want)
		}
	}
}

func TestMemStoreAppendAndDeleteShift(t *testing.T) {
	ms := NewMemStore()
	ms.Seed("s1", "Tab", [][]any{{"Name"}})
	ctx := context.Background()

	for _, name := range []string{"Ann", "Bob", "Cat"} {
		if err := ms.AppendRow(ctx, "s1", "Tab", []any{name}); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}

	// Physical row 2 is Ann; deleting it shifts Bob and Cat up.
	if err := ms.DeleteRow(ctx, "s1", "Tab", 2); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}

	want := [][]any{{"Name"}, {"Bob"}, {"Cat"}}
	if got := ms.Rows("s1", "Tab"); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	if err := ms.DeleteRow(ctx, "s1", "Tab", 9); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestMemStoreWriteRow(t *testing.T) {
	ms := NewMemStore()
	ms.Seed("s1", "Tab", [][]any{{"Name"}, {"Ann"}})
	ctx := context.Background()

	if err := ms.WriteRow(ctx, "s1", "Tab", 2, []any{"Anna"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if got := ms.Rows("s1", "Tab")[1][0]; got != "Anna" {
		t.Errorf("got %v, want Anna", got)
	}

	// Writing past the end extends the tab.
	if err := ms.WriteRow(ctx, "s1", "Tab", 4, []any{"Dee"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	rows := ms.Rows("s1", "Tab")
	if len(rows) != 4 || rows[3][0] != "Dee" {
		t.Errorf("got %#v", rows)
	}
}

func TestParseRangeExpr(t *testing.T) {
	tests := []struct {
		rangeExpr string
		wantTab   string
		wantRow   int
		wantErr   bool
	}{
		{rangeExpr: "Tab!A2:Z", wantTab: "Tab", wantRow: 2},
		{rangeExpr: "Tab!1:1", wantTab: "Tab", wantRow: 1},
		{rangeExpr: "Tab!A1:A", wantTab: "Tab", wantRow: 1},
		{rangeExpr: "My Tab!A2:Z", wantTab: "My Tab", wantRow: 2},
		{rangeExpr: "Tab", wantErr: true},
		{rangeExpr: "Tab!A0:Z", wantErr: true},
	}

	for _, tt := range tests {
		tab, row, err := parseRangeExpr(tt.rangeExpr)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseRangeExpr(%q): expected error", tt.rangeExpr)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseRangeExpr(%q): %v", tt.rangeExpr, err)
			continue
		}
		if tab != tt.wantTab || row != tt.wantRow {
			t.Errorf("parseRangeExpr(%q) = (%q, %d), want (%q, %d)",
				tt.rangeExpr, tab, row, tt.wantTab, tt.wantRow)
		}
	}
}
