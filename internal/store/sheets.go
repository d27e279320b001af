package store

// sheets.go implements Store against the Google Sheets v4 API.
//
// Append uses the API's own append semantics (the service locates the
// next empty row), and delete issues a DeleteDimension batch update,
// which is what shifts later rows up. Both behaviors are load-bearing
// for the row-number identity model documented in internal/core.

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore is a Store backed by an authenticated Google Sheets client.
type SheetsStore struct {
	svc *sheets.Service
}

// NewSheetsStore wraps an already-constructed sheets service.
func NewSheetsStore(svc *sheets.Service) *SheetsStore {
	return &SheetsStore{svc: svc}
}

// RangeExists checks the spreadsheet's tab list for the given title.
func (s *SheetsStore) RangeExists(ctx context.Context, spreadsheetID, tabName string) (bool, error) {
	resp, err := s.svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return false, classify("get spreadsheet", err)
	}
	for _, sh := range resp.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tabName {
			return true, nil
		}
	}
	return false, nil
}

func (s *SheetsStore) ReadRange(ctx context.Context, spreadsheetID, rangeExpr string) ([][]any, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, rangeExpr).Context(ctx).Do()
	if err != nil {
		return nil, classify("read range", err)
	}
	rows := make([][]any, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = row
	}
	return rows, nil
}

func (s *SheetsStore) AppendRow(ctx context.Context, spreadsheetID, tabName string, row []any) error {
	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := s.svc.Spreadsheets.Values.Append(spreadsheetID, tabName+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return classify("append row", err)
	}
	return nil
}

func (s *SheetsStore) WriteRow(ctx context.Context, spreadsheetID, tabName string, rowNumber int, row []any) error {
	vr := &sheets.ValueRange{Values: [][]any{row}}
	rangeExpr := fmt.Sprintf("%s!A%d", tabName, rowNumber)
	_, err := s.svc.Spreadsheets.Values.Update(spreadsheetID, rangeExpr, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return classify("write row", err)
	}
	return nil
}

// DeleteRow removes the physical row via a DeleteDimension request,
// which requires the tab's numeric sheet ID rather than its title.
func (s *SheetsStore) DeleteRow(ctx context.Context, spreadsheetID, tabName string, rowNumber int) error {
	sheetID, err := s.sheetIDByTitle(ctx, spreadsheetID, tabName)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowNumber - 1), // API indices are 0-based
					EndIndex:   int64(rowNumber),
				},
			},
		}},
	}

	if _, err := s.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return classify("delete row", err)
	}
	return nil
}

// sheetIDByTitle resolves a tab title to its numeric sheet ID.
func (s *SheetsStore) sheetIDByTitle(ctx context.Context, spreadsheetID, tabName string) (int64, error) {
	resp, err := s.svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, classify("get spreadsheet", err)
	}
	for _, sh := range resp.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tabName {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("tab %q: %w", tabName, ErrNotFound)
}

// classify maps googleapi status codes onto the store sentinel errors so
// callers can distinguish permission problems from missing resources.
func classify(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusForbidden, http.StatusUnauthorized:
			return fmt.Errorf("%s: %w: %v", op, ErrAccessDenied, err)
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w: %v", op, ErrNotFound, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
