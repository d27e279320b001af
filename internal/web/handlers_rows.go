package web

// handlers_rows.go serves record-level CRUD against a registered table.
//
// Row IDs in URLs are the string form of physical row numbers. They are
// positions, not keys: a delete shifts every later row's ID down by one.

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleListRows returns every data row of the configured tab as typed
// records.
func (s *Server) handleListRows(w http.ResponseWriter, r *http.Request) {
	st := s.currentStore()
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not authenticated")
		return
	}

	configID := chi.URLParam(r, "configID")
	records, err := s.service.ListRows(r.Context(), st, configID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleAppendRow validates and appends a record, reporting the row
// number the store gave it.
func (s *Server) handleAppendRow(w http.ResponseWriter, r *http.Request) {
	st := s.currentStore()
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not authenticated")
		return
	}

	configID := chi.URLParam(r, "configID")
	data, ok := decodeRowData(w, r)
	if !ok {
		return
	}

	record, err := s.service.AppendRow(r.Context(), st, configID, data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleUpdateRow overwrites the record at the addressed row number.
func (s *Server) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	st := s.currentStore()
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not authenticated")
		return
	}

	configID := chi.URLParam(r, "configID")
	rowNumber, ok := parseRowID(w, r)
	if !ok {
		return
	}
	data, ok := decodeRowData(w, r)
	if !ok {
		return
	}

	record, err := s.service.UpdateRow(r.Context(), st, configID, rowNumber, data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleDeleteRow removes the record at the addressed row number.
func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	st := s.currentStore()
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not authenticated")
		return
	}

	configID := chi.URLParam(r, "configID")
	rowNumber, ok := parseRowID(w, r)
	if !ok {
		return
	}

	if err := s.service.DeleteRow(r.Context(), st, configID, rowNumber); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// decodeRowData reads the request body as a column-keyed data map.
func decodeRowData(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return data, true
}

// parseRowID parses the rowID URL parameter as a row number.
func parseRowID(w http.ResponseWriter, r *http.Request) (int, bool) {
	rowID := chi.URLParam(r, "rowID")
	rowNumber, err := strconv.Atoi(rowID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid row id")
		return 0, false
	}
	return rowNumber, true
}
