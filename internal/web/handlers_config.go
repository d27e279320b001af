package web

// handlers_config.go serves credential installation and table
// configuration CRUD.

import (
	"encoding/json"
	"net/http"

	"github.com/JonMunkholm/sheetdb/internal/core"
	"github.com/JonMunkholm/sheetdb/internal/logging"
	"github.com/JonMunkholm/sheetdb/internal/store"
	"github.com/go-chi/chi/v5"
)

// authRequest wraps the service-account credentials posted to the auth
// endpoint. The raw JSON is handed straight to the credential provider
// and never stored.
type authRequest struct {
	Credentials json.RawMessage `json:"credentials"`
}

// handleAuth installs a store handle built from posted credentials.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Credentials) == 0 {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	st, err := store.Authenticate(r.Context(), req.Credentials)
	if err != nil {
		logging.FromContext(r.Context()).Error("authentication failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to authenticate with Google Sheets")
		return
	}

	s.SetStore(st)
	logging.FromContext(r.Context()).Info("store handle installed")
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// createConfigRequest is the body for registering a new table.
type createConfigRequest struct {
	Name    string `json:"name"`
	SheetID string `json:"sheetId"`
	TabName string `json:"tabName"`
}

// handleCreateConfig registers a table configuration, inferring its
// column schema from the tab's header row.
func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	st := s.currentStore()
	if st == nil {
		writeError(w, http.StatusServiceUnavailable, "store not authenticated")
		return
	}

	var req createConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.SheetID == "" || req.TabName == "" {
		writeError(w, http.StatusBadRequest, "name, sheetId and tabName are required")
		return
	}

	cfg, err := s.service.Registry().Create(r.Context(), st, req.Name, req.SheetID, req.TabName)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// handleListConfigs returns all registered configurations.
func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Registry().List())
}

// handleGetConfig returns one configuration by ID.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "configID")
	cfg, ok := s.service.Registry().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "configuration not found")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// updateConfigRequest is the body for editing a table's name and
// column typing.
type updateConfigRequest struct {
	Name    string        `json:"name"`
	Columns []core.Column `json:"columns"`
}

// handleUpdateConfig tightens a configuration's schema: column types and
// required flags, and optionally the display name.
func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "configID")

	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := s.service.Registry().Update(id, req.Name, req.Columns)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// handleDeleteConfig removes a configuration. Spreadsheet data is left
// untouched.
func (s *Server) handleDeleteConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "configID")
	deleted := s.service.Registry().Delete(id)
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}
