package web

// errors.go maps the core error taxonomy onto HTTP responses.
//
// Status mapping:
//   - ValidationError -> 400, body carries the full field-error mapping
//   - NotFoundError   -> 404
//   - AccessError     -> 403
//   - anything else   -> 500 with a generic message

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/sheetdb/internal/core"
	"github.com/JonMunkholm/sheetdb/internal/logging"
)

// respondError logs the technical error and writes the classified JSON
// response for it.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classifyError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	writeJSON(w, status, body)
}

// classifyError resolves an error to its HTTP status and response body.
func classifyError(err error) (int, map[string]any) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		}
	}

	var nferr *core.NotFoundError
	if errors.As(err, &nferr) {
		return http.StatusNotFound, map[string]any{"error": nferr.Error()}
	}

	var aerr *core.AccessError
	if errors.As(err, &aerr) {
		return http.StatusForbidden, map[string]any{
			"error": "unable to access spreadsheet, check the sheet ID and permissions",
		}
	}

	return http.StatusInternalServerError, map[string]any{
		"error": "upstream failure, try again",
	}
}
