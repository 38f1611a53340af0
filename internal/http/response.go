package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"budget/internal/core"
)

// errorResponse is the uniform error body: {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error onto its status code and JSON body. Errors
// outside the taxonomy become an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrMissingParameters):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrUserNotFound), errors.Is(err, core.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUserExists), errors.Is(err, core.ErrTransactionExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
