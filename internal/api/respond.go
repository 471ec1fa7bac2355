package api

import (
	"encoding/json"
	"net/http"

	"github.com/jpl-au/bookrab/internal/fault"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, ErrorBody{Error: err.Error(), Code: code})
}

// respondError picks the status from the error's fault kind.
func respondError(w http.ResponseWriter, err error) {
	writeError(w, fault.Status(err), fault.CodeOf(err), err)
}
