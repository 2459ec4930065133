package api

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "zkpark/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps err to its status. Anything that is not an HTTPError is a 500.
func writeError(w http.ResponseWriter, err error) {
	code, msg := apperrors.StatusOf(err)
	if code >= http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}
	writeJSON(w, code, ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}
